package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-blog-backend/config"
	"github.com/oksasatya/go-blog-backend/pkg/helpers"
)

// Seeds (or resets) an administrator account.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "password123", "admin password")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	hash, err := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	var id int64
	err = conn.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, 'ADMIN')
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, role = 'ADMIN', is_blocked = false, updated_at = now()
		RETURNING id
	`, *email, *name, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	log.Printf("seeded admin: id=%d email=%s", id, *email)
}
