package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/internal/domain/repository"
)

const postColumns = `id, title, description, content, published, author_id, category_id, created_at, updated_at`

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Content, &p.Published,
		&p.AuthorID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func collectPosts(rows pgx.Rows) ([]entity.Post, error) {
	defer rows.Close()
	out := []entity.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, translate(err, "post")
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "post")
	}
	return out, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO posts (title, description, content, published, author_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.Content, p.Published, p.AuthorID, p.CategoryID)

	return translate(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt), "post")
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, "post")
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]entity.Post, error) {
	rows, err := r.db.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY id`)
	if err != nil {
		return nil, translate(err, "post")
	}
	return collectPosts(rows)
}

func (r *PostRepository) Search(ctx context.Context, q string, limit int) ([]entity.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE title ILIKE $1 OR description ILIKE $1 OR content ILIKE $1
		ORDER BY id DESC
		LIMIT $2
	`, likePattern(q), limit)
	if err != nil {
		return nil, translate(err, "post")
	}
	return collectPosts(rows)
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	row := r.db.QueryRow(ctx, `
		UPDATE posts
		SET title = $1, description = $2, content = $3, published = $4, category_id = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`, p.Title, p.Description, p.Content, p.Published, p.CategoryID, p.ID)

	return translate(row.Scan(&p.UpdatedAt), "post")
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return translate(err, "post")
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
