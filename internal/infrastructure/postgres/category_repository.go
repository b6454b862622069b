package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/internal/domain/repository"
)

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, c.Name, c.OwnerID)

	return translate(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt), "category")
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at FROM categories WHERE id = $1
	`, id))
	if err != nil {
		return nil, translate(err, "category")
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, owner_id, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, translate(err, "category")
	}
	defer rows.Close()

	out := []entity.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, translate(err, "category")
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "category")
	}
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	row := r.db.QueryRow(ctx, `
		UPDATE categories SET name = $1, updated_at = now() WHERE id = $2 RETURNING updated_at
	`, c.Name, c.ID)

	return translate(row.Scan(&c.UpdatedAt), "category")
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translate(err, "category")
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("category not found")
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
