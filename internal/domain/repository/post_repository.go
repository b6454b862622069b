package repository

import (
	"context"

	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
)

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	List(ctx context.Context) ([]entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id int64) error
	// Search matches q against title, description and content.
	Search(ctx context.Context, q string, limit int) ([]entity.Post, error)
}
