package repository

import (
	"context"

	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
)

// UserRepository defines persistence for accounts.
// Lookups of missing records return an error matching apperr.ErrNotFound;
// duplicate emails return apperr.ErrConflict.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
