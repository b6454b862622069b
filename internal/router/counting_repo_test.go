package router

import (
	"context"
	"sync/atomic"

	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/internal/domain/repository"
)

// repoCalls counts every repository method invoked through the wrappers below.
type repoCalls struct{ n atomic.Int64 }

func (r *repoCalls) hit() { r.n.Add(1) }
func (r *repoCalls) count() int64 { return r.n.Load() }
func (r *repoCalls) reset() { r.n.Store(0) }

type countingUsers struct {
	next  repository.UserRepository
	calls *repoCalls
}

func (r countingUsers) Create(ctx context.Context, u *entity.User) error {
	r.calls.hit()
	return r.next.Create(ctx, u)
}

func (r countingUsers) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.calls.hit()
	return r.next.GetByID(ctx, id)
}

func (r countingUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.calls.hit()
	return r.next.GetByEmail(ctx, email)
}

func (r countingUsers) List(ctx context.Context) ([]entity.User, error) {
	r.calls.hit()
	return r.next.List(ctx)
}

func (r countingUsers) Update(ctx context.Context, u *entity.User) error {
	r.calls.hit()
	return r.next.Update(ctx, u)
}

func (r countingUsers) Delete(ctx context.Context, id int64) error {
	r.calls.hit()
	return r.next.Delete(ctx, id)
}

type countingPosts struct {
	next  repository.PostRepository
	calls *repoCalls
}

func (r countingPosts) Create(ctx context.Context, p *entity.Post) error {
	r.calls.hit()
	return r.next.Create(ctx, p)
}

func (r countingPosts) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	r.calls.hit()
	return r.next.GetByID(ctx, id)
}

func (r countingPosts) List(ctx context.Context) ([]entity.Post, error) {
	r.calls.hit()
	return r.next.List(ctx)
}

func (r countingPosts) Update(ctx context.Context, p *entity.Post) error {
	r.calls.hit()
	return r.next.Update(ctx, p)
}

func (r countingPosts) Delete(ctx context.Context, id int64) error {
	r.calls.hit()
	return r.next.Delete(ctx, id)
}

func (r countingPosts) Search(ctx context.Context, q string, limit int) ([]entity.Post, error) {
	r.calls.hit()
	return r.next.Search(ctx, q, limit)
}

type countingCategories struct {
	next  repository.CategoryRepository
	calls *repoCalls
}

func (r countingCategories) Create(ctx context.Context, c *entity.Category) error {
	r.calls.hit()
	return r.next.Create(ctx, c)
}

func (r countingCategories) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	r.calls.hit()
	return r.next.GetByID(ctx, id)
}

func (r countingCategories) List(ctx context.Context) ([]entity.Category, error) {
	r.calls.hit()
	return r.next.List(ctx)
}

func (r countingCategories) Update(ctx context.Context, c *entity.Category) error {
	r.calls.hit()
	return r.next.Update(ctx, c)
}

func (r countingCategories) Delete(ctx context.Context, id int64) error {
	r.calls.hit()
	return r.next.Delete(ctx, id)
}
