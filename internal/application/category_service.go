package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/internal/domain/policy"
	repo "github.com/oksasatya/go-blog-backend/internal/domain/repository"
)

type CategoryService struct {
	Repo   repo.CategoryRepository
	Logger *logrus.Logger
}

func NewCategoryService(r repo.CategoryRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Repo: r, Logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.Repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*entity.Category, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, caller entity.Identity, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidInput("name is required")
	}
	if err := checkField("name", name, ruleCategory, "must be at most 100 characters long"); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: name, OwnerID: caller.UserID}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Editable loads category id and checks that caller owns it or is an
// administrator. Handlers call it before decoding an update body.
func (s *CategoryService) Editable(ctx context.Context, caller entity.Identity, id int64) (*entity.Category, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(c.OwnerID, caller) {
		return nil, apperr.Forbidden("you can only modify your own categories")
	}
	return c, nil
}

// Update renames a category. A nil name means the request carried no changes.
func (s *CategoryService) Update(ctx context.Context, caller entity.Identity, id int64, name *string) (*entity.Category, error) {
	c, err := s.Editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, c, name)
}

// Apply renames c, a category returned by Editable.
func (s *CategoryService) Apply(ctx context.Context, c *entity.Category, name *string) (*entity.Category, error) {
	if name == nil {
		return nil, apperr.InvalidInput("nothing to update")
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return nil, apperr.InvalidInput("name cannot be empty")
	}
	if err := checkField("name", n, ruleCategory, "must be at most 100 characters long"); err != nil {
		return nil, err
	}
	c.Name = n
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, caller entity.Identity, id int64) error {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanMutate(c.OwnerID, caller) {
		return apperr.Forbidden("you can only delete your own categories")
	}
	return s.Repo.Delete(ctx, id)
}
