package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/internal/domain/policy"
	repo "github.com/oksasatya/go-blog-backend/internal/domain/repository"
	"github.com/oksasatya/go-blog-backend/pkg/helpers"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

type PostService struct {
	Repo       repo.PostRepository
	Categories repo.CategoryRepository
	Index      PostIndexer
	Logger     *logrus.Logger
}

func NewPostService(r repo.PostRepository, categories repo.CategoryRepository, index PostIndexer, logger *logrus.Logger) *PostService {
	return &PostService{Repo: r, Categories: categories, Index: index, Logger: logger}
}

type CreatePostInput struct {
	Title       string
	Description *string
	Content     string
	Published   bool
	CategoryID  *int64
}

// UpdatePostInput carries optional changes; nil fields are left untouched.
type UpdatePostInput struct {
	Title       *string
	Description *string
	Content     *string
	Published   *bool
	CategoryID  *int64
}

func (in UpdatePostInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Content == nil && in.Published == nil && in.CategoryID == nil
}

// List returns every post. An empty result is reported as NotFound.
func (s *PostService) List(ctx context.Context) ([]entity.Post, error) {
	posts, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, apperr.NotFound("no posts found")
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*entity.Post, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, caller entity.Identity, in CreatePostInput) (*entity.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, apperr.InvalidInput("title and content are required")
	}
	if err := checkField("title", title, ruleTitle, "must be between 1 and 200 characters long"); err != nil {
		return nil, err
	}
	if in.Description != nil {
		if err := checkField("description", *in.Description, ruleDescription, "must be at most 500 characters long"); err != nil {
			return nil, err
		}
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	p := &entity.Post{
		Title:       title,
		Description: in.Description,
		Content:     in.Content,
		Published:   in.Published,
		AuthorID:    caller.UserID,
		CategoryID:  in.CategoryID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Editable loads post id and checks that caller owns it or is an
// administrator. Handlers call it before decoding an update body.
func (s *PostService) Editable(ctx context.Context, caller entity.Identity, id int64) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(p.AuthorID, caller) {
		return nil, apperr.Forbidden("you can only modify your own posts")
	}
	return p, nil
}

// Update applies in to the post after Editable succeeds.
func (s *PostService) Update(ctx context.Context, caller entity.Identity, id int64, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.Editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, p, in)
}

// Apply validates in and writes it onto p, a post returned by Editable.
func (s *PostService) Apply(ctx context.Context, p *entity.Post, in UpdatePostInput) (*entity.Post, error) {
	if in.empty() {
		return nil, apperr.InvalidInput("nothing to update")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.InvalidInput("title cannot be empty")
		}
		if err := checkField("title", title, ruleTitle, "must be between 1 and 200 characters long"); err != nil {
			return nil, err
		}
		p.Title = title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, apperr.InvalidInput("content cannot be empty")
		}
		p.Content = *in.Content
	}
	if in.Description != nil {
		if err := checkField("description", *in.Description, ruleDescription, "must be at most 500 characters long"); err != nil {
			return nil, err
		}
		p.Description = in.Description
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = in.CategoryID
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, caller entity.Identity, id int64) error {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanMutate(p.AuthorID, caller) {
		return apperr.Forbidden("you can only delete your own posts")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			helpers.LogError(s.Logger, "search index delete failed", err, logrus.Fields{"post_id": id})
		}
	}
	return nil
}

// Search looks q up in the search index when one is configured and falls
// back to the repository's substring match otherwise, or when the index
// is unavailable.
func (s *PostService) Search(ctx context.Context, q string, size int) ([]entity.Post, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.InvalidInput("query is required")
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	if s.Index != nil {
		ids, err := s.Index.Search(ctx, q, size)
		if err == nil {
			return s.loadAll(ctx, ids)
		}
		helpers.LogError(s.Logger, "search index query failed, using database", err, logrus.Fields{"q": q})
	}
	return s.Repo.Search(ctx, q, size)
}

// loadAll fetches posts by id in order, skipping ids removed since indexing.
func (s *PostService) loadAll(ctx context.Context, ids []int64) ([]entity.Post, error) {
	out := make([]entity.Post, 0, len(ids))
	for _, id := range ids {
		p, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *PostService) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if *id <= 0 {
		return apperr.InvalidInput("categoryId must be a positive integer")
	}
	if _, err := s.Categories.GetByID(ctx, *id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.InvalidInput("category does not exist")
		}
		return err
	}
	return nil
}

func (s *PostService) index(ctx context.Context, p *entity.Post) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil {
		helpers.LogError(s.Logger, "search index update failed", err, logrus.Fields{"post_id": p.ID})
	}
}
