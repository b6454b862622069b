// Package memory implements the repository ports on in-process maps.
// It backs tests and the STORAGE_DRIVER=memory local mode, and mirrors the
// Postgres schema rules: unique emails and category names, cascading user
// deletes and category references cleared on category delete.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/internal/domain/repository"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users      map[int64]entity.User
	posts      map[int64]entity.Post
	categories map[int64]entity.Category

	nextUserID     int64
	nextPostID     int64
	nextCategoryID int64
}

func NewStore() *Store {
	return &Store{
		now:        time.Now,
		users:      map[int64]entity.User{},
		posts:      map[int64]entity.Post{},
		categories: map[int64]entity.Category{},
	}
}

// Users, Posts and Categories expose the store through the repository ports.
func (s *Store) Users() repository.UserRepository          { return userRepo{s} }
func (s *Store) Posts() repository.PostRepository          { return postRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(u.Email, 0) {
		return apperr.Conflict("email already registered")
	}
	s.nextUserID++
	now := s.now()
	u.ID, u.CreatedAt, u.UpdatedAt = s.nextUserID, now, now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) emailTaken(email string, except int64) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (r userRepo) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return apperr.NotFound("user not found")
	}
	if s.emailTaken(u.Email, u.ID) {
		return apperr.Conflict("email already registered")
	}
	u.UpdatedAt = s.now()
	s.users[u.ID] = *u
	return nil
}

func (r userRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return apperr.NotFound("user not found")
	}
	delete(s.users, id)
	for cid, c := range s.categories {
		if c.OwnerID == id {
			s.deleteCategory(cid)
		}
	}
	for pid, p := range s.posts {
		if p.AuthorID == id {
			delete(s.posts, pid)
		}
	}
	return nil
}

type postRepo struct{ s *Store }

func (r postRepo) Create(_ context.Context, p *entity.Post) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPostRefs(p); err != nil {
		return err
	}
	s.nextPostID++
	now := s.now()
	p.ID, p.CreatedAt, p.UpdatedAt = s.nextPostID, now, now
	s.posts[p.ID] = clonePost(*p)
	return nil
}

func (s *Store) checkPostRefs(p *entity.Post) error {
	if _, ok := s.users[p.AuthorID]; !ok {
		return apperr.InvalidInput("referenced record does not exist")
	}
	if p.CategoryID != nil {
		if _, ok := s.categories[*p.CategoryID]; !ok {
			return apperr.InvalidInput("referenced record does not exist")
		}
	}
	return nil
}

// clonePost copies the pointer fields so callers cannot mutate stored state.
func clonePost(p entity.Post) entity.Post {
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	if p.CategoryID != nil {
		c := *p.CategoryID
		p.CategoryID = &c
	}
	return p
}

func (r postRepo) GetByID(_ context.Context, id int64) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, apperr.NotFound("post not found")
	}
	p = clonePost(p)
	return &p, nil
}

func (r postRepo) List(_ context.Context) ([]entity.Post, error) {
	return r.filter(func(entity.Post) bool { return true }, 0, false), nil
}

func (r postRepo) Search(_ context.Context, q string, limit int) ([]entity.Post, error) {
	needle := strings.ToLower(q)
	return r.filter(func(p entity.Post) bool {
		if strings.Contains(strings.ToLower(p.Title), needle) || strings.Contains(strings.ToLower(p.Content), needle) {
			return true
		}
		return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), needle)
	}, limit, true), nil
}

func (r postRepo) filter(match func(entity.Post) bool, limit int, newestFirst bool) []entity.Post {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Post{}
	for _, p := range r.s.posts {
		if match(p) {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r postRepo) Update(_ context.Context, p *entity.Post) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[p.ID]; !ok {
		return apperr.NotFound("post not found")
	}
	if err := s.checkPostRefs(p); err != nil {
		return err
	}
	p.UpdatedAt = s.now()
	s.posts[p.ID] = clonePost(*p)
	return nil
}

func (r postRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return apperr.NotFound("post not found")
	}
	delete(s.posts, id)
	return nil
}

type categoryRepo struct{ s *Store }

func (s *Store) categoryNameTaken(name string, except int64) bool {
	for id, c := range s.categories {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[c.OwnerID]; !ok {
		return apperr.InvalidInput("referenced record does not exist")
	}
	if s.categoryNameTaken(c.Name, 0) {
		return apperr.Conflict("category name already exists")
	}
	s.nextCategoryID++
	now := s.now()
	c.ID, c.CreatedAt, c.UpdatedAt = s.nextCategoryID, now, now
	s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}
	return &c, nil
}

func (r categoryRepo) List(_ context.Context) ([]entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r categoryRepo) Update(_ context.Context, c *entity.Category) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.categories[c.ID]
	if !ok {
		return apperr.NotFound("category not found")
	}
	if s.categoryNameTaken(c.Name, c.ID) {
		return apperr.Conflict("category name already exists")
	}
	cur.Name = c.Name
	cur.UpdatedAt = s.now()
	s.categories[c.ID] = cur
	*c = cur
	return nil
}

func (r categoryRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return apperr.NotFound("category not found")
	}
	s.deleteCategory(id)
	return nil
}

// deleteCategory removes a category and clears references to it. Callers hold mu.
func (s *Store) deleteCategory(id int64) {
	delete(s.categories, id)
	for pid, p := range s.posts {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			s.posts[pid] = p
		}
	}
}
