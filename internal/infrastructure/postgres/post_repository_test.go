package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
)

var postCols = []string{"id", "title", "description", "content", "published", "author_id", "category_id", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }

func TestPostRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)
	now := time.Now()

	desc := strPtr("intro")
	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("Hello", desc, "body", false, int64(1), (*int64)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	p := &entity.Post{Title: "Hello", Description: desc, Content: "body", AuthorID: 1}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(10), p.ID)
}

func TestPostRepository_Create_UnknownCategory(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	cat := i64Ptr(42)
	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("Hello", (*string)(nil), "body", true, int64(1), cat).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "posts_category_id_fkey"})

	err := repo.Create(context.Background(), &entity.Post{Title: "Hello", Content: "body", Published: true, AuthorID: 1, CategoryID: cat})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestPostRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM posts WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(postCols).AddRow(int64(5), "T", strPtr("d"), "c", true, int64(2), i64Ptr(3), now, now))

	p, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.AuthorID)
	require.NotNil(t, p.Description)
	assert.Equal(t, "d", *p.Description)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, int64(3), *p.CategoryID)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM posts WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "post not found", apperr.Message(err, ""))
}

func TestPostRepository_Search_EscapesPattern(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectQuery(`FROM posts\s+WHERE title ILIKE \$1`).
		WithArgs(`%100\%\_go%`, 10).
		WillReturnRows(pgxmock.NewRows(postCols))

	posts, err := repo.Search(context.Background(), "100%_go", 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectQuery(`UPDATE posts`).
		WithArgs("T", (*string)(nil), "c", false, (*int64)(nil), int64(7)).
		WillReturnError(pgx.ErrNoRows)

	err := repo.Update(context.Background(), &entity.Post{ID: 7, Title: "T", Content: "c"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 999), apperr.ErrNotFound)
}
