package application

import (
	"context"
	"io"

	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
)

// PostIndexer mirrors posts into a full-text index. Implementations must be
// safe for concurrent use.
type PostIndexer interface {
	Index(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id int64) error
	// Search returns matching post ids, best match first.
	Search(ctx context.Context, q string, limit int) ([]int64, error)
}

// AvatarStore persists avatar images and returns their public URL.
type AvatarStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
