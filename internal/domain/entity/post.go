package entity

import "time"

// Post is a blog entry. AuthorID is the owning account.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Content     string    `json:"content"`
	Published   bool      `json:"published"`
	AuthorID    int64     `json:"authorId"`
	CategoryID  *int64    `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
