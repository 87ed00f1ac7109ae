package model

import "time"

// Post mirrors the 'posts' table.  News posts for the public site.  Unpublished
// posts are drafts visible only to admin/editor callers.
type Post struct {
	ID          uint64     `json:"id"`           // posts.id
	Title       string     `json:"title"`        // posts.title
	Slug        string     `json:"slug"`         // posts.slug, unique
	Body        string     `json:"body"`         // posts.body
	IsPublished bool       `json:"is_published"` // posts.is_published
	PublishedAt *time.Time `json:"published_at"` // posts.published_at, set on first publish
	CreatedAt   time.Time  `json:"created_at"`   // posts.created_at
	UpdatedAt   time.Time  `json:"updated_at"`   // posts.updated_at
}
