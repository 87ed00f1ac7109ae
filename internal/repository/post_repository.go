package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/brightwood-pta/portal/internal/model"
)

// PostRepo provides access to the 'posts' table.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

const postCols = "id,title,slug,body,is_published,published_at,created_at,updated_at"

func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.IsPublished, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a post and sets its ID.  published_at is stamped when the
// post is created already published.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
	if p.IsPublished && p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (title, slug, body, is_published, published_at) VALUES (?,?,?,?,?)",
		p.Title, p.Slug, p.Body, p.IsPublished, p.PublishedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	p, err := scanPost(r.DB.QueryRowContext(ctx,
		"SELECT "+postCols+" FROM posts WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Post{}, ErrPostNotFound
	}
	return p, err
}

func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (model.Post, error) {
	p, err := scanPost(r.DB.QueryRowContext(ctx,
		"SELECT "+postCols+" FROM posts WHERE slug=? LIMIT 1", strings.TrimSpace(slug)))
	if err == sql.ErrNoRows {
		return model.Post{}, ErrPostNotFound
	}
	return p, err
}

// Update rewrites the editable fields.  First publication stamps
// published_at; unpublishing keeps the original timestamp.
func (r *PostRepo) Update(ctx context.Context, p *model.Post) error {
	if p.IsPublished && p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE posts SET title=?, slug=?, body=?, is_published=?, published_at=? WHERE id=?",
		p.Title, p.Slug, p.Body, p.IsPublished, p.PublishedAt, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gErr := r.GetByID(ctx, p.ID); gErr != nil {
			return gErr
		}
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPostNotFound
	}
	return nil
}

// List returns posts newest first.  Drafts are included only when
// includeDrafts is set (admin/editor callers).
func (r *PostRepo) List(ctx context.Context, includeDrafts bool) ([]model.Post, error) {
	q := "SELECT " + postCols + " FROM posts"
	if !includeDrafts {
		q += " WHERE is_published=1"
	}
	q += " ORDER BY COALESCE(published_at, created_at) DESC, id DESC"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}
