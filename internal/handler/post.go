package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
)

// PostHandler is CRUD over news posts.  Drafts are visible only to elevated
// callers that ask for them.
type PostHandler struct {
	Posts *repository.PostRepo
}

func NewPostHandler(p *repository.PostRepo) *PostHandler { return &PostHandler{Posts: p} }

type postReq struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Body        string `json:"body"`
	IsPublished bool   `json:"is_published"`
}

func postError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// List handles GET /v1/posts.  ?includeDrafts=true is honored for elevated
// callers only.
func (h *PostHandler) List(c echo.Context) error {
	includeDrafts := queryFlag(c, "includeDrafts") && isElevated(c)
	posts, err := h.Posts.List(c.Request().Context(), includeDrafts)
	if err != nil {
		return postError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// Get handles GET /v1/posts/:id where :id is a numeric id or a slug.
func (h *PostHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		post model.Post
		err  error
	)
	if id := paramID(c); id != 0 {
		post, err = h.Posts.GetByID(ctx, id)
	} else {
		post, err = h.Posts.GetBySlug(ctx, c.Param("id"))
	}
	if err != nil {
		return postError(c, err)
	}
	if !post.IsPublished && !isElevated(c) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// Create handles POST /v1/posts.
func (h *PostHandler) Create(c echo.Context) error {
	var req postReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and slug are required"})
	}
	post := &model.Post{Title: req.Title, Slug: req.Slug, Body: req.Body, IsPublished: req.IsPublished}
	if err := h.Posts.Create(c.Request().Context(), post); err != nil {
		return postError(c, err)
	}
	created, err := h.Posts.GetByID(c.Request().Context(), post.ID)
	if err != nil {
		return postError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"post": created})
}

// Update handles PUT /v1/posts.
func (h *PostHandler) Update(c echo.Context) error {
	var req postReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and slug are required"})
	}
	ctx := c.Request().Context()
	current, err := h.Posts.GetByID(ctx, req.ID)
	if err != nil {
		return postError(c, err)
	}
	post := &model.Post{
		ID:          req.ID,
		Title:       req.Title,
		Slug:        req.Slug,
		Body:        req.Body,
		IsPublished: req.IsPublished,
		// Carry the original publication timestamp so re-publishing does not
		// re-stamp it.
		PublishedAt: current.PublishedAt,
	}
	if err := h.Posts.Update(ctx, post); err != nil {
		return postError(c, err)
	}
	updated, err := h.Posts.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return postError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post": updated})
}

// Delete handles DELETE /v1/posts?id=N.
func (h *PostHandler) Delete(c echo.Context) error {
	id := queryID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Posts.Delete(c.Request().Context(), id); err != nil {
		return postError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
