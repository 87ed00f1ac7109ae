package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
)

// AuctionHandler is CRUD over the silent-auction catalog.
type AuctionHandler struct {
	Items *repository.AuctionRepo
}

func NewAuctionHandler(a *repository.AuctionRepo) *AuctionHandler { return &AuctionHandler{Items: a} }

type auctionItemReq struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DonatedBy   string `json:"donated_by"`
	MinBidCents uint32 `json:"min_bid_cents" validate:"required,min=1"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	IsActive    bool   `json:"is_active"`
}

func auctionError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrAuctionItemNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "auction item not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// List handles GET /v1/auction-items.  Inactive items show up only for
// elevated callers.
func (h *AuctionHandler) List(c echo.Context) error {
	items, err := h.Items.List(c.Request().Context(), !isElevated(c))
	if err != nil {
		return auctionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Create handles POST /v1/auction-items.
func (h *AuctionHandler) Create(c echo.Context) error {
	var req auctionItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and min_bid_cents are required"})
	}
	item := &model.AuctionItem{
		Title:       req.Title,
		Description: req.Description,
		DonatedBy:   req.DonatedBy,
		MinBidCents: req.MinBidCents,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	if err := h.Items.Create(c.Request().Context(), item); err != nil {
		return auctionError(c, err)
	}
	created, err := h.Items.GetByID(c.Request().Context(), item.ID)
	if err != nil {
		return auctionError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": created})
}

// Update handles PUT /v1/auction-items.
func (h *AuctionHandler) Update(c echo.Context) error {
	var req auctionItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and min_bid_cents are required"})
	}
	item := &model.AuctionItem{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		DonatedBy:   req.DonatedBy,
		MinBidCents: req.MinBidCents,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	if err := h.Items.Update(c.Request().Context(), item); err != nil {
		return auctionError(c, err)
	}
	updated, err := h.Items.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return auctionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// Delete handles DELETE /v1/auction-items?id=N.
func (h *AuctionHandler) Delete(c echo.Context) error {
	id := queryID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Items.Delete(c.Request().Context(), id); err != nil {
		return auctionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
