package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
)

// DonorHandler is CRUD over the sponsor/donor listings.
type DonorHandler struct {
	Donors *repository.DonorRepo
}

func NewDonorHandler(d *repository.DonorRepo) *DonorHandler { return &DonorHandler{Donors: d} }

type donorReq struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name" validate:"required"`
	Level     string `json:"level" validate:"required"`
	Website   string `json:"website" validate:"omitempty,url"`
	LogoURL   string `json:"logo_url" validate:"omitempty,url"`
	IsVisible bool   `json:"is_visible"`
}

func donorError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrDonorNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "donor not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// List handles GET /v1/donors.  Hidden donors show up only for elevated
// callers.
func (h *DonorHandler) List(c echo.Context) error {
	donors, err := h.Donors.List(c.Request().Context(), !isElevated(c))
	if err != nil {
		return donorError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"donors": donors})
}

// Create handles POST /v1/donors.
func (h *DonorHandler) Create(c echo.Context) error {
	var req donorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and level are required"})
	}
	donor := &model.Donor{Name: req.Name, Level: req.Level, Website: req.Website, LogoURL: req.LogoURL, IsVisible: req.IsVisible}
	if err := h.Donors.Create(c.Request().Context(), donor); err != nil {
		return donorError(c, err)
	}
	created, err := h.Donors.GetByID(c.Request().Context(), donor.ID)
	if err != nil {
		return donorError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"donor": created})
}

// Update handles PUT /v1/donors.
func (h *DonorHandler) Update(c echo.Context) error {
	var req donorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and level are required"})
	}
	donor := &model.Donor{ID: req.ID, Name: req.Name, Level: req.Level, Website: req.Website, LogoURL: req.LogoURL, IsVisible: req.IsVisible}
	if err := h.Donors.Update(c.Request().Context(), donor); err != nil {
		return donorError(c, err)
	}
	updated, err := h.Donors.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return donorError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"donor": updated})
}

// Delete handles DELETE /v1/donors?id=N.
func (h *DonorHandler) Delete(c echo.Context) error {
	id := queryID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Donors.Delete(c.Request().Context(), id); err != nil {
		return donorError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
