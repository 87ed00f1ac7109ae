package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
)

// ShiftHandler is plain CRUD over shift records.  Mutations sit behind
// authentication but not behind a role gate, matching the admin tool this API
// replaced; tightening that is tracked separately.
type ShiftHandler struct {
	Shifts *repository.ShiftRepo
	Events *repository.EventRepo
}

func NewShiftHandler(sh *repository.ShiftRepo, ev *repository.EventRepo) *ShiftHandler {
	return &ShiftHandler{Shifts: sh, Events: ev}
}

type createShiftReq struct {
	EventID        uint64  `json:"event_id" validate:"required"`
	JobTitle       string  `json:"job_title" validate:"required"`
	Description    string  `json:"description"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	SpotsAvailable int     `json:"spots_available" validate:"required,min=1"`
	IsActive       *bool   `json:"is_active"`
}

type updateShiftReq struct {
	ID             uint64  `json:"id" validate:"required"`
	JobTitle       string  `json:"job_title" validate:"required"`
	Description    string  `json:"description"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	SpotsAvailable int     `json:"spots_available" validate:"required,min=1"`
	IsActive       bool    `json:"is_active"`
}

func shiftError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrShiftNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "shift not found"})
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// List handles GET /v1/volunteer-shifts?eventId=N.  Public.
func (h *ShiftHandler) List(c echo.Context) error {
	eventID := queryID(c, "eventId")
	if eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId is required"})
	}
	shifts, err := h.Shifts.ListByEvent(c.Request().Context(), eventID, queryFlag(c, "includeInactive"))
	if err != nil {
		return shiftError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shifts": shifts})
}

// Get handles GET /v1/volunteer-shifts/:id.  Public.
func (h *ShiftHandler) Get(c echo.Context) error {
	id := paramID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	shift, err := h.Shifts.GetByID(c.Request().Context(), id)
	if err != nil {
		return shiftError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shift": shift})
}

// Create handles POST /v1/volunteer-shifts.  The parent event must exist;
// the new shift starts with spots_filled = 0.
func (h *ShiftHandler) Create(c echo.Context) error {
	var req createShiftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id, job_title and spots_available are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		return shiftError(c, err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	shift := &model.Shift{
		EventID:        req.EventID,
		JobTitle:       req.JobTitle,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		SpotsAvailable: req.SpotsAvailable,
		IsActive:       active,
	}
	if err := h.Shifts.Create(ctx, shift); err != nil {
		return shiftError(c, err)
	}
	created, err := h.Shifts.GetByID(ctx, shift.ID)
	if err != nil {
		return shiftError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"shift": created})
}

// Update handles PUT /v1/volunteer-shifts.  Capacity and visibility edits
// never touch spots_filled: shrinking spots_available below the current fill
// count is allowed and the counter keeps reporting over-capacity until the
// next signup mutation recounts it.
func (h *ShiftHandler) Update(c echo.Context) error {
	var req updateShiftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id, job_title and spots_available are required"})
	}

	ctx := c.Request().Context()
	shift := &model.Shift{
		ID:             req.ID,
		JobTitle:       req.JobTitle,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		SpotsAvailable: req.SpotsAvailable,
		IsActive:       req.IsActive,
	}
	if err := h.Shifts.Update(ctx, shift); err != nil {
		return shiftError(c, err)
	}
	updated, err := h.Shifts.GetByID(ctx, req.ID)
	if err != nil {
		return shiftError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shift": updated})
}

// Delete handles DELETE /v1/volunteer-shifts?id=N.  Signups cascade away
// with the shift.
func (h *ShiftHandler) Delete(c echo.Context) error {
	id := queryID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Shifts.Delete(c.Request().Context(), id); err != nil {
		return shiftError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
