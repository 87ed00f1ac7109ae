package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
)

// EventHandler is the admin-side CRUD for calendar events.  The public read
// path for volunteering lives in VolunteerEventHandler.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(e *repository.EventRepo) *EventHandler { return &EventHandler{Events: e} }

type eventReq struct {
	ID              uint64 `json:"id"`
	Title           string `json:"title" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	IsPublished     bool   `json:"is_published"`
	VolunteerActive bool   `json:"volunteer_active"`
}

func eventError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrEventNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// List handles GET /v1/events.  Elevated only; returns everything including
// drafts, soonest first.
func (h *EventHandler) List(c echo.Context) error {
	f := repository.EventFilter{UpcomingOnly: queryFlag(c, "upcoming")}
	events, err := h.Events.List(c.Request().Context(), f)
	if err != nil {
		return eventError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id := paramID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	event, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		return eventError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"event": event})
}

// Create handles POST /v1/events.
func (h *EventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and a YYYY-MM-DD date are required"})
	}
	date, _ := time.Parse("2006-01-02", req.Date) // format already validated
	event := &model.Event{
		Title:           req.Title,
		Date:            date,
		Location:        req.Location,
		Description:     req.Description,
		IsPublished:     req.IsPublished,
		VolunteerActive: req.VolunteerActive,
	}
	if err := h.Events.Create(c.Request().Context(), event); err != nil {
		return eventError(c, err)
	}
	created, err := h.Events.GetByID(c.Request().Context(), event.ID)
	if err != nil {
		return eventError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"event": created})
}

// Update handles PUT /v1/events.
func (h *EventHandler) Update(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and a YYYY-MM-DD date are required"})
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	event := &model.Event{
		ID:              req.ID,
		Title:           req.Title,
		Date:            date,
		Location:        req.Location,
		Description:     req.Description,
		IsPublished:     req.IsPublished,
		VolunteerActive: req.VolunteerActive,
	}
	if err := h.Events.Update(c.Request().Context(), event); err != nil {
		return eventError(c, err)
	}
	updated, err := h.Events.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return eventError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"event": updated})
}

// Delete handles DELETE /v1/events?id=N.  Shifts and signups cascade away.
func (h *EventHandler) Delete(c echo.Context) error {
	id := queryID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	if err := h.Events.Delete(c.Request().Context(), id); err != nil {
		return eventError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
