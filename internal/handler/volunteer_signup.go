package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/brightwood-pta/portal/internal/queue"
	"github.com/brightwood-pta/portal/internal/repository"
	"github.com/brightwood-pta/portal/internal/service"
)

// SignupHandler exposes the volunteer signup mutations.  All three endpoints
// sit behind the admin|editor role gate; every successful mutation returns
// the freshly recomputed spots_filled so the admin UI can update its counters
// without a second request.
type SignupHandler struct {
	Svc    *service.VolunteerService
	Logger *zap.Logger
}

func NewSignupHandler(svc *service.VolunteerService, logger *zap.Logger) *SignupHandler {
	if svc == nil {
		panic("nil service passed to NewSignupHandler")
	}
	return &SignupHandler{Svc: svc, Logger: logger}
}

type createSignupReq struct {
	ShiftID       uint64 `json:"shift_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	AllowOverbook bool   `json:"allow_overbook"`
}

type updateSignupReq struct {
	ID     uint64 `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// signupError maps service/repository failures onto the API's fixed statuses.
func signupError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrShiftNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "shift not found"})
	case errors.Is(err, repository.ErrSignupNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "signup not found"})
	case errors.Is(err, repository.ErrShiftInactive):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shift is not active"})
	case errors.Is(err, repository.ErrNoSpotsAvailable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no spots available"})
	case errors.Is(err, service.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// Create handles POST /v1/volunteer-signups.  Body: {shift_id, name, email,
// allow_overbook?}.  Inserts a pending signup after the admission check and
// returns 201 with {signup, spots_filled}.
func (h *SignupHandler) Create(c echo.Context) error {
	var req createSignupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shift_id, name and email are required"})
	}

	// Admin-entered signups are linked to the operator who typed them in.
	var userID *uint64
	if uid, err := getUserID(c); err == nil && uid != 0 {
		userID = &uid
	}

	signup, filled, err := h.Svc.CreateSignup(c.Request().Context(), req.ShiftID, req.Name, req.Email, userID, req.AllowOverbook)
	if err != nil {
		return signupError(c, err)
	}

	h.publish(queue.SignupRecordedEvent{
		Action:      queue.SignupActionCreated,
		SignupID:    signup.ID,
		ShiftID:     signup.ShiftID,
		Name:        signup.Name,
		Status:      signup.Status,
		SpotsFilled: filled,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"signup":       signup,
		"spots_filled": filled,
	})
}

// UpdateStatus handles PUT /v1/volunteer-signups.  Body: {id, status}.  Any
// of the three statuses may be set regardless of the current one.
func (h *SignupHandler) UpdateStatus(c echo.Context) error {
	var req updateSignupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id and status are required"})
	}

	signup, filled, err := h.Svc.UpdateSignupStatus(c.Request().Context(), req.ID, req.Status)
	if err != nil {
		return signupError(c, err)
	}

	h.publish(queue.SignupRecordedEvent{
		Action:      queue.SignupActionStatusChanged,
		SignupID:    signup.ID,
		ShiftID:     signup.ShiftID,
		Name:        signup.Name,
		Status:      signup.Status,
		SpotsFilled: filled,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"signup":       signup,
		"spots_filled": filled,
	})
}

// Delete handles DELETE /v1/volunteer-signups?id=N.  Hard delete plus
// recount; responds {success, shift_id, spots_filled}.
func (h *SignupHandler) Delete(c echo.Context) error {
	id := queryID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}

	shiftID, filled, err := h.Svc.DeleteSignup(c.Request().Context(), id)
	if err != nil {
		return signupError(c, err)
	}

	h.publish(queue.SignupRecordedEvent{
		Action:      queue.SignupActionDeleted,
		SignupID:    id,
		ShiftID:     shiftID,
		SpotsFilled: filled,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"shift_id":     shiftID,
		"spots_filled": filled,
	})
}

// publish emits the audit event off the request path.  Failures are logged
// inside the publisher and otherwise ignored; the mutation already committed.
func (h *SignupHandler) publish(ev queue.SignupRecordedEvent) {
	if h.Logger == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishSignupRecorded(ctx, h.Logger, ev)
	}()
}
