package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
)

// VolunteerEventHandler serves the public volunteer calendar: events with
// their shifts nested, and signups nested under shifts for elevated callers
// that ask for them.
type VolunteerEventHandler struct {
	Events  *repository.EventRepo
	Shifts  *repository.ShiftRepo
	Signups *repository.SignupRepo
}

func NewVolunteerEventHandler(e *repository.EventRepo, sh *repository.ShiftRepo, sg *repository.SignupRepo) *VolunteerEventHandler {
	return &VolunteerEventHandler{Events: e, Shifts: sh, Signups: sg}
}

type shiftView struct {
	model.Shift
	Signups []model.Signup `json:"signups,omitempty"`
}

type eventView struct {
	model.Event
	Shifts []shiftView `json:"shifts"`
}

// List handles GET /v1/volunteer-events.
//
// Query flags: includeInactive lifts the volunteer_active filter,
// includeInactiveShifts includes hidden shifts, includeSignups nests signup
// rows (elevated callers only; silently ignored for everyone else), upcoming
// restricts to events dated today or later, eventId narrows to one event.
// Unpublished events stay hidden from non-elevated callers regardless of
// flags.
func (h *VolunteerEventHandler) List(c echo.Context) error {
	elevated := isElevated(c)
	f := repository.EventFilter{
		PublishedOnly: !elevated,
		VolunteerOnly: !queryFlag(c, "includeInactive"),
		UpcomingOnly:  queryFlag(c, "upcoming"),
		ID:            queryID(c, "eventId"),
	}
	includeInactiveShifts := queryFlag(c, "includeInactiveShifts")
	includeSignups := queryFlag(c, "includeSignups") && elevated

	ctx := c.Request().Context()
	events, err := h.Events.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]eventView, 0, len(events))
	for _, ev := range events {
		shifts, err := h.Shifts.ListByEvent(ctx, ev.ID, includeInactiveShifts)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		views := make([]shiftView, 0, len(shifts))
		for _, sh := range shifts {
			v := shiftView{Shift: sh}
			if includeSignups {
				signups, err := h.Signups.ListByShift(ctx, sh.ID)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
				}
				v.Signups = signups
			}
			views = append(views, v)
		}
		out = append(out, eventView{Event: ev, Shifts: views})
	}

	return c.JSON(http.StatusOK, echo.Map{"events": out})
}
