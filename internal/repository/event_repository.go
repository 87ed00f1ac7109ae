package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/brightwood-pta/portal/internal/model"
)

// EventRepo provides access to the 'events' table.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// EventFilter narrows List results.  Zero value lists everything.
type EventFilter struct {
	PublishedOnly bool   // only events visible on the public calendar
	VolunteerOnly bool   // only events with volunteer_active = 1
	UpcomingOnly  bool   // only events dated today or later
	ID            uint64 // restrict to a single event when non-zero
}

const eventCols = "id,title,date,location,description,is_published,volunteer_active,created_at,updated_at"

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Title, &e.Date, &e.Location, &e.Description,
		&e.IsPublished, &e.VolunteerActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create inserts an event and sets its ID.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (title, date, location, description, is_published, volunteer_active) VALUES (?,?,?,?,?,?)",
		e.Title, e.Date, e.Location, e.Description, e.IsPublished, e.VolunteerActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches one event.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		"SELECT "+eventCols+" FROM events WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// Update rewrites all editable fields of an event.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE events SET title=?, date=?, location=?, description=?, is_published=?, volunteer_active=? WHERE id=?",
		e.Title, e.Date, e.Location, e.Description, e.IsPublished, e.VolunteerActive, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op write, so
		// re-check existence before reporting not found.
		if _, gErr := r.GetByID(ctx, e.ID); gErr != nil {
			return gErr
		}
	}
	return nil
}

// Delete removes an event.  Shifts and their signups go with it via
// ON DELETE CASCADE.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// List returns events matching the filter, soonest first.
func (r *EventRepo) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
	var (
		conds []string
		args  []any
	)
	if f.PublishedOnly {
		conds = append(conds, "is_published=1")
	}
	if f.VolunteerOnly {
		conds = append(conds, "volunteer_active=1")
	}
	if f.UpcomingOnly {
		conds = append(conds, "date >= CURDATE()")
	}
	if f.ID != 0 {
		conds = append(conds, "id=?")
		args = append(args, f.ID)
	}
	q := "SELECT " + eventCols + " FROM events"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY date ASC, id ASC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
