package repository

import (
	"context"
	"database/sql"

	"github.com/brightwood-pta/portal/internal/model"
)

// ShiftRepo provides access to the 'shifts' table.  The spots_filled column
// is owned by the recount procedure: nothing here touches it except
// UpdateSpotsFilled, and in particular Update (the admin edit form) leaves it
// alone even when spots_available shrinks below the current fill count.
type ShiftRepo struct{ DB *sql.DB }

func NewShiftRepo(db *sql.DB) *ShiftRepo { return &ShiftRepo{DB: db} }

const shiftCols = "id,event_id,job_title,description,start_time,end_time,spots_available,spots_filled,is_active,created_at,updated_at"

func scanShift(row interface{ Scan(...any) error }) (model.Shift, error) {
	var s model.Shift
	err := row.Scan(&s.ID, &s.EventID, &s.JobTitle, &s.Description, &s.StartTime, &s.EndTime,
		&s.SpotsAvailable, &s.SpotsFilled, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create inserts a shift under an event and sets its ID.  spots_filled
// starts at zero.
func (r *ShiftRepo) Create(ctx context.Context, s *model.Shift) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO shifts (event_id, job_title, description, start_time, end_time, spots_available, is_active) VALUES (?,?,?,?,?,?,?)",
		s.EventID, s.JobTitle, s.Description, s.StartTime, s.EndTime, s.SpotsAvailable, s.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches one shift.
func (r *ShiftRepo) GetByID(ctx context.Context, id uint64) (model.Shift, error) {
	s, err := scanShift(r.DB.QueryRowContext(ctx,
		"SELECT "+shiftCols+" FROM shifts WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Shift{}, ErrShiftNotFound
	}
	return s, err
}

// GetForUpdateTx fetches a shift with a row lock inside tx.  Used by the
// strict admission path so the capacity check and the insert see one
// consistent row.
func (r *ShiftRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Shift, error) {
	s, err := scanShift(tx.QueryRowContext(ctx,
		"SELECT "+shiftCols+" FROM shifts WHERE id=? LIMIT 1 FOR UPDATE", id))
	if err == sql.ErrNoRows {
		return model.Shift{}, ErrShiftNotFound
	}
	return s, err
}

// Update rewrites the editable fields of a shift: job title, description,
// time window, capacity and visibility.  spots_filled is deliberately not in
// the column list.
func (r *ShiftRepo) Update(ctx context.Context, s *model.Shift) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE shifts SET job_title=?, description=?, start_time=?, end_time=?, spots_available=?, is_active=? WHERE id=?",
		s.JobTitle, s.Description, s.StartTime, s.EndTime, s.SpotsAvailable, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gErr := r.GetByID(ctx, s.ID); gErr != nil {
			return gErr
		}
	}
	return nil
}

// UpdateSpotsFilled writes a freshly recomputed fill count into the cached
// column.  Only the recount procedure calls this.
func (r *ShiftRepo) UpdateSpotsFilled(ctx context.Context, id uint64, n int) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE shifts SET spots_filled=? WHERE id=?", n, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, gErr := r.GetByID(ctx, id); gErr != nil {
			return gErr
		}
	}
	return nil
}

// UpdateSpotsFilledTx is UpdateSpotsFilled inside an existing transaction.
func (r *ShiftRepo) UpdateSpotsFilledTx(ctx context.Context, tx *sql.Tx, id uint64, n int) error {
	_, err := tx.ExecContext(ctx, "UPDATE shifts SET spots_filled=? WHERE id=?", n, id)
	return err
}

// Delete removes a shift.  Its signups go with it via ON DELETE CASCADE.
func (r *ShiftRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM shifts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShiftNotFound
	}
	return nil
}

// ListByEvent returns an event's shifts.  Inactive shifts are hidden unless
// includeInactive is set.
func (r *ShiftRepo) ListByEvent(ctx context.Context, eventID uint64, includeInactive bool) ([]model.Shift, error) {
	q := "SELECT " + shiftCols + " FROM shifts WHERE event_id=?"
	if !includeInactive {
		q += " AND is_active=1"
	}
	q += " ORDER BY start_time ASC, id ASC"
	rows, err := r.DB.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	shifts := []model.Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shifts, nil
}
