package repository

import (
	"context"
	"database/sql"

	"github.com/brightwood-pta/portal/internal/model"
)

// SignupRepo provides access to the 'signups' table.  CountActive is the
// authoritative side of the recount procedure: it always goes back to the
// rows, never to the cached counter on the shift.
type SignupRepo struct{ DB *sql.DB }

func NewSignupRepo(db *sql.DB) *SignupRepo { return &SignupRepo{DB: db} }

const signupCols = "id,shift_id,name,email,user_id,status,created_at"

func scanSignup(row interface{ Scan(...any) error }) (model.Signup, error) {
	var s model.Signup
	err := row.Scan(&s.ID, &s.ShiftID, &s.Name, &s.Email, &s.UserID, &s.Status, &s.CreatedAt)
	return s, err
}

// Create inserts a signup row and sets its ID and CreatedAt.
func (r *SignupRepo) Create(ctx context.Context, s *model.Signup) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO signups (shift_id, name, email, user_id, status) VALUES (?,?,?,?,?)",
		s.ShiftID, s.Name, s.Email, s.UserID, s.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	// Re-read to pick up the database-assigned creation timestamp.
	created, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = created
	return nil
}

// CreateTx is Create inside an existing transaction, without the re-read.
func (r *SignupRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Signup) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO signups (shift_id, name, email, user_id, status) VALUES (?,?,?,?,?)",
		s.ShiftID, s.Name, s.Email, s.UserID, s.Status)
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

// GetByID fetches one signup.
func (r *SignupRepo) GetByID(ctx context.Context, id uint64) (model.Signup, error) {
	s, err := scanSignup(r.DB.QueryRowContext(ctx,
		"SELECT "+signupCols+" FROM signups WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Signup{}, ErrSignupNotFound
	}
	return s, err
}

// UpdateStatus sets a signup's lifecycle status.  The caller validates the
// value; this only reports ErrSignupNotFound when the row is missing.
func (r *SignupRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE signups SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// A repeated identical write also affects 0 rows on MySQL, so check
		// existence before deciding this is a miss.
		if _, gErr := r.GetByID(ctx, id); gErr != nil {
			return gErr
		}
	}
	return nil
}

// Delete hard-deletes a signup row.
func (r *SignupRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM signups WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSignupNotFound
	}
	return nil
}

// CountActive returns the number of signups for a shift whose status is not
// "cancelled".  This is the authoritative fill count.
func (r *SignupRepo) CountActive(ctx context.Context, shiftID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM signups WHERE shift_id=? AND status <> ?",
		shiftID, model.SignupStatusCancelled).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CountActiveTx is CountActive inside an existing transaction.
func (r *SignupRepo) CountActiveTx(ctx context.Context, tx *sql.Tx, shiftID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM signups WHERE shift_id=? AND status <> ?",
		shiftID, model.SignupStatusCancelled).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ListByShift returns all signups for a shift, oldest first.  Cancelled rows
// are included; the admin list renders them struck through.
func (r *SignupRepo) ListByShift(ctx context.Context, shiftID uint64) ([]model.Signup, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+signupCols+" FROM signups WHERE shift_id=? ORDER BY created_at ASC, id ASC", shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	signups := []model.Signup{}
	for rows.Next() {
		s, err := scanSignup(rows)
		if err != nil {
			return nil, err
		}
		signups = append(signups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return signups, nil
}
