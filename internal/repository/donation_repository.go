package repository

import (
	"context"
	"database/sql"

	"github.com/brightwood-pta/portal/internal/model"
)

// DonationRepo provides access to the 'donations' table.
type DonationRepo struct{ DB *sql.DB }

func NewDonationRepo(db *sql.DB) *DonationRepo { return &DonationRepo{DB: db} }

const donationCols = "id,donor_name,email,amount_cents,status,reference,paid_at,created_at"

func scanDonation(row interface{ Scan(...any) error }) (model.Donation, error) {
	var d model.Donation
	err := row.Scan(&d.ID, &d.DonorName, &d.Email, &d.AmountCents, &d.Status, &d.Reference, &d.PaidAt, &d.CreatedAt)
	return d, err
}

// Create inserts a pending donation carrying the provider's checkout
// reference and sets its ID.
func (r *DonationRepo) Create(ctx context.Context, d *model.Donation) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO donations (donor_name, email, amount_cents, status, reference) VALUES (?,?,?,?,?)",
		d.DonorName, d.Email, d.AmountCents, d.Status, d.Reference)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

func (r *DonationRepo) GetByID(ctx context.Context, id uint64) (model.Donation, error) {
	d, err := scanDonation(r.DB.QueryRowContext(ctx,
		"SELECT "+donationCols+" FROM donations WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Donation{}, ErrDonationNotFound
	}
	return d, err
}

func (r *DonationRepo) GetByReference(ctx context.Context, reference string) (model.Donation, error) {
	d, err := scanDonation(r.DB.QueryRowContext(ctx,
		"SELECT "+donationCols+" FROM donations WHERE reference=? LIMIT 1", reference))
	if err == sql.ErrNoRows {
		return model.Donation{}, ErrDonationNotFound
	}
	return d, err
}

// MarkPaid flips a donation to paid and stamps paid_at.  Confirming an
// already-paid reference is a no-op that still succeeds, so provider
// callbacks can be retried safely.
func (r *DonationRepo) MarkPaid(ctx context.Context, reference string) (model.Donation, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE donations SET status=?, paid_at=COALESCE(paid_at, UTC_TIMESTAMP()) WHERE reference=?",
		model.DonationStatusPaid, reference)
	if err != nil {
		return model.Donation{}, err
	}
	return r.GetByReference(ctx, reference)
}

// List returns donations, newest first.  Admin-panel only.
func (r *DonationRepo) List(ctx context.Context) ([]model.Donation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+donationCols+" FROM donations ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	donations := []model.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return donations, nil
}
