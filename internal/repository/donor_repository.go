package repository

import (
	"context"
	"database/sql"

	"github.com/brightwood-pta/portal/internal/model"
)

// DonorRepo provides access to the 'donors' table.
type DonorRepo struct{ DB *sql.DB }

func NewDonorRepo(db *sql.DB) *DonorRepo { return &DonorRepo{DB: db} }

const donorCols = "id,name,level,website,logo_url,is_visible,created_at,updated_at"

func scanDonor(row interface{ Scan(...any) error }) (model.Donor, error) {
	var d model.Donor
	err := row.Scan(&d.ID, &d.Name, &d.Level, &d.Website, &d.LogoURL, &d.IsVisible, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *DonorRepo) Create(ctx context.Context, d *model.Donor) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO donors (name, level, website, logo_url, is_visible) VALUES (?,?,?,?,?)",
		d.Name, d.Level, d.Website, d.LogoURL, d.IsVisible)
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

func (r *DonorRepo) GetByID(ctx context.Context, id uint64) (model.Donor, error) {
	d, err := scanDonor(r.DB.QueryRowContext(ctx,
		"SELECT "+donorCols+" FROM donors WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Donor{}, ErrDonorNotFound
	}
	return d, err
}

func (r *DonorRepo) Update(ctx context.Context, d *model.Donor) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE donors SET name=?, level=?, website=?, logo_url=?, is_visible=? WHERE id=?",
		d.Name, d.Level, d.Website, d.LogoURL, d.IsVisible, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gErr := r.GetByID(ctx, d.ID); gErr != nil {
			return gErr
		}
	}
	return nil
}

func (r *DonorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM donors WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDonorNotFound
	}
	return nil
}

// List returns donors grouped by level then name.  The public site passes
// visibleOnly; the admin list does not.
func (r *DonorRepo) List(ctx context.Context, visibleOnly bool) ([]model.Donor, error) {
	q := "SELECT " + donorCols + " FROM donors"
	if visibleOnly {
		q += " WHERE is_visible=1"
	}
	q += " ORDER BY level ASC, name ASC"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	donors := []model.Donor{}
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return donors, nil
}
