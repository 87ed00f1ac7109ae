package repository

import (
	"context"
	"database/sql"

	"github.com/brightwood-pta/portal/internal/model"
)

// AuctionRepo provides access to the 'auction_items' table.
type AuctionRepo struct{ DB *sql.DB }

func NewAuctionRepo(db *sql.DB) *AuctionRepo { return &AuctionRepo{DB: db} }

const auctionCols = "id,title,description,donated_by,min_bid_cents,image_url,is_active,created_at,updated_at"

func scanAuctionItem(row interface{ Scan(...any) error }) (model.AuctionItem, error) {
	var a model.AuctionItem
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.DonatedBy, &a.MinBidCents, &a.ImageURL, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *AuctionRepo) Create(ctx context.Context, a *model.AuctionItem) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO auction_items (title, description, donated_by, min_bid_cents, image_url, is_active) VALUES (?,?,?,?,?,?)",
		a.Title, a.Description, a.DonatedBy, a.MinBidCents, a.ImageURL, a.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

func (r *AuctionRepo) GetByID(ctx context.Context, id uint64) (model.AuctionItem, error) {
	a, err := scanAuctionItem(r.DB.QueryRowContext(ctx,
		"SELECT "+auctionCols+" FROM auction_items WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.AuctionItem{}, ErrAuctionItemNotFound
	}
	return a, err
}

func (r *AuctionRepo) Update(ctx context.Context, a *model.AuctionItem) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE auction_items SET title=?, description=?, donated_by=?, min_bid_cents=?, image_url=?, is_active=? WHERE id=?",
		a.Title, a.Description, a.DonatedBy, a.MinBidCents, a.ImageURL, a.IsActive, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gErr := r.GetByID(ctx, a.ID); gErr != nil {
			return gErr
		}
	}
	return nil
}

func (r *AuctionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM auction_items WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAuctionItemNotFound
	}
	return nil
}

// List returns catalog items, newest first.  activeOnly hides retired items
// for the public catalog.
func (r *AuctionRepo) List(ctx context.Context, activeOnly bool) ([]model.AuctionItem, error) {
	q := "SELECT " + auctionCols + " FROM auction_items"
	if activeOnly {
		q += " WHERE is_active=1"
	}
	q += " ORDER BY created_at DESC, id DESC"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.AuctionItem{}
	for rows.Next() {
		a, err := scanAuctionItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
