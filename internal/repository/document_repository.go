package repository

import (
	"context"
	"database/sql"

	"github.com/brightwood-pta/portal/internal/model"
)

// DocumentRepo provides access to the 'documents' table.  Rows carry only
// metadata; the blob lives in the storage backend under stored_key.
type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

const documentCols = "id,title,file_name,stored_key,content_type,size_bytes,uploaded_by,created_at"

func scanDocument(row interface{ Scan(...any) error }) (model.Document, error) {
	var d model.Document
	err := row.Scan(&d.ID, &d.Title, &d.FileName, &d.StoredKey, &d.ContentType, &d.SizeBytes, &d.UploadedBy, &d.CreatedAt)
	return d, err
}

func (r *DocumentRepo) Create(ctx context.Context, d *model.Document) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO documents (title, file_name, stored_key, content_type, size_bytes, uploaded_by) VALUES (?,?,?,?,?,?)",
		d.Title, d.FileName, d.StoredKey, d.ContentType, d.SizeBytes, d.UploadedBy)
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

func (r *DocumentRepo) GetByID(ctx context.Context, id uint64) (model.Document, error) {
	d, err := scanDocument(r.DB.QueryRowContext(ctx,
		"SELECT "+documentCols+" FROM documents WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Document{}, ErrDocumentNotFound
	}
	return d, err
}

func (r *DocumentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM documents WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// List returns document metadata, newest first.
func (r *DocumentRepo) List(ctx context.Context) ([]model.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+documentCols+" FROM documents ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	docs := []model.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
