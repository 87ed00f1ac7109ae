package model

import "time"

// Document mirrors the 'documents' table.  Metadata for the document library;
// the blob itself lives in the storage backend under StoredKey.
type Document struct {
	ID          uint64    `json:"id"`           // documents.id
	Title       string    `json:"title"`        // documents.title
	FileName    string    `json:"file_name"`    // documents.file_name, original upload name
	StoredKey   string    `json:"-"`            // documents.stored_key, opaque storage key
	ContentType string    `json:"content_type"` // documents.content_type
	SizeBytes   int64     `json:"size_bytes"`   // documents.size_bytes
	UploadedBy  *uint64   `json:"uploaded_by"`  // documents.uploaded_by, nullable
	CreatedAt   time.Time `json:"created_at"`   // documents.created_at
}
