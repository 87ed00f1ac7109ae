// Package storage abstracts the blob store behind the document library.  The
// production deployment points at a managed bucket; this package's local-disk
// implementation keeps the same contract for self-hosting and tests.
package storage

import (
	"context"
	"io"
)

// BlobStore saves and serves uploaded files by opaque key.  Keys are chosen
// by the store on Save and recorded on the document row.
type BlobStore interface {
	// Save writes r under a fresh key derived from the original file name's
	// extension and returns that key.
	Save(ctx context.Context, originalName string, r io.Reader) (key string, size int64, err error)
	// Open returns a reader for the stored blob.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the stored blob.  Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
