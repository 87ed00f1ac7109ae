package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/brightwood-pta/portal/internal/model"
	"github.com/brightwood-pta/portal/internal/repository"
	"github.com/brightwood-pta/portal/internal/storage"
)

// DocumentHandler serves the document library: newsletters, meeting minutes
// and forms.  Metadata lives in the database; blobs go through the BlobStore.
type DocumentHandler struct {
	Docs   *repository.DocumentRepo
	Blobs  storage.BlobStore
	Logger *zap.Logger
}

func NewDocumentHandler(d *repository.DocumentRepo, b storage.BlobStore, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{Docs: d, Blobs: b, Logger: logger}
}

func documentError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrDocumentNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// List handles GET /v1/documents.  Public.
func (h *DocumentHandler) List(c echo.Context) error {
	docs, err := h.Docs.List(c.Request().Context())
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"documents": docs})
}

// Download handles GET /v1/documents/:id/download, streaming the blob with
// its original name and content type.
func (h *DocumentHandler) Download(c echo.Context) error {
	id := paramID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	doc, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		return documentError(c, err)
	}
	rc, err := h.Blobs.Open(ctx, doc.StoredKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	defer rc.Close()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.FileName+`"`)
	return c.Stream(http.StatusOK, doc.ContentType, rc)
}

// Upload handles POST /v1/documents: multipart form with a "file" part and a
// "title" field.  The blob is written first; if the metadata insert then
// fails the blob is removed again so storage does not accumulate orphans.
func (h *DocumentHandler) Upload(c echo.Context) error {
	title := c.FormValue("title")
	fh, err := c.FormFile("file")
	if err != nil || title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and file are required"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable upload"})
	}
	defer src.Close()

	ctx := c.Request().Context()
	key, size, err := h.Blobs.Save(ctx, fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	doc := &model.Document{
		Title:       title,
		FileName:    fh.Filename,
		StoredKey:   key,
		ContentType: contentType,
		SizeBytes:   size,
	}
	if uid, uErr := getUserID(c); uErr == nil && uid != 0 {
		doc.UploadedBy = &uid
	}
	if err := h.Docs.Create(ctx, doc); err != nil {
		if dErr := h.Blobs.Delete(ctx, key); dErr != nil && h.Logger != nil {
			h.Logger.Warn("orphan blob left behind", zap.String("key", key), zap.Error(dErr))
		}
		return documentError(c, err)
	}
	created, err := h.Docs.GetByID(ctx, doc.ID)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"document": created})
}

// Delete handles DELETE /v1/documents?id=N, removing both the metadata row
// and the stored blob.
func (h *DocumentHandler) Delete(c echo.Context) error {
	id := queryID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	ctx := c.Request().Context()
	doc, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		return documentError(c, err)
	}
	if err := h.Docs.Delete(ctx, id); err != nil {
		return documentError(c, err)
	}
	if err := h.Blobs.Delete(ctx, doc.StoredKey); err != nil && h.Logger != nil {
		h.Logger.Warn("blob delete failed", zap.String("key", doc.StoredKey), zap.Error(err))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
