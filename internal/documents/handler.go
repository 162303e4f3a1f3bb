package documents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"docviewer-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:userID/documents", h.grouped)
	rg.GET("/users/:userID/documents/:docID/download", h.download)
	rg.GET("/users/:userID/documents/:docID/preview", h.preview)
}

func (h *Handler) grouped(c *gin.Context) {
	view, err := h.Svc.GroupedForUser(c.Request.Context(), c.Param("userID"))
	if err != nil {
		h.fail(c, err, "failed to load documents")
		return
	}
	respond.OK(c, view)
}

func (h *Handler) download(c *gin.Context) {
	docID := c.Param("docID")
	c.Set("documentId", docID)

	dl, err := h.Svc.DownloadDocument(c.Request.Context(), c.Param("userID"), docID)
	if err != nil {
		h.fail(c, err, "failed to download document")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	c.Data(http.StatusOK, "application/pdf", dl.Data)
}

func (h *Handler) preview(c *gin.Context) {
	docID := c.Param("docID")
	c.Set("documentId", docID)

	pv, err := h.Svc.PreviewDocument(c.Request.Context(), c.Param("userID"), docID)
	if err != nil {
		h.fail(c, err, "failed to load preview")
		return
	}
	respond.OK(c, pv)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, "user_not_found", "user not found", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrNoFileData):
		respond.Error(c, http.StatusNotFound, "no_file_data", "document has no stored file", nil)
	case errors.Is(err, ErrCorruptData):
		respond.Error(c, http.StatusUnprocessableEntity, "corrupt_file_data", "stored file data could not be decoded", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
