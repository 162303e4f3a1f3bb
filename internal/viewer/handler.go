package viewer

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docviewer-backend/internal/audit"
	"docviewer-backend/internal/documents"
	"docviewer-backend/internal/session"
	"docviewer-backend/internal/shared/server/middleware"
	"docviewer-backend/internal/shared/server/respond"
	"docviewer-backend/internal/users"
)

// Handler drives the admin page flow: search, session state, audit trail.
// Each click maps to one request and one full round trip against the store.
type Handler struct {
	Users    *users.Service
	Docs     *documents.Service
	Sessions *session.Manager
	Audit    *audit.Service
}

// NewHandler constructs a Handler.
func NewHandler(usersSvc *users.Service, docsSvc *documents.Service, sessions *session.Manager, auditSvc *audit.Service) *Handler {
	return &Handler{Users: usersSvc, Docs: docsSvc, Sessions: sessions, Audit: auditSvc}
}

// RegisterRoutes attaches viewer routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.search)
	rg.GET("/session", h.sessionSnapshot)
	rg.POST("/session/refresh", h.refresh)
	rg.POST("/session/clear", h.clear)
	rg.POST("/session/documents/:docID/preview", h.togglePreview)
	rg.GET("/audit/recent", h.auditRecent)
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}
	c.Set("searchedEmail", email)

	sessionID := middleware.SessionIDFromContext(c)
	requestID := middleware.RequestIDFromContext(c)

	result, err := h.Users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "lookup_failed", "failed to query user database", nil)
		return
	}

	if !result.Found {
		h.Audit.RecordSearch(c.Request.Context(), email, "", 0, requestID, sessionID)
		h.Sessions.RecordSearch(sessionID, email, "")
		respond.Error(c, http.StatusNotFound, "not_found", "no user found with email: "+email, gin.H{
			"suggestions": result.Suggestions,
		})
		return
	}

	h.Audit.RecordSearch(c.Request.Context(), email, result.Record.ID, result.DuplicateCount, requestID, sessionID)
	state := h.Sessions.RecordSearch(sessionID, email, result.Record.ID)

	respond.OK(c, searchResponse{
		User:           toSummary(result.Record),
		Documents:      documents.Grouped(result.Record.User.Documents),
		DuplicateCount: result.DuplicateCount,
		Session:        state,
	})
}

func (h *Handler) sessionSnapshot(c *gin.Context) {
	respond.OK(c, h.Sessions.Snapshot(middleware.SessionIDFromContext(c)))
}

func (h *Handler) refresh(c *gin.Context) {
	at := h.Sessions.Refresh(middleware.SessionIDFromContext(c))
	respond.OK(c, gin.H{"lastRefreshed": at})
}

func (h *Handler) clear(c *gin.Context) {
	respond.OK(c, h.Sessions.Clear(middleware.SessionIDFromContext(c)))
}

func (h *Handler) togglePreview(c *gin.Context) {
	docID := c.Param("docID")
	c.Set("documentId", docID)
	visible := h.Sessions.TogglePreview(middleware.SessionIDFromContext(c), docID)
	respond.OK(c, gin.H{"documentId": docID, "previewVisible": visible})
}

func (h *Handler) auditRecent(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	events, err := h.Audit.Recent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list search events", nil)
		return
	}
	if events == nil {
		events = []audit.SearchEvent{}
	}
	respond.OK(c, events)
}
