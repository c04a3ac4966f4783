// Package api provides HTTP handlers for the paper backend.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hanjelito/hackatonNasa2025/chat"
	"github.com/hanjelito/hackatonNasa2025/papers"
	"github.com/hanjelito/hackatonNasa2025/session"
)

// Handler handles HTTP requests.
type Handler struct {
	sessions *session.Manager
	chat     *chat.Orchestrator
	papers   *papers.Service
	logger   *zap.Logger
}

// NewHandler creates a new handler.
func NewHandler(sessions *session.Manager, orchestrator *chat.Orchestrator, paperSvc *papers.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		chat:     orchestrator,
		papers:   paperSvc,
		logger:   logger,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat API
	e.POST("/chat/session", h.CreateSession)
	e.POST("/chat", h.Chat)
	e.GET("/chat/:paper_id/history", h.GetHistory)

	// Paper catalogue API
	e.POST("/papers/search", h.SearchPapers)
	e.GET("/papers/filters", h.GetFilterValues)
	e.GET("/papers/:paper_id", h.GetPaper)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
