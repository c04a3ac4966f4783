package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hanjelito/hackatonNasa2025/domain"
)

// CreateSession creates or recovers a chat session for a paper.
// POST /chat/session
func (h *Handler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.SessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid_input", "invalid request body"))
	}
	if strings.TrimSpace(req.PaperID) == "" {
		return c.JSON(http.StatusBadRequest, errorBody("invalid_input", "paper_id is required"))
	}

	session, isNew, err := h.sessions.Obtain(ctx, req.PaperID, req.SessionToken)
	if err != nil {
		return h.errorResponse(c, err)
	}

	h.logger.Info("session obtained",
		zap.String("paper_id", req.PaperID),
		zap.Bool("is_new", isNew))

	return c.JSON(http.StatusOK, domain.SessionResponse{
		SessionToken: session.Token,
		PaperID:      session.PaperID,
		Messages:     session.History,
		IsNewSession: isNew,
		LastActivity: session.LastActivity,
	})
}

// Chat performs one turn exchange and returns the model's reply.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid_input", "invalid request body"))
	}

	reply, err := h.chat.GenerateReply(ctx, req.PaperID, req.SessionToken, req.Messages)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, reply)
}

// GetHistory returns the stored history for a paper's most recent session.
// Absence is a normal outcome: an unknown paper yields an empty list.
// GET /chat/:paper_id/history
func (h *Handler) GetHistory(c echo.Context) error {
	ctx := c.Request().Context()
	paperID := c.Param("paper_id")

	history, err := h.sessions.History(ctx, paperID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"paper_id": paperID,
		"messages": history,
	})
}
