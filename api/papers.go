package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hanjelito/hackatonNasa2025/domain"
)

// SearchPapers searches the catalogue with a text query and enum filters.
// POST /papers/search
func (h *Handler) SearchPapers(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid_input", "invalid request body"))
	}

	results, err := h.papers.Search(ctx, &req)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"papers": results,
		"count":  len(results),
	})
}

// GetPaper returns one paper by ID.
// GET /papers/:paper_id
func (h *Handler) GetPaper(c echo.Context) error {
	ctx := c.Request().Context()
	paperID := c.Param("paper_id")

	paper, err := h.papers.Get(ctx, paperID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	if paper == nil {
		return c.JSON(http.StatusNotFound, errorBody("not_found", "paper not found"))
	}

	return c.JSON(http.StatusOK, paper)
}

// GetFilterValues lists the taxonomy facets and their allowed values.
// GET /papers/filters
func (h *Handler) GetFilterValues(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"filters": h.papers.FilterValues(),
	})
}
