package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hanjelito/hackatonNasa2025/domain"
	"github.com/hanjelito/hackatonNasa2025/papers"
	"github.com/hanjelito/hackatonNasa2025/session"
	"github.com/hanjelito/hackatonNasa2025/tests/helpers"
)

func newPapersEnv(t *testing.T) *Handler {
	t.Helper()
	st := helpers.NewTestSQLiteStore(t)

	seed := []*domain.Paper{
		{
			ID:        "P1",
			Title:     "Microgravity effects on murine bone density",
			Abstract:  "Bone loss in mice aboard the ISS.",
			Year:      2023,
			Organisms: []string{string(domain.OrganismMouse)},
			Agencies:  []string{string(domain.AgencyNASA)},
		},
		{
			ID:        "P2",
			Title:     "Radiation response of Arabidopsis seedlings",
			Abstract:  "Plant growth under ionizing radiation.",
			Year:      2021,
			Organisms: []string{string(domain.OrganismPlant)},
			Agencies:  []string{string(domain.AgencyESA)},
		},
	}
	for _, p := range seed {
		if err := st.InsertPaper(context.Background(), p); err != nil {
			t.Fatalf("InsertPaper failed: %v", err)
		}
	}

	sessions := session.NewManager(st, testTimeout, nil)
	return NewHandler(sessions, nil, papers.NewService(st, nil), nil)
}

func TestSearchPapersByText(t *testing.T) {
	h := newPapersEnv(t)

	rec := doJSON(t, h.SearchPapers, http.MethodPost, "/papers/search", `{"query":"Arabidopsis"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Papers []domain.Paper `json:"papers"`
		Count  int            `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || resp.Papers[0].ID != "P2" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSearchPapersByFilterCaseInsensitive(t *testing.T) {
	h := newPapersEnv(t)

	body := `{"filters":[{"name":"organisms","values":["mouse"]}]}`
	rec := doJSON(t, h.SearchPapers, http.MethodPost, "/papers/search", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Papers []domain.Paper `json:"papers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Papers) != 1 || resp.Papers[0].ID != "P1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSearchPapersUnknownFilterValue(t *testing.T) {
	h := newPapersEnv(t)

	body := `{"filters":[{"name":"organisms","values":["dragon"]}]}`
	rec := doJSON(t, h.SearchPapers, http.MethodPost, "/papers/search", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetPaperFound(t *testing.T) {
	h := newPapersEnv(t)

	rec := doJSON(t, h.GetPaper, http.MethodGet, "/papers/P1", "", "paper_id", "P1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var paper domain.Paper
	if err := json.Unmarshal(rec.Body.Bytes(), &paper); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if paper.ID != "P1" {
		t.Fatalf("unexpected paper: %+v", paper)
	}
}

func TestGetPaperNotFound(t *testing.T) {
	h := newPapersEnv(t)

	rec := doJSON(t, h.GetPaper, http.MethodGet, "/papers/nope", "", "paper_id", "nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetFilterValues(t *testing.T) {
	h := newPapersEnv(t)

	rec := doJSON(t, h.GetFilterValues, http.MethodGet, "/papers/filters", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Filters []domain.FilterValue `json:"filters"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Filters) != 5 {
		t.Fatalf("expected 5 facets, got %d", len(resp.Filters))
	}
	for _, f := range resp.Filters {
		if f.Name == "" || f.Label == "" || len(f.Values) == 0 {
			t.Fatalf("incomplete facet: %+v", f)
		}
	}
}
