package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanjelito/hackatonNasa2025/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newSession(token, paperID string, at time.Time) *domain.Session {
	return &domain.Session{
		Token:        token,
		PaperID:      paperID,
		History:      []domain.Turn{},
		LastActivity: at,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.InsertSession(ctx, newSession("t1", "P1", now)))

	got, err := s.FindSession(ctx, "t1", "P1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t1", got.Token)
	assert.Equal(t, "P1", got.PaperID)
	assert.Empty(t, got.History)
	assert.True(t, got.LastActivity.Equal(now))
}

func TestFindSessionScopedByPaper(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.InsertSession(ctx, newSession("t1", "P1", now)))

	// The same token under a different paper must not resolve.
	got, err := s.FindSession(ctx, "t1", "P2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveSessionAppendsTurnsInOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	sess := newSession("t1", "P1", now)
	require.NoError(t, s.InsertSession(ctx, sess))

	sess.History = append(sess.History,
		domain.Turn{Role: domain.RoleUser, Content: "first", Timestamp: now},
		domain.Turn{Role: domain.RoleModel, Content: "second", Timestamp: now},
	)
	require.NoError(t, s.SaveSession(ctx, sess))

	sess.History = append(sess.History,
		domain.Turn{Role: domain.RoleUser, Content: "third", Timestamp: now},
	)
	require.NoError(t, s.SaveSession(ctx, sess))

	got, err := s.FindSession(ctx, "t1", "P1")
	require.NoError(t, err)
	require.Len(t, got.History, 3)
	assert.Equal(t, "first", got.History[0].Content)
	assert.Equal(t, "second", got.History[1].Content)
	assert.Equal(t, "third", got.History[2].Content)
}

func TestSaveSessionUnknownSession(t *testing.T) {
	s := newTestStore(t)
	err := s.SaveSession(context.Background(), newSession("missing", "P1", time.Now()))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestLatestSessionPrefersRecordedHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)

	older := newSession("t1", "P1", base)
	older.History = []domain.Turn{{Role: domain.RoleUser, Content: "old turn", Timestamp: base}}
	require.NoError(t, s.InsertSession(ctx, older))
	require.NoError(t, s.InsertSession(ctx, newSession("t2", "P1", base.Add(time.Hour))))

	// An empty replacement session does not shadow the recorded history.
	got, err := s.LatestSession(ctx, "P1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t1", got.Token)

	// Once the newer session has turns of its own, it wins.
	newer, err := s.FindSession(ctx, "t2", "P1")
	require.NoError(t, err)
	newer.History = append(newer.History,
		domain.Turn{Role: domain.RoleUser, Content: "new turn", Timestamp: base.Add(time.Hour)})
	require.NoError(t, s.SaveSession(ctx, newer))

	got, err = s.LatestSession(ctx, "P1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t2", got.Token)

	got, err = s.LatestSession(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func seedPapers(t *testing.T, s *SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	papers := []*domain.Paper{
		{
			ID:        "P1",
			Title:     "Microgravity effects on murine bone density",
			Abstract:  "Bone loss in mice aboard the ISS.",
			Authors:   []string{"A. Author"},
			Year:      2023,
			Organisms: []string{string(domain.OrganismMouse)},
			Stressors: []string{string(domain.StressorMicrogravity)},
			Agencies:  []string{string(domain.AgencyNASA)},
		},
		{
			ID:        "P2",
			Title:     "Radiation response of Arabidopsis seedlings",
			Abstract:  "Plant growth under ionizing radiation.",
			Authors:   []string{"B. Author"},
			Year:      2021,
			Organisms: []string{string(domain.OrganismPlant)},
			Stressors: []string{string(domain.StressorRadiation)},
			Agencies:  []string{string(domain.AgencyESA)},
		},
	}
	for _, p := range papers {
		require.NoError(t, s.InsertPaper(ctx, p))
	}
}

func TestSearchPapersTextQuery(t *testing.T) {
	s := newTestStore(t)
	seedPapers(t, s)

	results, err := s.SearchPapers(context.Background(), &domain.SearchRequest{Query: "bone density"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "P1", results[0].ID)
}

func TestSearchPapersFilterClauses(t *testing.T) {
	s := newTestStore(t)
	seedPapers(t, s)

	results, err := s.SearchPapers(context.Background(), &domain.SearchRequest{
		Filters: []domain.SearchFilter{
			{Name: domain.FilterOrganisms, Values: []string{string(domain.OrganismPlant)}},
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "P2", results[0].ID)

	// Filters combine with AND: plant papers from NASA do not exist.
	results, err = s.SearchPapers(context.Background(), &domain.SearchRequest{
		Filters: []domain.SearchFilter{
			{Name: domain.FilterOrganisms, Values: []string{string(domain.OrganismPlant)}},
			{Name: domain.FilterAgencies, Values: []string{string(domain.AgencyNASA)}},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchPapersUnknownFilter(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SearchPapers(context.Background(), &domain.SearchRequest{
		Filters: []domain.SearchFilter{{Name: "bogus", Values: []string{"x"}}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchPapersNoClausesReturnsAll(t *testing.T) {
	s := newTestStore(t)
	seedPapers(t, s)

	results, err := s.SearchPapers(context.Background(), &domain.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	// Ordered by year desc.
	assert.Equal(t, "P1", results[0].ID)
}

func TestGetPaperAbsent(t *testing.T) {
	s := newTestStore(t)
	paper, err := s.GetPaper(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, paper)
}
