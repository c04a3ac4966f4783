package papers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanjelito/hackatonNasa2025/domain"
	"github.com/hanjelito/hackatonNasa2025/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.InsertPaper(context.Background(), &domain.Paper{
		ID:        "P1",
		Title:     "Circadian disruption in long-duration crews",
		Abstract:  "Sleep and circadian markers on orbit.",
		Year:      2022,
		Organisms: []string{string(domain.OrganismHuman)},
		Stressors: []string{string(domain.StressorCircadianDisruption)},
	}))
	return NewService(st, nil)
}

func TestSearchNormalizesFilterCasing(t *testing.T) {
	s := newTestService(t)

	results, err := s.Search(context.Background(), &domain.SearchRequest{
		Filters: []domain.SearchFilter{
			{Name: domain.FilterOrganisms, Values: []string{"HUMAN"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "P1", results[0].ID)
}

func TestSearchRejectsUnknownFilterName(t *testing.T) {
	s := newTestService(t)

	_, err := s.Search(context.Background(), &domain.SearchRequest{
		Filters: []domain.SearchFilter{{Name: "moods", Values: []string{"happy"}}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchRejectsUnknownFilterValue(t *testing.T) {
	s := newTestService(t)

	_, err := s.Search(context.Background(), &domain.SearchRequest{
		Filters: []domain.SearchFilter{
			{Name: domain.FilterOrganisms, Values: []string{"unicorn"}},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchRejectsOutOfRangeLimit(t *testing.T) {
	s := newTestService(t)

	_, err := s.Search(context.Background(), &domain.SearchRequest{Limit: 1000})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchEmptyResultIsNotNil(t *testing.T) {
	s := newTestService(t)

	results, err := s.Search(context.Background(), &domain.SearchRequest{Query: "nothing matches this"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestGetRequiresPaperID(t *testing.T) {
	s := newTestService(t)

	_, err := s.Get(context.Background(), " ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilterValuesCoverAllFacets(t *testing.T) {
	s := newTestService(t)

	facets := s.FilterValues()
	require.Len(t, facets, 5)

	names := make(map[string]bool)
	for _, f := range facets {
		names[f.Name] = true
		assert.NotEmpty(t, f.Label)
		assert.NotEmpty(t, f.Values)
	}
	for _, want := range []string{
		domain.FilterStudyTypes, domain.FilterOrganisms, domain.FilterPlatforms,
		domain.FilterStressors, domain.FilterAgencies,
	} {
		assert.True(t, names[want], "missing facet %s", want)
	}
}
