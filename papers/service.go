// Package papers provides catalogue search and taxonomy lookups.
package papers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hanjelito/hackatonNasa2025/domain"
	"github.com/hanjelito/hackatonNasa2025/store"
)

// maxSearchLimit caps a single search page.
const maxSearchLimit = 100

// Service answers catalogue queries.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

// NewService creates a paper service.
func NewService(st store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger}
}

// Search runs a compound text + filter query. Filter values are resolved
// against the taxonomy enums case-insensitively; a value that matches no
// enum member is rejected before the store is consulted.
func (s *Service) Search(ctx context.Context, req *domain.SearchRequest) ([]domain.Paper, error) {
	if req.Limit < 0 || req.Limit > maxSearchLimit {
		return nil, fmt.Errorf("limit out of range: %w", domain.ErrInvalidInput)
	}

	normalized := make([]domain.SearchFilter, 0, len(req.Filters))
	for _, f := range req.Filters {
		values, err := normalizeFilter(f)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			continue
		}
		normalized = append(normalized, domain.SearchFilter{Name: f.Name, Values: values})
	}

	results, err := s.store.SearchPapers(ctx, &domain.SearchRequest{
		Query:   strings.TrimSpace(req.Query),
		Filters: normalized,
		Limit:   req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("paper search: %w", err)
	}
	if results == nil {
		results = []domain.Paper{}
	}
	return results, nil
}

// Get retrieves one paper. Returns nil when absent.
func (s *Service) Get(ctx context.Context, paperID string) (*domain.Paper, error) {
	if strings.TrimSpace(paperID) == "" {
		return nil, fmt.Errorf("paper_id is required: %w", domain.ErrInvalidInput)
	}
	return s.store.GetPaper(ctx, paperID)
}

// FilterValues lists the taxonomy facets a client can filter on.
func (s *Service) FilterValues() []domain.FilterValue {
	return domain.FilterValues()
}

// filterEnums maps filter names to their allowed value sets.
var filterEnums = map[string]func() []string{
	domain.FilterStudyTypes: domain.StudyTypeValues,
	domain.FilterOrganisms:  domain.OrganismValues,
	domain.FilterPlatforms:  domain.PlatformValues,
	domain.FilterStressors:  domain.StressorValues,
	domain.FilterAgencies:   domain.SpaceAgencyValues,
}

func normalizeFilter(f domain.SearchFilter) ([]string, error) {
	valuesFn, ok := filterEnums[f.Name]
	if !ok {
		return nil, fmt.Errorf("unknown filter %q: %w", f.Name, domain.ErrInvalidInput)
	}
	allowed := valuesFn()

	var values []string
	for _, raw := range f.Values {
		v, ok := domain.EnumFromString(raw, allowed)
		if !ok {
			return nil, fmt.Errorf("unknown %s value %q: %w", f.Name, raw, domain.ErrInvalidInput)
		}
		values = append(values, v)
	}
	return values, nil
}
