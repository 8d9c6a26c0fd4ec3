package service

import (
	"github.com/oasis/talentboard/internal/catalog"
	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/filter"
)

// BoardService serves the candidate-facing job list.
type BoardService struct {
	catalog *catalog.Catalog
}

func NewBoardService(jobCatalog *catalog.Catalog) *BoardService {
	return &BoardService{catalog: jobCatalog}
}

// Search runs the strict filter over the current catalog snapshot and falls
// back to the trending ranking when nothing matches. The second return value
// reports whether the fallback produced the list.
func (s *BoardService) Search(criteria domain.FilterCriteria) ([]domain.Job, bool) {
	return filter.Rank(s.catalog.Snapshot(), criteria)
}
