package infra_catalog

import (
	"context"

	"github.com/humanbelnik/matchpoint/core/internal/model"
)

// Mock serves deterministic ids for local runs without a catalog key.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DiscoverPage(ctx context.Context, f model.Filters, page int) ([]model.ContentID, error) {
	const perPage = 20

	ids := make([]model.ContentID, 0, perPage)
	for i := 0; i < perPage; i++ {
		ids = append(ids, model.ContentID((page-1)*perPage+i+1))
	}
	return ids, nil
}
