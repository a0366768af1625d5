package memory

import (
	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/domain/repositories"
)

// BOMRepository provides in-memory BOM storage with per-parent indexing
type BOMRepository struct {
	edges       []entities.BOMEdge
	edgeIndexes map[entities.ItemID][]int
}

// NewBOMRepository creates a new in-memory BOM repository
func NewBOMRepository(expectedEdges int) *BOMRepository {
	return &BOMRepository{
		edges:       make([]entities.BOMEdge, 0, expectedEdges),
		edgeIndexes: make(map[entities.ItemID][]int),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadEdges loads BOM edges into the repository
func (r *BOMRepository) LoadEdges(edges []*entities.BOMEdge) error {
	for _, edge := range edges {
		r.AddEdge(*edge)
	}
	return nil
}

// AddEdge adds a BOM edge to the repository
func (r *BOMRepository) AddEdge(edge entities.BOMEdge) {
	index := len(r.edges)
	r.edges = append(r.edges, edge)
	r.edgeIndexes[edge.ParentID] = append(r.edgeIndexes[edge.ParentID], index)
}

// GetEdges returns the component edges of a parent item
func (r *BOMRepository) GetEdges(parentID entities.ItemID) ([]*entities.BOMEdge, error) {
	indexes := r.edgeIndexes[parentID]
	edges := make([]*entities.BOMEdge, 0, len(indexes))
	for _, i := range indexes {
		edges = append(edges, &r.edges[i])
	}
	return edges, nil
}

// GetEffectiveEdges returns the parent's edges in effect at a period
func (r *BOMRepository) GetEffectiveEdges(parentID entities.ItemID, period entities.Period) ([]*entities.BOMEdge, error) {
	var edges []*entities.BOMEdge
	for _, i := range r.edgeIndexes[parentID] {
		if r.edges[i].Effectivity.InEffect(period) {
			edges = append(edges, &r.edges[i])
		}
	}
	return edges, nil
}

// GetAllEdges returns all BOM edges
func (r *BOMRepository) GetAllEdges() ([]*entities.BOMEdge, error) {
	var edges []*entities.BOMEdge
	for i := range r.edges {
		edges = append(edges, &r.edges[i])
	}
	return edges, nil
}
