package repositories

import "github.com/plansim/plansim/pkg/domain/entities"

// BOMRepository provides access to bill of materials structure
type BOMRepository interface {
	// GetEdges returns the component edges of a parent item.
	GetEdges(parentID entities.ItemID) ([]*entities.BOMEdge, error)

	// GetEffectiveEdges returns the component edges of a parent item whose
	// effectivity window covers the given period.
	GetEffectiveEdges(parentID entities.ItemID, period entities.Period) ([]*entities.BOMEdge, error)

	GetAllEdges() ([]*entities.BOMEdge, error)
	LoadEdges(edges []*entities.BOMEdge) error
}
