package memory

import (
	"fmt"

	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/domain/repositories"
)

// DemandRepository provides in-memory independent demand storage
type DemandRepository struct {
	demands     []entities.DemandRow
	itemIndexes map[entities.ItemID][]int
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository(expectedDemands int) *DemandRepository {
	return &DemandRepository{
		demands:     make([]entities.DemandRow, 0, expectedDemands),
		itemIndexes: make(map[entities.ItemID][]int),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemands loads demand rows into the repository. Only independent
// demand may be stored; dependent demand exists solely inside a run.
func (r *DemandRepository) LoadDemands(demands []*entities.DemandRow) error {
	for _, row := range demands {
		if row.Source != entities.Independent {
			return fmt.Errorf("demand for %s: only independent demand can be stored", row.ItemID)
		}
		r.AddDemand(*row)
	}
	return nil
}

// AddDemand adds a demand row to the repository
func (r *DemandRepository) AddDemand(row entities.DemandRow) {
	index := len(r.demands)
	r.demands = append(r.demands, row)
	r.itemIndexes[row.ItemID] = append(r.itemIndexes[row.ItemID], index)
}

// GetDemands returns all demand rows
func (r *DemandRepository) GetDemands() ([]*entities.DemandRow, error) {
	var demands []*entities.DemandRow
	for i := range r.demands {
		demands = append(demands, &r.demands[i])
	}
	return demands, nil
}

// GetDemandsFor returns the demand rows of one item
func (r *DemandRepository) GetDemandsFor(id entities.ItemID) ([]*entities.DemandRow, error) {
	indexes := r.itemIndexes[id]
	demands := make([]*entities.DemandRow, 0, len(indexes))
	for _, i := range indexes {
		demands = append(demands, &r.demands[i])
	}
	return demands, nil
}
