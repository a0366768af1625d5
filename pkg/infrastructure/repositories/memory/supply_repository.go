package memory

import (
	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/domain/repositories"
)

// SupplyRepository provides in-memory scheduled receipt storage
type SupplyRepository struct {
	receipts    []entities.ScheduledReceipt
	itemIndexes map[entities.ItemID][]int
}

// NewSupplyRepository creates a new in-memory supply repository
func NewSupplyRepository(expectedReceipts int) *SupplyRepository {
	return &SupplyRepository{
		receipts:    make([]entities.ScheduledReceipt, 0, expectedReceipts),
		itemIndexes: make(map[entities.ItemID][]int),
	}
}

// Verify interface compliance
var _ repositories.SupplyRepository = (*SupplyRepository)(nil)

// LoadReceipts loads scheduled receipts into the repository
func (r *SupplyRepository) LoadReceipts(receipts []*entities.ScheduledReceipt) error {
	for _, rcpt := range receipts {
		r.AddReceipt(*rcpt)
	}
	return nil
}

// AddReceipt adds a scheduled receipt to the repository
func (r *SupplyRepository) AddReceipt(rcpt entities.ScheduledReceipt) {
	index := len(r.receipts)
	r.receipts = append(r.receipts, rcpt)
	r.itemIndexes[rcpt.ItemID] = append(r.itemIndexes[rcpt.ItemID], index)
}

// GetReceipts returns all scheduled receipts
func (r *SupplyRepository) GetReceipts() ([]*entities.ScheduledReceipt, error) {
	var receipts []*entities.ScheduledReceipt
	for i := range r.receipts {
		receipts = append(receipts, &r.receipts[i])
	}
	return receipts, nil
}

// GetReceiptsFor returns the scheduled receipts of one item
func (r *SupplyRepository) GetReceiptsFor(id entities.ItemID) ([]*entities.ScheduledReceipt, error) {
	indexes := r.itemIndexes[id]
	receipts := make([]*entities.ScheduledReceipt, 0, len(indexes))
	for _, i := range indexes {
		receipts = append(receipts, &r.receipts[i])
	}
	return receipts, nil
}
