package memory

import (
	"fmt"

	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/domain/repositories"
)

// ItemRepository provides in-memory item storage
type ItemRepository struct {
	items    []entities.Item
	itemsMap map[entities.ItemID]int
}

// NewItemRepository creates a new in-memory item repository
func NewItemRepository(expectedItems int) *ItemRepository {
	return &ItemRepository{
		items:    make([]entities.Item, 0, expectedItems),
		itemsMap: make(map[entities.ItemID]int, expectedItems),
	}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// LoadItems loads items into the repository
func (r *ItemRepository) LoadItems(items []*entities.Item) error {
	for _, item := range items {
		if _, exists := r.itemsMap[item.ID]; exists {
			return fmt.Errorf("duplicate item: %s", item.ID)
		}
		r.AddItem(*item)
	}
	return nil
}

// AddItem adds an item to the repository
func (r *ItemRepository) AddItem(item entities.Item) {
	r.itemsMap[item.ID] = len(r.items)
	r.items = append(r.items, item)
}

// GetItem returns item master data for an item ID
func (r *ItemRepository) GetItem(id entities.ItemID) (*entities.Item, error) {
	index, exists := r.itemsMap[id]
	if !exists {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	return &r.items[index], nil
}

// GetAllItems returns all items
func (r *ItemRepository) GetAllItems() ([]*entities.Item, error) {
	var items []*entities.Item
	for i := range r.items {
		items = append(items, &r.items[i])
	}
	return items, nil
}
