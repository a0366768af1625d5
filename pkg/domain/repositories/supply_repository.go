package repositories

import "github.com/plansim/plansim/pkg/domain/entities"

// SupplyRepository provides access to committed open supply
type SupplyRepository interface {
	GetReceipts() ([]*entities.ScheduledReceipt, error)
	GetReceiptsFor(id entities.ItemID) ([]*entities.ScheduledReceipt, error)
	LoadReceipts(receipts []*entities.ScheduledReceipt) error
}
