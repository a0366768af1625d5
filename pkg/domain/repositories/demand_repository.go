package repositories

import "github.com/plansim/plansim/pkg/domain/entities"

// DemandRepository provides access to independent demand data
type DemandRepository interface {
	GetDemands() ([]*entities.DemandRow, error)
	GetDemandsFor(id entities.ItemID) ([]*entities.DemandRow, error)
	LoadDemands(demands []*entities.DemandRow) error
}
