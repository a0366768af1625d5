package planning

import (
	"github.com/plansim/plansim/pkg/domain/entities"
)

// lotSizes converts a strictly positive net requirement into one or more
// order quantities under the item's lot sizing policy. Policies only ever
// pad deterministically; the total always covers the net requirement.
func lotSizes(policy entities.LotSizePolicy, net entities.Quantity) []entities.Quantity {
	switch policy.Rule {
	case entities.FixedQuantity:
		if policy.FixedQty <= 0 {
			return []entities.Quantity{net}
		}
		lots := (net + policy.FixedQty - 1) / policy.FixedQty
		return []entities.Quantity{lots * policy.FixedQty}

	case entities.MinMax:
		qty := net
		if qty < policy.MinQty {
			qty = policy.MinQty
		}
		if policy.MaxQty == 0 || qty <= policy.MaxQty {
			return []entities.Quantity{qty}
		}
		// Split into repeated max-size orders until the remainder fits.
		var orders []entities.Quantity
		remaining := net
		for remaining > policy.MaxQty {
			orders = append(orders, policy.MaxQty)
			remaining -= policy.MaxQty
		}
		if remaining > 0 {
			if remaining < policy.MinQty {
				remaining = policy.MinQty
			}
			orders = append(orders, remaining)
		}
		return orders

	default: // LotForLot
		return []entities.Quantity{net}
	}
}
