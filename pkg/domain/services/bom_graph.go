package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plansim/plansim/pkg/domain/entities"
)

// CycleError is the fatal pre-flight error returned when the BOM edge set
// contains a cycle. Members lists the items that could not be assigned a
// finite low-level code.
type CycleError struct {
	Members []entities.ItemID
}

func (e *CycleError) Error() string {
	ids := make([]string, len(e.Members))
	for i, id := range e.Members {
		ids[i] = string(id)
	}
	return fmt.Sprintf("BOM cycle detected involving: %s", strings.Join(ids, ", "))
}

// Graph is the validated BOM structure for one run: adjacency in both
// directions plus the low-level code of every item. It is built once per run
// and read-only afterwards.
type Graph struct {
	items    map[entities.ItemID]*entities.Item
	children map[entities.ItemID][]*entities.BOMEdge
	parents  map[entities.ItemID][]entities.ItemID
	level    map[entities.ItemID]int
	order    []entities.ItemID
	maxLevel int
}

// BuildGraph validates the BOM edge set against the item list and assigns
// low-level codes: items no other item uses sit at level 0, and every other
// item sits one past the deepest of its parents. A cycle makes a finite
// assignment impossible and fails the build with *CycleError.
func BuildGraph(items []*entities.Item, edges []*entities.BOMEdge) (*Graph, error) {
	g := &Graph{
		items:    make(map[entities.ItemID]*entities.Item, len(items)),
		children: make(map[entities.ItemID][]*entities.BOMEdge),
		parents:  make(map[entities.ItemID][]entities.ItemID),
		level:    make(map[entities.ItemID]int, len(items)),
	}

	for _, item := range items {
		if _, exists := g.items[item.ID]; exists {
			return nil, fmt.Errorf("duplicate item: %s", item.ID)
		}
		g.items[item.ID] = item
	}

	parentCount := make(map[entities.ItemID]int, len(items))
	for _, edge := range edges {
		if _, known := g.items[edge.ParentID]; !known {
			return nil, fmt.Errorf("BOM edge references unknown parent: %s", edge.ParentID)
		}
		if _, known := g.items[edge.ChildID]; !known {
			return nil, fmt.Errorf("BOM edge references unknown child: %s", edge.ChildID)
		}
		g.children[edge.ParentID] = append(g.children[edge.ParentID], edge)
		g.parents[edge.ChildID] = append(g.parents[edge.ChildID], edge.ParentID)
		parentCount[edge.ChildID]++
	}

	// Deterministic edge order per parent
	for _, siblings := range g.children {
		sort.Slice(siblings, func(i, j int) bool {
			return siblings[i].ChildID < siblings[j].ChildID
		})
	}

	// Kahn's algorithm over parent->child edges. An item is ready once every
	// item that uses it has been assigned a level.
	queue := make([]entities.ItemID, 0, len(items))
	for id := range g.items {
		if parentCount[id] == 0 {
			g.level[id] = 0
			queue = append(queue, id)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	assigned := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		assigned++

		var ready []entities.ItemID
		for _, edge := range g.children[current] {
			childLevel := g.level[current] + 1
			if existing, seen := g.level[edge.ChildID]; !seen || childLevel > existing {
				g.level[edge.ChildID] = childLevel
			}
			parentCount[edge.ChildID]--
			if parentCount[edge.ChildID] == 0 {
				ready = append(ready, edge.ChildID)
			}
		}
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		queue = append(queue, ready...)
	}

	if assigned != len(g.items) {
		return nil, &CycleError{Members: g.cycleMembers(parentCount)}
	}

	g.order = make([]entities.ItemID, 0, len(g.items))
	for id := range g.items {
		g.order = append(g.order, id)
		if g.level[id] > g.maxLevel {
			g.maxLevel = g.level[id]
		}
	}
	sort.Slice(g.order, func(i, j int) bool {
		if g.level[g.order[i]] != g.level[g.order[j]] {
			return g.level[g.order[i]] < g.level[g.order[j]]
		}
		return g.order[i] < g.order[j]
	})

	return g, nil
}

// cycleMembers narrows the items Kahn's algorithm could not assign down to
// those actually sitting on a cycle, by repeatedly discarding unassigned
// items none of whose children are themselves unassigned.
func (g *Graph) cycleMembers(parentCount map[entities.ItemID]int) []entities.ItemID {
	remaining := make(map[entities.ItemID]bool)
	for id := range g.items {
		if parentCount[id] > 0 {
			remaining[id] = true
		}
	}

	for {
		var prune []entities.ItemID
		for id := range remaining {
			onCycle := false
			for _, edge := range g.children[id] {
				if remaining[edge.ChildID] {
					onCycle = true
					break
				}
			}
			if !onCycle {
				prune = append(prune, id)
			}
		}
		if len(prune) == 0 {
			break
		}
		for _, id := range prune {
			delete(remaining, id)
		}
	}

	members := make([]entities.ItemID, 0, len(remaining))
	for id := range remaining {
		members = append(members, id)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members
}

// PlanningOrder returns every item sorted so that each appears strictly
// after all items that use it as a component, ties broken by item ID.
func (g *Graph) PlanningOrder() []entities.ItemID {
	out := make([]entities.ItemID, len(g.order))
	copy(out, g.order)
	return out
}

// Levels returns items grouped by low-level code in ascending level order.
// Items within one level have no BOM relationship to each other and may be
// netted concurrently.
func (g *Graph) Levels() [][]entities.ItemID {
	levels := make([][]entities.ItemID, g.maxLevel+1)
	for _, id := range g.order {
		l := g.level[id]
		levels[l] = append(levels[l], id)
	}
	return levels
}

// Level returns the low-level code assigned to an item.
func (g *Graph) Level(id entities.ItemID) int {
	return g.level[id]
}

// Item returns the item master record for an ID.
func (g *Graph) Item(id entities.ItemID) *entities.Item {
	return g.items[id]
}

// Children returns the outgoing BOM edges of an item in deterministic order.
func (g *Graph) Children(id entities.ItemID) []*entities.BOMEdge {
	return g.children[id]
}

// HasChildren reports whether an item has any BOM components, which decides
// whether its planned orders are production or purchase orders.
func (g *Graph) HasChildren(id entities.ItemID) bool {
	return len(g.children[id]) > 0
}

// Parents returns the item IDs that use the given item as a component.
func (g *Graph) Parents(id entities.ItemID) []entities.ItemID {
	return g.parents[id]
}
