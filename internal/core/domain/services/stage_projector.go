package services

import (
	"sort"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// Group is the display unit of the board: the line items of one stage that
// share a group key. Members keep their own attributes.
type Group struct {
	Key    string
	Orders []*order.Order
	// ByID marks the singleton group of an order without an order number.
	// Its Key is the order ID and never merges with a numbered group.
	ByID bool
	// Date is the earliest display date among the members.
	Date time.Time
}

// Board maps every stage to its groups. All five stages are always present.
type Board map[order.Stage][]Group

// Count returns the number of orders (not groups) in stage.
func (b Board) Count(stage order.Stage) int {
	n := 0
	for _, g := range b[stage] {
		n += len(g.Orders)
	}
	return n
}

// Total returns the number of orders on the board.
func (b Board) Total() int {
	n := 0
	for _, s := range order.AllStages() {
		n += b.Count(s)
	}
	return n
}

// StageProjector builds a Board from a snapshot of orders.
//
// Every order lands in exactly one stage, decided by its own markers only.
// Inside a stage, orders with the same group key form one Group; orders
// without an order number are singleton groups keyed by their ID. Sibling
// items that sit in different stages appear in each of those stages
// separately, since classification is per line item.
//
// Groups are ordered newest Date first, ties broken by key. Members keep the
// order of the input slice.
type StageProjector struct{}

func NewStageProjector() StageProjector {
	return StageProjector{}
}

// Project is pure: it holds no state between calls and skips nil or
// unconstructed entries.
func (StageProjector) Project(orders []*order.Order) Board {
	board := make(Board, len(order.AllStages()))
	for _, s := range order.AllStages() {
		board[s] = []Group{}
	}

	type slot struct {
		stage order.Stage
		key   string
		byID  bool
	}
	positions := make(map[slot]int)

	for _, o := range orders {
		if o.Validate() != nil {
			continue
		}
		stage := o.Stage()
		at := slot{stage: stage, key: o.GroupKey(), byID: o.Number() == ""}
		date := o.DisplayDate()

		pos, ok := positions[at]
		if !ok {
			board[stage] = append(board[stage], Group{Key: at.key, Date: date, ByID: at.byID})
			pos = len(board[stage]) - 1
			positions[at] = pos
		}

		g := &board[stage][pos]
		g.Orders = append(g.Orders, o)
		if date.Before(g.Date) {
			g.Date = date
		}
	}

	for _, s := range order.AllStages() {
		groups := board[s]
		sort.SliceStable(groups, func(i, j int) bool {
			if !groups[i].Date.Equal(groups[j].Date) {
				return groups[i].Date.After(groups[j].Date)
			}
			if groups[i].Key != groups[j].Key {
				return groups[i].Key < groups[j].Key
			}
			return !groups[i].ByID && groups[j].ByID
		})
	}

	return board
}
