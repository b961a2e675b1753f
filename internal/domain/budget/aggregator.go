// Package budget computes derived totals over budget item collections.
// Everything here is pure: no persistence, no side effects.
package budget

import (
	"math"

	"github.com/planora/eventops/internal/domain/entity"
)

// LineTotal returns the monetary value of one budget line. A stored total is
// used only when it is a definite, finite number; otherwise the total is
// derived from quantity and unit price.
func LineTotal(item *entity.BudgetItem) float64 {
	if item.StoredTotal != nil && !math.IsNaN(*item.StoredTotal) && !math.IsInf(*item.StoredTotal, 0) {
		return *item.StoredTotal
	}
	return item.Quantity * item.UnitPrice
}

// EventTotal sums line totals over the items belonging to the given event.
// An event with no items totals zero.
func EventTotal(items []*entity.BudgetItem, eventID string) float64 {
	var total float64
	for _, item := range items {
		if item.EventID == eventID {
			total += LineTotal(item)
		}
	}
	return total
}

// ApprovedTotal sums line totals over items whose approved flag is set.
func ApprovedTotal(items []*entity.BudgetItem) float64 {
	var total float64
	for _, item := range items {
		if item.Approved {
			total += LineTotal(item)
		}
	}
	return total
}

// Summary holds the approved-vs-pending split over a collection of items.
type Summary struct {
	Total    float64 `json:"total"`
	Approved float64 `json:"approved"`
	Pending  float64 `json:"pending"`
}

// Summarize computes the full split in one pass.
func Summarize(items []*entity.BudgetItem) Summary {
	var s Summary
	for _, item := range items {
		line := LineTotal(item)
		s.Total += line
		if item.Approved {
			s.Approved += line
		}
	}
	s.Pending = s.Total - s.Approved
	return s
}
