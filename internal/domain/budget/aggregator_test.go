package budget

import (
	"math"
	"testing"

	"github.com/planora/eventops/internal/domain/entity"
)

func f(v float64) *float64 { return &v }

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		item     *entity.BudgetItem
		expected float64
	}{
		{
			name:     "derived from quantity and unit price",
			item:     &entity.BudgetItem{Quantity: 3, UnitPrice: 100},
			expected: 300,
		},
		{
			name:     "stored total wins over derived",
			item:     &entity.BudgetItem{Quantity: 3, UnitPrice: 100, StoredTotal: f(42)},
			expected: 42,
		},
		{
			name:     "stored zero is a definite value",
			item:     &entity.BudgetItem{Quantity: 3, UnitPrice: 100, StoredTotal: f(0)},
			expected: 0,
		},
		{
			name:     "NaN stored total falls back to derived",
			item:     &entity.BudgetItem{Quantity: 2, UnitPrice: 50, StoredTotal: f(math.NaN())},
			expected: 100,
		},
		{
			name:     "zero quantity derives zero",
			item:     &entity.BudgetItem{Quantity: 0, UnitPrice: 99.9},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTotal(tt.item); got != tt.expected {
				t.Errorf("LineTotal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEventTotal(t *testing.T) {
	items := []*entity.BudgetItem{
		{EventID: "e1", Quantity: 3, UnitPrice: 100},
		{EventID: "e1", Quantity: 1, UnitPrice: 50, StoredTotal: f(40)},
		{EventID: "e2", Quantity: 10, UnitPrice: 10},
	}

	if got := EventTotal(items, "e1"); got != 340 {
		t.Errorf("EventTotal(e1) = %v, want 340", got)
	}
	if got := EventTotal(items, "e2"); got != 100 {
		t.Errorf("EventTotal(e2) = %v, want 100", got)
	}
	if got := EventTotal(items, "missing"); got != 0 {
		t.Errorf("EventTotal(missing) = %v, want 0", got)
	}
	if got := EventTotal(nil, "e1"); got != 0 {
		t.Errorf("EventTotal(nil) = %v, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	items := []*entity.BudgetItem{
		{EventID: "e1", Quantity: 2, UnitPrice: 100, Approved: true},
		{EventID: "e1", Quantity: 1, UnitPrice: 60},
		{EventID: "e1", StoredTotal: f(140), Approved: true},
	}

	s := Summarize(items)
	if s.Total != 400 {
		t.Errorf("Total = %v, want 400", s.Total)
	}
	if s.Approved != 340 {
		t.Errorf("Approved = %v, want 340", s.Approved)
	}
	if s.Pending != 60 {
		t.Errorf("Pending = %v, want 60", s.Pending)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.Approved != 0 || s.Pending != 0 {
		t.Errorf("Summarize(nil) = %+v, want all zero", s)
	}
}

func TestApprovedTotal(t *testing.T) {
	items := []*entity.BudgetItem{
		{Quantity: 1, UnitPrice: 10, Approved: true},
		{Quantity: 1, UnitPrice: 20},
	}
	if got := ApprovedTotal(items); got != 10 {
		t.Errorf("ApprovedTotal() = %v, want 10", got)
	}
}
