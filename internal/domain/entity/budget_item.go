package entity

import "time"

// BudgetItem is one costed line belonging to exactly one event.
//
// StoredTotal may be precomputed by the caller; when nil, the line total is
// derived as Quantity * UnitPrice (see the budget package).
type BudgetItem struct {
	ID          string   `json:"id"`
	EventID     string   `json:"event_id"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Supplier    string   `json:"supplier,omitempty"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	StoredTotal *float64 `json:"stored_total,omitempty"`
	Approved    bool     `json:"approved"`
	TeamID      string   `json:"team_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
