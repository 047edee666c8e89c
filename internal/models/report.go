package models

// Derived report aggregates. These are never persisted; the report service
// builds them from filtered tickets and the PDF/XLSX renderers consume them.

// GroupSubtotal accumulates the per-month figures. Sums are plain float
// accumulations seeded at zero; malformed numeric strings contribute zero.
type GroupSubtotal struct {
	Quantity   float64 `json:"quantity"`
	TotalValue float64 `json:"total_value"`
	Distance   float64 `json:"distance"`
}

// MonthGroup is the set of tickets sharing a calendar year-month, in input
// order, with its subtotal.
type MonthGroup struct {
	Key      string          `json:"key"`   // "2024-01"
	Title    string          `json:"title"` // "JANEIRO 2024"
	Rows     []FuelingTicket `json:"rows"`
	Subtotal GroupSubtotal   `json:"subtotal"`
}

// MonthlyReport is the prepared monthly report: month groups in
// first-encountered order plus the grand total over every group.
type MonthlyReport struct {
	Groups     []MonthGroup `json:"groups"`
	GrandTotal float64      `json:"grand_total"`
	Subtitle   string       `json:"subtitle"`
}

// RowCount returns the total number of ticket rows across all groups
func (r *MonthlyReport) RowCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Rows)
	}
	return n
}
