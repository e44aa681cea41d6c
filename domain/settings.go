package domain

// PointsSettings are the points-earning coefficients. Petrol, Diesel and Oil
// are per-unit rates; Amount is the divisor for the tendered-amount bonus.
// Absent settings rows fall back to the defaults at read time.
type PointsSettings struct {
	Petrol float64 `json:"petrol"`
	Diesel float64 `json:"diesel"`
	Oil    float64 `json:"oil"`
	Amount float64 `json:"amount"`
}

// DefaultPointsSettings returns the coefficients used when no settings rows
// have been persisted.
func DefaultPointsSettings() PointsSettings {
	return PointsSettings{Petrol: 1, Diesel: 1, Oil: 2, Amount: 10}
}

// Setting is one persisted settings row.
type Setting struct {
	Key   string  `db:"key" json:"key"`
	Value float64 `db:"value" json:"value"`
}
