package domain

// Redeemable is a non-fuel product exchangeable for loyalty points at a fixed
// point cost per unit.
type Redeemable struct {
	ID             int64  `db:"id" json:"-"`
	Name           string `db:"name" json:"name"`
	PointsRequired int64  `db:"points_required" json:"pointsRequired"`
	Stock          int64  `db:"stock" json:"stock"`
}
