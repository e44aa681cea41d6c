package domain

// Redemption is the append-only header row for a points redemption. The sum
// of its items' point costs at redemption time equals PointsSpent.
type Redemption struct {
	ID          int64  `db:"id" json:"id"`
	CustomerID  int64  `db:"customer_id" json:"-"`
	PointsSpent int64  `db:"points_spent" json:"pointsSpent"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}

// RedemptionItem links a redemption to one redeemable with the quantity taken.
type RedemptionItem struct {
	ID           int64 `db:"id" json:"-"`
	RedemptionID int64 `db:"redemption_id" json:"-"`
	RedeemableID int64 `db:"redeemable_product_id" json:"-"`
	Quantity     int64 `db:"quantity" json:"quantity"`
}
