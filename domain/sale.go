package domain

// Sale is the append-only row persisted for every recorded sale. Once
// written it is never updated or deleted.
type Sale struct {
	ID           int64   `db:"id" json:"id"`
	ProductID    int64   `db:"product_id" json:"-"`
	CustomerID   *int64  `db:"customer_id" json:"-"`
	Units        float64 `db:"units" json:"units"`
	Amount       float64 `db:"amount" json:"amount"`
	PurchaseCost float64 `db:"purchase_cost" json:"purchaseCost"`
	Profit       float64 `db:"profit" json:"profit"`
	PointsEarned int64   `db:"points_earned" json:"pointsEarned"`
	CreatedAt    string  `db:"created_at" json:"createdAt"`
}

// SaleRecord is the report shape of a sale with product and customer resolved
// to names. Walk-in sales carry the WalkInCustomer sentinel.
type SaleRecord struct {
	Product      string  `db:"product" json:"product"`
	Units        float64 `db:"units" json:"units"`
	Amount       float64 `db:"amount" json:"amount"`
	PurchaseCost float64 `db:"purchase_cost" json:"purchaseCost"`
	Customer     string  `db:"customer" json:"customer"`
	Date         string  `db:"created_at" json:"date"`
	PointsEarned int64   `db:"points_earned" json:"pointsEarned"`
	Profit       float64 `db:"profit" json:"profit"`
}

// WalkInCustomer is reported for sales recorded without a loyalty card.
const WalkInCustomer = "Walk-in Customer"
