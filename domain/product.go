package domain

// Product is a catalog item sold at the pump or the counter. Products are
// identified by name; stock is decremented by the sale workflow and never
// allowed to go negative.
type Product struct {
	ID            int64   `db:"id" json:"-"`
	Name          string  `db:"name" json:"name"`
	Category      string  `db:"category" json:"category"`
	PricePerUnit  float64 `db:"price_per_unit" json:"pricePerUnit"`
	Unit          string  `db:"unit" json:"unit"`
	PurchasePrice float64 `db:"purchase_price" json:"purchasePrice"`
	Stock         float64 `db:"stock" json:"stock"`
}
