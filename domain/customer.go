package domain

// Customer is a loyalty-card holder. The card number is the primary lookup
// key at the point of sale; the barcode is an optional secondary key.
type Customer struct {
	ID         int64   `db:"id" json:"-"`
	Name       string  `db:"name" json:"name"`
	CardNumber string  `db:"card_number" json:"cardNumber"`
	Barcode    *string `db:"barcode" json:"barcode"`
	Mobile     string  `db:"mobile" json:"mobile"`
	Points     int64   `db:"points" json:"points"`
}
