// Package pos implements the point-of-sale transaction workflows: recording
// a sale and redeeming loyalty points. Each call runs as one unit of work
// against the catalog store; a failure at any step discards every write made
// in that unit.
package pos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/fuelpos/fuelpos/internal/store"
	"github.com/fuelpos/fuelpos/internal/validate"
	"github.com/shopspring/decimal"
)

// Service bundles the transaction workflows over the catalog store.
type Service struct {
	store *store.Store
}

// New constructs a Service.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

// SaleInput are the already-decoded arguments for one sale.
type SaleInput struct {
	Product            string
	Units              float64
	Amount             float64
	CustomerCardNumber string
}

// SaleResult is the outcome of a committed sale: the created record plus
// post-sale snapshots of the product and, when a card was presented, the
// customer.
type SaleResult struct {
	Sale     domain.SaleRecord `json:"sale"`
	Product  domain.Product    `json:"product"`
	Customer *domain.Customer  `json:"customer"`
}

// RecordSale validates stock, computes points and profit, debits stock,
// credits customer points and appends the sale record, all in one
// transaction.
func (s *Service) RecordSale(ctx context.Context, in SaleInput) (*SaleResult, error) {
	if in.Units <= 0 {
		return nil, Errorf(KindInvalidQuantity, "units must be greater than 0")
	}
	if in.Amount <= 0 {
		return nil, Errorf(KindValidation, "amount must be greater than 0")
	}

	var result *SaleResult
	err := s.store.WithTx(ctx, func(q *store.Queries) error {
		product, err := q.ProductByName(ctx, in.Product)
		if errors.Is(err, sql.ErrNoRows) {
			return Errorf(KindNotFound, "product not found")
		}
		if err != nil {
			return err
		}
		if in.Units > product.Stock {
			return Errorf(KindInsufficientStock, "insufficient stock for %s", product.Name)
		}

		settings, err := q.PointsSettings(ctx)
		if err != nil {
			return err
		}
		points := earnedPoints(product.Name, in.Units, in.Amount, settings)
		purchaseCost, profit := saleEconomics(in.Units, in.Amount, product.PurchasePrice)

		var (
			customer   *domain.Customer
			customerID *int64
		)
		if in.CustomerCardNumber != "" {
			card, err := validate.CardNumber(in.CustomerCardNumber)
			if err != nil {
				return Errorf(KindValidation, "%s", err)
			}
			found, err := q.CustomerByCard(ctx, card)
			if errors.Is(err, sql.ErrNoRows) {
				return Errorf(KindNotFound, "customer not found")
			}
			if err != nil {
				return err
			}
			if err := q.AddCustomerPoints(ctx, found.ID, points); err != nil {
				return err
			}
			updated, err := q.CustomerByID(ctx, found.ID)
			if err != nil {
				return err
			}
			customer = &updated
			customerID = &found.ID
		}

		ok, err := q.DecrementProductStock(ctx, product.ID, in.Units)
		if err != nil {
			return err
		}
		if !ok {
			// Lost a race since the check above; the guard kept stock >= 0.
			return Errorf(KindInsufficientStock, "insufficient stock for %s", product.Name)
		}

		sale, err := q.InsertSale(ctx, domain.Sale{
			ProductID:    product.ID,
			CustomerID:   customerID,
			Units:        in.Units,
			Amount:       in.Amount,
			PurchaseCost: purchaseCost,
			Profit:       profit,
			PointsEarned: points,
		})
		if err != nil {
			return err
		}

		updatedProduct, err := q.ProductByName(ctx, product.Name)
		if err != nil {
			return err
		}

		customerName := domain.WalkInCustomer
		if customer != nil {
			customerName = customer.Name
		}
		result = &SaleResult{
			Sale: domain.SaleRecord{
				Product:      product.Name,
				Units:        sale.Units,
				Amount:       sale.Amount,
				PurchaseCost: sale.PurchaseCost,
				Customer:     customerName,
				Date:         sale.CreatedAt,
				PointsEarned: sale.PointsEarned,
				Profit:       sale.Profit,
			},
			Product:  updatedProduct,
			Customer: customer,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// earnedPoints applies the per-unit rate times units plus the tendered-amount
// bonus. Rate selection matches on the literal product names "Petrol" and
// "Diesel"; every other product earns the oil rate. The category column is
// intentionally not consulted here, to stay compatible with existing data.
func earnedPoints(productName string, units, amount float64, settings domain.PointsSettings) int64 {
	var rate float64
	switch productName {
	case "Petrol":
		rate = settings.Petrol
	case "Diesel":
		rate = settings.Diesel
	default:
		rate = settings.Oil
	}

	points := decimal.NewFromFloat(units).Mul(decimal.NewFromFloat(rate))
	if settings.Amount > 0 {
		bonus := decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(settings.Amount)).Floor()
		points = points.Add(bonus)
	}
	return points.Floor().IntPart()
}

// saleEconomics computes purchase cost and profit in decimal space so that
// fractional fuel quantities do not accumulate float drift.
func saleEconomics(units, amount, purchasePrice float64) (purchaseCost, profit float64) {
	cost := decimal.NewFromFloat(units).Mul(decimal.NewFromFloat(purchasePrice))
	gain := decimal.NewFromFloat(amount).Sub(cost)
	purchaseCost, _ = cost.Float64()
	profit, _ = gain.Float64()
	return purchaseCost, profit
}
