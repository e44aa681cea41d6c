package pos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/fuelpos/fuelpos/internal/store"
	"github.com/fuelpos/fuelpos/internal/validate"
)

// RedemptionItemInput is one requested line item.
type RedemptionItemInput struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

// RedemptionInput are the already-decoded arguments for one redemption.
type RedemptionInput struct {
	CustomerCardNumber string
	Items              []RedemptionItemInput
}

// RedemptionResult is the outcome of a committed redemption: the updated
// customer and the full redeemables catalog ordered by name.
type RedemptionResult struct {
	Customer domain.Customer     `json:"customer"`
	Products []domain.Redeemable `json:"products"`
}

// RedeemPoints debits the customer's points by the combined cost of the line
// items, debits each redeemable's stock and appends the redemption with its
// items, all in one transaction.
//
// Each item validates against the stock read at its own lookup, before any
// decrement from earlier items in the batch; two items naming the same
// redeemable therefore both see the original stock. The guarded decrements
// below still refuse to take stock negative, so a batch whose combined
// quantity exceeds stock rolls back with InsufficientStock rather than
// overselling.
func (s *Service) RedeemPoints(ctx context.Context, in RedemptionInput) (*RedemptionResult, error) {
	if len(in.Items) == 0 {
		return nil, Errorf(KindValidation, "items are required")
	}
	card, err := validate.CardNumber(in.CustomerCardNumber)
	if err != nil {
		return nil, Errorf(KindValidation, "%s", err)
	}

	type line struct {
		redeemable domain.Redeemable
		quantity   int64
	}

	var result *RedemptionResult
	err = s.store.WithTx(ctx, func(q *store.Queries) error {
		customer, err := q.CustomerByCard(ctx, card)
		if errors.Is(err, sql.ErrNoRows) {
			return Errorf(KindNotFound, "customer not found")
		}
		if err != nil {
			return err
		}

		var (
			lines       []line
			totalPoints int64
		)
		for _, item := range in.Items {
			if item.Product == "" {
				return Errorf(KindValidation, "invalid redemption item")
			}
			redeemable, err := q.RedeemableByName(ctx, item.Product)
			if errors.Is(err, sql.ErrNoRows) {
				return Errorf(KindNotFound, "redeemable not found: %s", item.Product)
			}
			if err != nil {
				return err
			}
			if item.Quantity <= 0 {
				return Errorf(KindInvalidQuantity, "quantity must be greater than 0")
			}
			if item.Quantity > redeemable.Stock {
				return Errorf(KindInsufficientStock, "insufficient stock for %s", redeemable.Name)
			}
			totalPoints += item.Quantity * redeemable.PointsRequired
			lines = append(lines, line{redeemable: redeemable, quantity: item.Quantity})
		}

		if customer.Points < totalPoints {
			return Errorf(KindInsufficientPoints, "insufficient points")
		}
		ok, err := q.DeductCustomerPoints(ctx, customer.ID, totalPoints)
		if err != nil {
			return err
		}
		if !ok {
			return Errorf(KindInsufficientPoints, "insufficient points")
		}

		redemption, err := q.InsertRedemption(ctx, customer.ID, totalPoints)
		if err != nil {
			return err
		}
		for _, l := range lines {
			ok, err := q.DecrementRedeemableStock(ctx, l.redeemable.ID, l.quantity)
			if err != nil {
				return err
			}
			if !ok {
				return Errorf(KindInsufficientStock, "insufficient stock for %s", l.redeemable.Name)
			}
			if err := q.InsertRedemptionItem(ctx, redemption.ID, l.redeemable.ID, l.quantity); err != nil {
				return err
			}
		}

		updatedCustomer, err := q.CustomerByID(ctx, customer.ID)
		if err != nil {
			return err
		}
		catalog, err := q.ListRedeemables(ctx)
		if err != nil {
			return err
		}
		result = &RedemptionResult{Customer: updatedCustomer, Products: catalog}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
