package risk

import (
	"errors"

	"github.com/joripage/tradeguard/pkg/tradeguard/model"
	"github.com/shopspring/decimal"
)

var ErrInsufficientMargin = errors.New("Insufficient margin")

// initialMarginRate is a flat 25% initial margin on buy notional.
var initialMarginRate = decimal.NewFromFloat(0.25)

// MarginGate requires buying power to cover the initial margin of a buy.
// BuyingPower is used as the available-margin proxy; no utilization is
// tracked. Sells consume no margin under this policy.
type MarginGate struct{}

func (g *MarginGate) Check(order *model.OrderSubmitted, account *model.UserAccount) error {
	if !order.NumberOfShares.IsPositive() || !order.PricePerShare.IsPositive() {
		return ErrInsufficientMargin
	}

	if order.Action == model.OrderActionSell {
		return nil
	}

	required := initialMarginRate.Mul(order.Notional())
	if required.GreaterThan(account.BuyingPower) {
		return ErrInsufficientMargin
	}
	return nil
}
