package risk

import (
	"errors"

	"github.com/joripage/tradeguard/pkg/tradeguard/model"
	"github.com/shopspring/decimal"
)

var ErrExposureLimitExceeded = errors.New("Exposure limit exceeded")

// exposureMultiplier caps buy-side notional at 1.5x net liquidation value.
var exposureMultiplier = decimal.NewFromFloat(1.5)

// ExposureGate rejects buys whose notional exceeds
// max(NLV * multiplier, buyingPower + totalCash). Sells reduce exposure
// and always pass.
type ExposureGate struct{}

func (g *ExposureGate) Check(order *model.OrderSubmitted, account *model.UserAccount) error {
	if !order.NumberOfShares.IsPositive() || !order.PricePerShare.IsPositive() {
		return ErrExposureLimitExceeded
	}

	if order.Action == model.OrderActionSell {
		return nil
	}

	capFromNLV := clampZero(account.NetLiquidationValue.Mul(exposureMultiplier))
	capFromCash := clampZero(account.BuyingPower.Add(account.TotalCash))
	exposureCap := decimal.Max(capFromNLV, capFromCash)

	if order.Notional().GreaterThan(exposureCap) {
		return ErrExposureLimitExceeded
	}
	return nil
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
