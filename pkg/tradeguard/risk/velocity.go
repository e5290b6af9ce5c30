package risk

import (
	"errors"

	"github.com/joripage/tradeguard/pkg/tradeguard/model"
	"github.com/shopspring/decimal"
)

var ErrVelocityLimitExceeded = errors.New("Velocity limit exceeded")

const (
	velocityBaseAllowance = 5
	velocityMaxAllowance  = 50
)

var velocityAllowanceStep = decimal.NewFromInt(10000)

// VelocityGate computes the per-account order allowance: 5 plus one per
// 10k of buying power, clamped to [5, 50]. No order-rate history is
// tracked yet, so a single order is always within the allowance.
// TODO: count orders per account over a window once the product defines one.
type VelocityGate struct{}

func (g *VelocityGate) Check(order *model.OrderSubmitted, account *model.UserAccount) error {
	if g.allowance(account) < 1 {
		return ErrVelocityLimitExceeded
	}
	return nil
}

func (g *VelocityGate) allowance(account *model.UserAccount) int64 {
	baseAllowed := velocityBaseAllowance + account.BuyingPower.Div(velocityAllowanceStep).Floor().IntPart()
	if baseAllowed < velocityBaseAllowance {
		return velocityBaseAllowance
	}
	if baseAllowed > velocityMaxAllowance {
		return velocityMaxAllowance
	}
	return baseAllowed
}
