package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderAction string

const (
	OrderActionBuy  OrderAction = "Buy"
	OrderActionSell OrderAction = "Sell"
)

type ActionMode string

const (
	ActionModeMarket   ActionMode = "Market"
	ActionModeLimit    ActionMode = "Limit"
	ActionModeStopLoss ActionMode = "StopLoss"
)

type OrderStatus string

const (
	OrderStatusApproved OrderStatus = "Approved"
	OrderStatusRejected OrderStatus = "Rejected"
)

// Order is the persisted record of a gated order. One row per OrderID,
// status terminal, overwritten in place on redelivery.
type Order struct {
	OrderID        uuid.UUID        `gorm:"column:order_id;primaryKey"`
	AccountID      uuid.UUID        `gorm:"column:account_id"`
	Ticker         string           `gorm:"column:ticker"`
	Action         OrderAction      `gorm:"column:action"`
	ActionMode     ActionMode       `gorm:"column:action_mode"`
	NumberOfShares decimal.Decimal  `gorm:"column:number_of_shares"`
	PricePerShare  decimal.Decimal  `gorm:"column:price_per_share"`
	StopLossPrice  *decimal.Decimal `gorm:"column:stop_loss_price"`
	TotalCost      decimal.Decimal  `gorm:"column:total_cost"`
	Status         OrderStatus      `gorm:"column:status"`
	SubmittedAtUtc time.Time        `gorm:"column:submitted_at_utc"`
}

func (Order) TableName() string {
	return "orders"
}

// NormalizeTicker uppercases the exchange symbol before persisting.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(ticker)
}
