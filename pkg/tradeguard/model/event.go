package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSubmitted is the inbound wire event produced by the upstream
// order-entry system. Field names are camelCase on the wire; decoding is
// case-insensitive.
type OrderSubmitted struct {
	OrderID        uuid.UUID        `json:"orderId"`
	AccountID      uuid.UUID        `json:"accountId"`
	Ticker         string           `json:"ticker"`
	Action         OrderAction      `json:"action"`
	ActionMode     ActionMode       `json:"actionMode"`
	NumberOfShares decimal.Decimal  `json:"numberOfShares"`
	PricePerShare  decimal.Decimal  `json:"pricePerShare"`
	StopLossPrice  *decimal.Decimal `json:"stopLossPrice"`
	SubmittedAtUtc time.Time        `json:"submittedAtUtc"`
}

// Notional is the dollar size of the order: shares x price-per-share.
func (ev *OrderSubmitted) Notional() decimal.Decimal {
	return ev.NumberOfShares.Mul(ev.PricePerShare)
}

// ToOrder maps the event to its persisted record with the terminal status.
func (ev *OrderSubmitted) ToOrder(status OrderStatus) *Order {
	return &Order{
		OrderID:        ev.OrderID,
		AccountID:      ev.AccountID,
		Ticker:         NormalizeTicker(ev.Ticker),
		Action:         ev.Action,
		ActionMode:     ev.ActionMode,
		NumberOfShares: ev.NumberOfShares,
		PricePerShare:  ev.PricePerShare,
		StopLossPrice:  ev.StopLossPrice,
		TotalCost:      ev.Notional(),
		Status:         status,
		SubmittedAtUtc: ev.SubmittedAtUtc,
	}
}

// OrderDecision is the outbound wire event. Reason is set only on rejection.
type OrderDecision struct {
	OrderID    uuid.UUID `json:"orderId"`
	IsApproved bool      `json:"isApproved"`
	Reason     *string   `json:"reason,omitempty"`
}

func NewApprovedDecision(orderID uuid.UUID) *OrderDecision {
	return &OrderDecision{OrderID: orderID, IsApproved: true}
}

func NewRejectedDecision(orderID uuid.UUID, reason string) *OrderDecision {
	return &OrderDecision{OrderID: orderID, IsApproved: false, Reason: &reason}
}
