package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joripage/tradeguard/pkg/logging"
	"github.com/joripage/tradeguard/pkg/tradeguard/bus"
	"github.com/joripage/tradeguard/pkg/tradeguard/model"
	"github.com/joripage/tradeguard/pkg/tradeguard/repo"
	"github.com/joripage/tradeguard/pkg/tradeguard/risk"
)

// OrderGuardWorker bridges the message bus to the risk engine. It
// subscribes once to the submitted-orders queue and runs each delivery as
// an isolated unit of work: lookup, decide, upsert, publish. Returning nil
// from the handler acknowledges the delivery; any error drops it without
// requeue (no dead-letter routing yet).
//
// Persist and publish are two separate operations with no shared
// transaction; a crash in between can leave an order row without a
// decision event. Downstream consumers must be idempotent on orderId.
type OrderGuardWorker struct {
	msgBus  bus.MessageBus
	account repo.IAccount
	order   repo.IOrder
	engine  *risk.Engine
}

func NewOrderGuardWorker(msgBus bus.MessageBus, sqlRepo repo.IRepo, engine *risk.Engine) *OrderGuardWorker {
	return &OrderGuardWorker{
		msgBus:  msgBus,
		account: sqlRepo.Account(),
		order:   sqlRepo.Order(),
		engine:  engine,
	}
}

// Start subscribes to the submitted-orders queue. It returns once the
// subscription is registered; deliveries are handled until ctx is
// cancelled.
func (w *OrderGuardWorker) Start(ctx context.Context) error {
	err := w.msgBus.Subscribe(ctx, bus.QueueOrdersSubmitted, bus.RoutingKeyOrdersSubmitted, w.onOrderSubmitted)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", bus.QueueOrdersSubmitted, err)
	}

	logging.For(ctx).Infow("order guard worker started",
		"queue", bus.QueueOrdersSubmitted,
		"routing_key", bus.RoutingKeyOrdersSubmitted,
	)
	return nil
}

func (w *OrderGuardWorker) onOrderSubmitted(ctx context.Context, body []byte) error {
	var ev model.OrderSubmitted
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode order submitted: %w", err)
	}

	ctx = logging.WithOrderID(ctx, ev.OrderID.String())
	log := logging.For(ctx)

	account, err := w.account.GetByID(ctx, ev.AccountID)
	if err == repo.ErrAccountNotFound {
		// business rejection, not a processing failure: no order row
		log.Warnw("account not found, rejecting order", "account_id", ev.AccountID)
		return w.msgBus.Publish(ctx, bus.RoutingKeyOrdersDecided,
			model.NewRejectedDecision(ev.OrderID, "Account not found"))
	}
	if err != nil {
		return fmt.Errorf("load account %s: %w", ev.AccountID, err)
	}

	decision := w.engine.Decide(&ev, account)

	status := model.OrderStatusRejected
	if decision.Approved {
		status = model.OrderStatusApproved
	}

	if err := w.order.Upsert(ctx, ev.ToOrder(status)); err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}

	outbound := model.NewApprovedDecision(ev.OrderID)
	if !decision.Approved {
		outbound = model.NewRejectedDecision(ev.OrderID, decision.Reason)
	}

	if err := w.msgBus.Publish(ctx, bus.RoutingKeyOrdersDecided, outbound); err != nil {
		return fmt.Errorf("publish decision: %w", err)
	}

	log.Infow("order decided",
		"approved", decision.Approved,
		"reason", decision.Reason,
		"status", status,
	)
	return nil
}
