package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/joripage/tradeguard/pkg/tradeguard/model"
)

type IAccount interface {
	GetByID(ctx context.Context, accountID uuid.UUID) (*model.UserAccount, error)
	GetByFilter(ctx context.Context, userName string) ([]*model.UserAccount, error)
}

type IOrder interface {
	// Upsert writes the record keyed by OrderID, overwriting an existing
	// row. Idempotent for redeliveries of the same event.
	Upsert(ctx context.Context, record *model.Order) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	GetByTicker(ctx context.Context, ticker string) ([]*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)
}
