package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joripage/tradeguard/pkg/tradeguard/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderSQLRepo struct {
	db *gorm.DB
}

func NewOrderSQLRepo(db *gorm.DB) *OrderSQLRepo {
	return &OrderSQLRepo{
		db: db,
	}
}

func (s *OrderSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *OrderSQLRepo) Upsert(ctx context.Context, record *model.Order) error {
	return s.dbWithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		UpdateAll: true,
	}).Create(record).Error
}

func (s *OrderSQLRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	var record model.Order
	err := s.dbWithContext(ctx).Where("order_id = ?", orderID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *OrderSQLRepo) GetByTicker(ctx context.Context, ticker string) ([]*model.Order, error) {
	var records []*model.Order
	err := s.dbWithContext(ctx).Where("ticker LIKE ?", "%"+model.NormalizeTicker(ticker)+"%").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *OrderSQLRepo) List(ctx context.Context) ([]*model.Order, error) {
	var records []*model.Order
	err := s.dbWithContext(ctx).Order("submitted_at_utc ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
