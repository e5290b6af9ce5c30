package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joripage/tradeguard/pkg/tradeguard/model"
	"gorm.io/gorm"
)

type AccountSQLRepo struct {
	db *gorm.DB
}

func NewAccountSQLRepo(db *gorm.DB) *AccountSQLRepo {
	return &AccountSQLRepo{
		db: db,
	}
}

func (s *AccountSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *AccountSQLRepo) GetByID(ctx context.Context, accountID uuid.UUID) (*model.UserAccount, error) {
	var record model.UserAccount
	err := s.dbWithContext(ctx).Where("account_id = ?", accountID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *AccountSQLRepo) GetByFilter(ctx context.Context, userName string) ([]*model.UserAccount, error) {
	var records []*model.UserAccount
	err := s.dbWithContext(ctx).Where("user_name LIKE ?", "%"+userName+"%").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
