package repo

import (
	"gorm.io/gorm"
)

type IRepo interface {
	Account() IAccount
	Order() IOrder
}

type Repo struct {
	tradingDB *gorm.DB
}

func NewRepo(tradingDB *gorm.DB) IRepo {
	return &Repo{
		tradingDB: tradingDB,
	}
}

func (r *Repo) Account() IAccount {
	return NewAccountSQLRepo(r.tradingDB)
}

func (r *Repo) Order() IOrder {
	return NewOrderSQLRepo(r.tradingDB)
}
