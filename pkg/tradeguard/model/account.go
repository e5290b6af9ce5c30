package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserType string

const (
	UserTypeTrader UserType = "Trader"
	UserTypeAdmin  UserType = "Admin"
)

// UserAccount is a point-in-time snapshot of the account the risk gates
// run against. Read-only from the worker's point of view.
type UserAccount struct {
	AccountID           uuid.UUID       `gorm:"column:account_id;primaryKey"`
	UserName            string          `gorm:"column:user_name"`
	Email               string          `gorm:"column:email"`
	UserType            UserType        `gorm:"column:user_type"`
	NetLiquidationValue decimal.Decimal `gorm:"column:net_liquidation_value"`
	TotalCash           decimal.Decimal `gorm:"column:total_cash"`
	BuyingPower         decimal.Decimal `gorm:"column:buying_power"`
}

func (UserAccount) TableName() string {
	return "user_accounts"
}
