package models

import (
	"time"

	"potrack-app/types"
)

const (
	OrderTypeIn  = "IN"
	OrderTypeOut = "OUT"
)

// ProductionOrder is one movement event in the ledger: a single IN or OUT
// quantity recorded against a production order at a work center. Rows are
// append-only; they are never updated, only bulk-deleted.
type ProductionOrder struct {
	ID              types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	ProductionOrder string            `json:"production_order" gorm:"not null"`
	WorkCenterID    uint              `json:"workcenter_id" gorm:"column:workcenter_id;not null;index"`
	Quantity        int               `json:"quantity" gorm:"not null;default:0"`
	OrderType       string            `json:"order_type" gorm:"not null"` // IN / OUT
	Remark          string            `json:"remark"`
	UserID          uint              `json:"user_id" gorm:"not null"`
	CreatedAt       time.Time         `json:"created_at"`

	WorkCenter WorkCenter `json:"-" gorm:"foreignKey:WorkCenterID"`
	User       User       `json:"-" gorm:"foreignKey:UserID"`
}
