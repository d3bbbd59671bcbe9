package models

import "time"

// TransactionItem is one line of a sale. Price and Subtotal are snapshots of
// the product price at add time; later product edits must not change them.
type TransactionItem struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	TransactionID uint        `gorm:"not null;index" json:"transaction_id"`
	Transaction   Transaction `gorm:"foreignKey:TransactionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID     uint        `gorm:"not null" json:"product_id"`
	Product       Product     `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity      int         `gorm:"not null" json:"quantity"`
	Price         int64       `gorm:"not null" json:"price"`
	Subtotal      int64       `gorm:"not null" json:"subtotal"`
	Status        ItemStatus  `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}
