package models

import "time"

// Transaction is a persisted sale ("Bestellung" in the till UI). Exactly one
// of MemberID, GuestName or TableNumber is set per sale; guests are never
// written to the member registry, only their display name is kept here.
type Transaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Timestamp     time.Time         `gorm:"not null;index" json:"timestamp"`
	MemberID      *uint             `gorm:"index" json:"member_id,omitempty"`
	Member        *Member           `gorm:"foreignKey:MemberID;references:ID" json:"-"`
	GuestName     *string           `gorm:"type:varchar(255)" json:"guest_name,omitempty"`
	CashierID     uint              `gorm:"not null" json:"cashier_id"`
	Cashier       *User             `gorm:"foreignKey:CashierID;references:ID" json:"-"`
	TableNumber   *int              `json:"table_number,omitempty"`
	PaymentMethod string            `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	Status        TransactionStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	// TotalAmount in minor units, summed over line subtotals at submit time.
	// Not recomputed on later item status changes.
	TotalAmount   int64             `gorm:"not null" json:"total_amount"`
	TotalDiscount *int64            `json:"total_discount,omitempty"`
	Tip           *int64            `json:"tip,omitempty"`
	Note          *string           `gorm:"type:text" json:"note,omitempty"`
	PrintCount    int               `gorm:"not null;default:0" json:"print_count"`
	LastPrintedAt *time.Time        `json:"last_printed_at,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Items         []TransactionItem `gorm:"foreignKey:TransactionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
