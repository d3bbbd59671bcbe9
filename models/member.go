package models

import "time"

type Member struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	// Birthdate as ISO date string (YYYY-MM-DD), no time component.
	Birthdate        string      `gorm:"type:varchar(10);not null" json:"birthdate"`
	Email            string      `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone            string      `gorm:"type:varchar(50)" json:"phone,omitempty"`
	MembershipNumber string      `gorm:"type:varchar(50);unique;not null" json:"membership_number"`
	MemberStateID    uint        `gorm:"not null" json:"member_state_id"`
	MemberState      MemberState `gorm:"foreignKey:MemberStateID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	// Discount in whole percent.
	Discount          int       `gorm:"not null;default:0" json:"discount"`
	IsActive          int       `gorm:"not null;default:1" json:"is_active"`
	IsServiceRequired int       `gorm:"not null;default:1" json:"is_service_required"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
}
