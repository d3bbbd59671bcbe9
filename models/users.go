package models

import "time"

// User is a cashier/admin login. Optionally linked to a member record.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MemberID     *uint     `gorm:"index" json:"member_id,omitempty"`
	Username     string    `gorm:"type:varchar(100);unique;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(50);not null" json:"role"`
	IsActive     int       `gorm:"not null;default:1" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
