package models

import "time"

type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	// Price is in minor currency units (Rappen). Never a float.
	Price      int64    `gorm:"not null" json:"price"`
	Stock      *int     `json:"stock,omitempty"`
	Unit       string   `gorm:"type:varchar(50);not null" json:"unit"`
	CategoryID uint     `gorm:"not null" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	// IsActive=0 hides the product from the till without deleting it.
	IsActive  int       `gorm:"not null;default:1" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
