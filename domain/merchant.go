package domain

import (
	"time"

	"gorm.io/gorm"
)

type Merchant struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"column:email;unique;not null"`
	Password  string `gorm:"column:password;not null"`
	Name      string `gorm:"column:name;not null"`
	Location  string `gorm:"column:location"`
	ImageURL  string `gorm:"column:image_url"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Merchant) TableName() string {
	return "merchants"
}
