package models

import "time"

// Platform - plataforma de origen de los clientes
type Platform struct {
	ID           string    `gorm:"primaryKey;size:50" json:"id"`
	PlatformName string    `gorm:"size:100;not null" json:"platform_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Platform) TableName() string { return "platform" }
