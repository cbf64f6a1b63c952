package models

import "time"

type BannerImage struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageURL     string    `gorm:"not null" json:"image_url"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
