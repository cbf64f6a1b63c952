package models

import "time"

type Product struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string         `gorm:"not null" json:"name"`
	Slug               string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description        string         `gorm:"type:text" json:"description"`
	LongDescription    string         `gorm:"type:text" json:"long_description"`
	Category           string         `gorm:"not null" json:"category"`
	Collection         *string        `json:"collection"`
	Type               *string        `json:"type"`
	Price              float64        `json:"price"`
	DiscountPercentage float64        `json:"discount_percentage"`
	OutOfStock         bool           `json:"out_of_stock"`
	InstallmentMonths  int            `json:"installment_months"`
	EnableMintpay      bool           `json:"enable_mintpay"`
	EnableKoko         bool           `json:"enable_koko"`
	Specs              string         `gorm:"type:text" json:"specs"` // JSON object, key -> value
	Images             []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product_images"`
	Variants           []Variant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	ImageURL  string `gorm:"not null" json:"image_url"`
	IsMain    bool   `json:"is_main"`
}

// Variant is a purchasable configuration of a product. Optional fields are
// nullable here; the spreadsheet codec maps them to the legacy "None"
// sentinel at the file boundary.
type Variant struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID          uint    `gorm:"index;not null" json:"product_id"`
	Color              *string `json:"color"`
	ImageURL           *string `json:"image_url"`
	Stock              int     `json:"stock"`
	Size               *string `json:"size"`
	GripSize           *string `json:"grip_size"`
	DiscountPercentage float64 `json:"discount_percentage"`
	FrameRacket        *string `json:"frame_racket"`
	RacketPiece        *string `json:"racket_piece"`
}
