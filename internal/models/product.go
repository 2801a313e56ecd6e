package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VATRate is the French standard VAT rate applied to rental prices.
const VATRate = 0.20

// Product is a rentable catalog item (furniture, tableware, decoration...).
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type Product struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	Slug           string `gorm:"uniqueIndex" json:"slug"`
	Description    string `json:"description,omitempty"`
	Category       string `gorm:"index" json:"category"`
	SubCategory    string `gorm:"index" json:"subCategory,omitempty"`
	SubSubCategory string `json:"subSubCategory,omitempty"`

	// PriceHT is the pre-tax rental price; PriceTTC includes VAT.
	// Both are per unit and non-negative.
	PriceHT  float64 `gorm:"not null;default:0" json:"priceHT"`
	PriceTTC float64 `gorm:"not null;default:0" json:"priceTTC"`

	Colors datatypes.JSONSlice[string]           `json:"colors,omitempty"`
	Specs  datatypes.JSONType[map[string]string] `json:"specs,omitempty"`
	Images datatypes.JSONSlice[string]           `json:"images,omitempty"`

	Stock     int  `gorm:"not null;default:0" json:"stock"`
	Available bool `gorm:"default:true" json:"available"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }

// BeforeSave derives the tax-inclusive price when only the pre-tax price
// was provided.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.PriceTTC == 0 && p.PriceHT > 0 {
		p.PriceTTC = p.PriceHT * (1 + VATRate)
	}
	return nil
}
