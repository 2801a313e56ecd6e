package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Package is a bundle of products sold as one purchasable unit, optionally
// discounted and customizable through options.
type Package struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`

	// DiscountPct is a percentage in [0,100], validated at the API boundary.
	DiscountPct float64 `gorm:"not null;default:0" json:"discountPct"`

	// Totals are derived from the item list and discount; they are
	// recomputed whenever either changes, never edited directly.
	OriginalTotalHT  float64 `json:"originalTotalHT"`
	OriginalTotalTTC float64 `json:"originalTotalTTC"`
	FinalTotalHT     float64 `json:"finalTotalHT"`
	FinalTotalTTC    float64 `json:"finalTotalTTC"`

	Items   []PackageItem   `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" json:"items"`
	Options []PackageOption `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" json:"options,omitempty"`

	Published bool `gorm:"default:false" json:"published"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Package) TableName() string { return "packages" }

// PackageItem is one product-and-quantity line inside a package.
type PackageItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PackageID string `gorm:"type:uuid;index" json:"packageId"`
	ProductID string `gorm:"type:uuid;index" json:"productId"`
	Quantity  int    `gorm:"not null;default:1" json:"quantity"`
	Required  bool   `gorm:"default:true" json:"required"`

	// Min/Max bounds only carry meaning when the line is customizable.
	Customizable bool `gorm:"default:false" json:"customizable"`
	MinQty       *int `json:"minQty,omitempty"`
	MaxQty       *int `json:"maxQty,omitempty"`

	Position int `gorm:"default:0" json:"position"`
}

func (PackageItem) TableName() string { return "package_items" }

// PackageOption is a named customization axis (e.g. "Couleur des housses")
// with a set of choices.
type PackageOption struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PackageID string         `gorm:"type:uuid;index" json:"packageId"`
	Name      string         `gorm:"not null" json:"name"`
	Required  bool           `gorm:"default:false" json:"required"`
	Choices   []OptionChoice `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"choices"`
}

func (PackageOption) TableName() string { return "package_options" }

// OptionChoice is one selectable value of a package option. PriceDelta is
// signed: a choice can make the package cheaper.
type OptionChoice struct {
	ID         uint                        `gorm:"primaryKey" json:"id"`
	OptionID   uint                        `gorm:"index" json:"optionId"`
	Label      string                      `gorm:"not null" json:"label"`
	PriceDelta float64                     `gorm:"default:0" json:"priceDelta"`
	ProductIDs datatypes.JSONSlice[string] `json:"productIds,omitempty"`
}

func (OptionChoice) TableName() string { return "option_choices" }
