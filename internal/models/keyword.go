package models

import "time"

// SavedKeyword is a keyword kept in the SEO workbench, either entered by
// hand or produced by the AI generator.
type SavedKeyword struct {
	ID         string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Keyword    string  `gorm:"not null;index" json:"keyword"`
	Locale     string  `gorm:"default:'fr'" json:"locale"`
	Source     string  `gorm:"default:'manual'" json:"source"` // manual | generated
	Relevance  int     `json:"relevance,omitempty"`
	Difficulty int     `json:"difficulty,omitempty"`
	Volume     int     `json:"volume,omitempty"`
	Type       string  `json:"type,omitempty"` // informational | transactional | ...
	Notes      string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SavedKeyword) TableName() string { return "saved_keywords" }

// KeywordRanking holds the last known search position of a target URL for a
// keyword. At most one live record exists per (keyword, url) pair: a repeat
// check updates the record in place, moving Position into PreviousPosition.
type KeywordRanking struct {
	ID      string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Keyword string `gorm:"not null;uniqueIndex:idx_keyword_url" json:"keyword"`
	URL     string `gorm:"not null;uniqueIndex:idx_keyword_url" json:"url"`

	// Position 0 means not found within the checked window.
	Position         int  `json:"position"`
	PreviousPosition *int `json:"previousPosition,omitempty"`

	TotalResults int64     `json:"totalResults,omitempty"`
	CheckedAt    time.Time `json:"checkedAt"`
	Notes        string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (KeywordRanking) TableName() string { return "keyword_rankings" }
