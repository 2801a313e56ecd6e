package seo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/festiloc/festiloc-server/internal/database"
	"github.com/festiloc/festiloc-server/internal/models"
)

// RankStore persists rank-check results.
type RankStore struct {
	db *database.DB
}

// NewRankStore creates a store over the shared database handle.
func NewRankStore(db *database.DB) *RankStore {
	return &RankStore{db: db}
}

// SaveResult upserts a ranking for its (keyword, url) pair. An existing
// record is updated in place: its old position moves into PreviousPosition.
// A fresh record starts with PreviousPosition nil.
func (s *RankStore) SaveResult(result *RankResult, notes string) (*models.KeywordRanking, error) {
	var ranking models.KeywordRanking
	err := s.db.Where("keyword = ? AND url = ?", result.Keyword, result.URL).First(&ranking).Error

	switch {
	case err == nil:
		prev := ranking.Position
		ranking.PreviousPosition = &prev
		ranking.Position = result.Position
		ranking.TotalResults = result.TotalResults
		ranking.CheckedAt = result.CheckedAt
		if notes != "" {
			ranking.Notes = notes
		}
		if err := s.db.Save(&ranking).Error; err != nil {
			return nil, fmt.Errorf("failed to update ranking: %w", err)
		}
		return &ranking, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		ranking = models.KeywordRanking{
			Keyword:      result.Keyword,
			URL:          result.URL,
			Position:     result.Position,
			TotalResults: result.TotalResults,
			CheckedAt:    result.CheckedAt,
			Notes:        notes,
		}
		if err := s.db.Create(&ranking).Error; err != nil {
			return nil, fmt.Errorf("failed to create ranking: %w", err)
		}
		return &ranking, nil

	default:
		return nil, fmt.Errorf("failed to look up ranking: %w", err)
	}
}

// ListRankings returns all stored rankings, most recently checked first.
func (s *RankStore) ListRankings() ([]models.KeywordRanking, error) {
	var rankings []models.KeywordRanking
	err := s.db.Order("checked_at DESC").Find(&rankings).Error
	return rankings, err
}

// StaleRankings returns rankings not checked since the cutoff, oldest first.
func (s *RankStore) StaleRankings(limit int) ([]models.KeywordRanking, error) {
	var rankings []models.KeywordRanking
	err := s.db.Order("checked_at ASC").Limit(limit).Find(&rankings).Error
	return rankings, err
}
