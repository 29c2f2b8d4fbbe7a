package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thatchakomP/pixel-cat-callior/models"
)

type FoodLogRepository struct {
	DB *gorm.DB
}

func NewFoodLogRepository(db *gorm.DB) *FoodLogRepository {
	return &FoodLogRepository{DB: db}
}

// ListByUser returns the newest entries first.
func (r *FoodLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.FoodLogEntry, error) {
	var entries []models.FoodLogEntry
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list food logs: %w", err)
	}
	return entries, nil
}
