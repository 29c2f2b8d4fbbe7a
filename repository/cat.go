package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thatchakomP/pixel-cat-callior/models"
)

// CatRepository reads the cat catalog and records generated assets.
type CatRepository struct {
	DB *gorm.DB
}

func NewCatRepository(db *gorm.DB) *CatRepository {
	return &CatRepository{DB: db}
}

// Unlockable returns every non-default cat ordered by name.
func (r *CatRepository) Unlockable(ctx context.Context) ([]models.Cat, error) {
	var cats []models.Cat
	if err := r.DB.WithContext(ctx).Where("is_default = ?", false).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cats, nil
}

func (r *CatRepository) GetByID(ctx context.Context, id string) (*models.Cat, error) {
	var cat models.Cat
	if err := r.DB.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cat, nil
}

// SaveCatAssets stores generated video or image URLs, keyed by cat ID, in one
// transaction. An unknown cat rolls the whole batch back.
func (r *CatRepository) SaveCatAssets(ctx context.Context, assets map[string]string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for catID, assetURL := range assets {
			res := tx.Model(&models.Cat{}).Where("id = ?", catID).Update("video_url", assetURL)
			if res.Error != nil {
				return fmt.Errorf("save cat asset: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}
