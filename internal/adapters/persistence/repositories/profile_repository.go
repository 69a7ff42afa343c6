package repositories

import (
	"context"

	"wealthdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new investor-profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetByUserID gets the profile document for a user
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.InvestorProfile, error) {
	var profile models.InvestorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert writes the profile document, overwriting any existing one for the
// same user. Last write wins; no optimistic concurrency control.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.InvestorProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "current_step", "status", "updated_at"}),
		}).
		Create(profile).Error
}

// List lists profiles with pagination, optionally filtered by status
func (r *profileRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.InvestorProfile, int64, error) {
	var profiles []*models.InvestorProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&models.InvestorProfile{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}
