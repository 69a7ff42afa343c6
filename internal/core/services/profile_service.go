package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"wealthdesk/internal/adapters/persistence/models"
	"wealthdesk/internal/adapters/persistence/repositories"
	"wealthdesk/internal/core/domain"

	"gorm.io/gorm"
)

// ProfileService persists form aggregates against the external store.
// Checkpoints are resumable; finalizing marks the profile submitted.
type ProfileService struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Progress is one user's stored aggregate with its store-level metadata.
// The aggregate is embedded so its sections serialize at the top level of
// the payload; the outer CurrentStep shadows the aggregate's own and is
// omitted entirely for submitted profiles.
type Progress struct {
	*domain.FormAggregate
	CurrentStep *int      `json:"currentStep,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GetProgress loads a user's stored aggregate, if any
func (s *ProfileService) GetProgress(ctx context.Context, userID string) (*Progress, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}

	var agg domain.FormAggregate
	if err := json.Unmarshal([]byte(profile.Data), &agg); err != nil {
		return nil, err
	}

	return &Progress{
		FormAggregate: &agg,
		CurrentStep:   profile.CurrentStep,
		Status:        profile.Status,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}, nil
}

// Hydrate returns the stored aggregate for a user, or a fresh one at step 1
// when no checkpoint exists
func (s *ProfileService) Hydrate(ctx context.Context, userID string) (*domain.FormAggregate, error) {
	progress, err := s.GetProgress(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.NewFormAggregate(), nil
		}
		return nil, err
	}
	agg := progress.FormAggregate
	if progress.CurrentStep != nil {
		agg.CurrentStep = *progress.CurrentStep
	}
	if agg.CurrentStep < domain.MinStep || agg.CurrentStep > domain.MaxStep {
		agg.CurrentStep = domain.MinStep
	}
	return agg, nil
}

// Checkpoint writes a resumable save of the aggregate keyed by user id.
// The write is an unconditional overwrite; last write wins.
func (s *ProfileService) Checkpoint(ctx context.Context, userID string, agg *domain.FormAggregate, currentStep int) error {
	if currentStep < domain.MinStep || currentStep > domain.MaxStep {
		return domain.ErrStepOutOfRange
	}

	agg.CurrentStep = currentStep
	data, err := json.Marshal(agg)
	if err != nil {
		return err
	}

	profile := &models.InvestorProfile{
		UserID:      userID,
		Data:        string(data),
		CurrentStep: &currentStep,
		Status:      domain.StatusInProgress,
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return err
	}

	log.Printf("✅ Progress saved for user %s (step %d)", userID, currentStep)
	return nil
}

// Finalize writes the terminal submitted save. The current step is omitted
// from the stored record; a submitted profile is not resumable.
func (s *ProfileService) Finalize(ctx context.Context, userID string, agg *domain.FormAggregate) error {
	data, err := json.Marshal(agg)
	if err != nil {
		return err
	}

	profile := &models.InvestorProfile{
		UserID:      userID,
		Data:        string(data),
		CurrentStep: nil,
		Status:      domain.StatusSubmitted,
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return err
	}

	log.Printf("✅ Profile submitted for user %s", userID)
	return nil
}

// List returns stored profiles for the admin surface
func (s *ProfileService) List(ctx context.Context, status string, offset, limit int) ([]*models.InvestorProfile, int64, error) {
	return s.profileRepo.List(ctx, status, offset, limit)
}
