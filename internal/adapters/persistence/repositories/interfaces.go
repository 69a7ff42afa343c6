package repositories

import (
	"context"
	"time"

	"wealthdesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
	CountActiveByUserID(ctx context.Context, userID string) (int64, error)
}

// OTPRepository defines the TTL-keyed OTP cache. Entries expire with
// their key; Update preserves the remaining TTL.
type OTPRepository interface {
	Get(ctx context.Context, key string) (*models.OTPEntry, error)
	Put(ctx context.Context, key string, entry *models.OTPEntry, ttl time.Duration) error
	Update(ctx context.Context, key string, entry *models.OTPEntry) error
	TTL(ctx context.Context, key string) (time.Duration, error)
	Delete(ctx context.Context, key string) error
}

// ProfileRepository defines the investor-profile document store.
// Get/put semantics keyed by user id; no query engine.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.InvestorProfile, error)
	Upsert(ctx context.Context, profile *models.InvestorProfile) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.InvestorProfile, int64, error)
}
