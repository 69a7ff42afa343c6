package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wealthdesk/internal/adapters/persistence/models"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no entry exists for a key (or its TTL
// has elapsed)
var ErrOTPNotFound = errors.New("otp entry not found")

const otpKeyPrefix = "otp:"

// otpRepository implements OTPRepository backed by Redis
type otpRepository struct {
	client *redis.Client
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(client *redis.Client) OTPRepository {
	return &otpRepository{client: client}
}

// Get loads the entry for a key
func (r *otpRepository) Get(ctx context.Context, key string) (*models.OTPEntry, error) {
	data, err := r.client.Get(ctx, otpKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}

	var entry models.OTPEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put stores the entry with a fresh TTL
func (r *otpRepository) Put(ctx context.Context, key string, entry *models.OTPEntry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, otpKeyPrefix+key, data, ttl).Err()
}

// Update rewrites the entry without touching its remaining TTL
func (r *otpRepository) Update(ctx context.Context, key string, entry *models.OTPEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, otpKeyPrefix+key, data, redis.KeepTTL).Err()
}

// TTL returns the remaining lifetime of the entry for a key
func (r *otpRepository) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, otpKeyPrefix+key).Result()
	if err != nil {
		return 0, err
	}
	return ttl, nil
}

// Delete removes the entry for a key
func (r *otpRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, otpKeyPrefix+key).Err()
}
