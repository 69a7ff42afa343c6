package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"wealthdesk/internal/adapters/persistence/models"
	"wealthdesk/internal/adapters/persistence/repositories"
)

// OTP errors
var (
	ErrOTPNotFound     = errors.New("no OTP found, please request a new one")
	ErrOTPExpired      = errors.New("OTP expired, please request a new one")
	ErrOTPMismatch     = errors.New("incorrect OTP")
	ErrOTPMaxAttempts  = errors.New("too many incorrect attempts, please request a new OTP")
	ErrOTPTooFrequent  = errors.New("please wait a minute before requesting a new OTP")
)

const (
	otpLength      = 6
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 5
	// A re-request is refused while more than this much of the TTL
	// remains, which works out to one request per minute.
	otpReRequestWindow = 4 * time.Minute
)

// OTPService handles OTP generation and verification. Entries live in a
// TTL-keyed cache so they survive restarts and are shared across
// instances; expiry is the cache's job.
type OTPService struct {
	otpRepo repositories.OTPRepository
	notify  *NotificationService
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo repositories.OTPRepository, notify *NotificationService) *OTPService {
	return &OTPService{
		otpRepo: otpRepo,
		notify:  notify,
	}
}

// Request creates a 6-digit OTP for a user and dispatches it over the
// given channel ("email" or "sms"). Returns ErrOTPTooFrequent when an OTP
// was already issued within the last minute.
func (s *OTPService) Request(ctx context.Context, userKey, target, channel string) error {
	if ttl, err := s.otpRepo.TTL(ctx, userKey); err == nil && ttl > otpReRequestWindow {
		return ErrOTPTooFrequent
	}

	code, err := generateSecureOTP(otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	entry := &models.OTPEntry{
		Code:    code,
		Target:  target,
		Channel: channel,
	}
	if err := s.otpRepo.Put(ctx, userKey, entry, otpTTL); err != nil {
		return err
	}

	// Dispatch is fire-and-forget with no retry; a failure surfaces as a
	// single generic error to the caller.
	switch channel {
	case "sms":
		return s.notify.SendSMSOTP(target, code)
	default:
		return s.notify.SendEmailOTP(target, code)
	}
}

// Verify checks the provided code, counting failed attempts. A verified
// entry stays in the cache (marked) until its TTL elapses so a follow-up
// step can confirm the verification.
func (s *OTPService) Verify(ctx context.Context, userKey, code string) error {
	entry, err := s.otpRepo.Get(ctx, userKey)
	if err != nil {
		if errors.Is(err, repositories.ErrOTPNotFound) {
			return ErrOTPNotFound
		}
		return err
	}

	if entry.Attempts >= otpMaxAttempts {
		_ = s.otpRepo.Delete(ctx, userKey)
		return ErrOTPMaxAttempts
	}

	entry.Attempts++
	if entry.Code != code {
		if err := s.otpRepo.Update(ctx, userKey, entry); err != nil {
			return err
		}
		return ErrOTPMismatch
	}

	entry.Verified = true
	return s.otpRepo.Update(ctx, userKey, entry)
}

// IsVerified reports whether the user's OTP was verified and is still
// within its window
func (s *OTPService) IsVerified(ctx context.Context, userKey string) bool {
	entry, err := s.otpRepo.Get(ctx, userKey)
	if err != nil {
		return false
	}
	return entry.Verified
}

// Clear removes the OTP entry after it has served its purpose
func (s *OTPService) Clear(ctx context.Context, userKey string) {
	_ = s.otpRepo.Delete(ctx, userKey)
}

// generateSecureOTP generates a cryptographically secure random OTP
func generateSecureOTP(length int) (string, error) {
	result := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		result += fmt.Sprintf("%d", n.Int64())
	}
	return result, nil
}
