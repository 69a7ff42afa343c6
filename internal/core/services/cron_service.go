package services

import (
	"context"
	"log"
	"time"

	"wealthdesk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	scheduler        *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		refreshTokenRepo: refreshTokenRepo,
		scheduler:        cron.New(),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	// Expired refresh tokens are dead weight; sweep them nightly at 03:00
	_, err := s.scheduler.AddFunc("0 3 * * *", s.cleanupExpiredTokens)
	if err != nil {
		log.Printf("❌ Failed to register token cleanup job: %v", err)
		return
	}

	s.scheduler.Start()
	log.Println("✅ Cron service started")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.scheduler.Stop()
	log.Println("🛑 Cron service stopped")
}

// cleanupExpiredTokens deletes refresh tokens past their expiry
func (s *CronService) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("⚠️ Token cleanup failed: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens cleaned up")
}
