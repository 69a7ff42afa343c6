package config

import (
	"log"

	"wealthdesk/internal/adapters/persistence/models"
	"wealthdesk/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDemoInvestor(); err != nil {
		log.Printf("⚠️ Demo investor seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin account.
// Development convenience; production admins are created manually.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:       uuid.New().String(),
		Name:     "Administrator",
		Email:    "admin@wealthdesk.local",
		Password: hashedPassword,
		Role:     "admin",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedDemoInvestor seeds the demo investor used by the client login flow
func (s *Seeder) seedDemoInvestor() error {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", "investor@example.com").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("demo123")
	if err != nil {
		return err
	}

	investor := &models.User{
		ID:       uuid.New().String(),
		Name:     "Demo Investor",
		Email:    "investor@example.com",
		Password: hashedPassword,
		Role:     "investor",
		IsActive: true,
	}

	if err := s.db.Create(investor).Error; err != nil {
		return err
	}

	log.Printf("✅ Demo investor created: %s", investor.Email)
	return nil
}
