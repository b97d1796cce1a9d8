package bootstrap

import (
	"log"

	"github.com/alumninet/alumninet/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.University{},
		&entity.User{},
		&entity.Connection{},
		&entity.ConnectionRequest{},
		&entity.Mentor{},
		&entity.MentorshipRequest{},
		&entity.Notification{},
	)
}

// SeedSuperadmin creates the bootstrap superadmin account if no superadmin
// exists yet. The credentials come from env in production; the defaults are
// for local development only.
func SeedSuperadmin(db *gorm.DB, email, password string) error {
	if email == "" {
		email = "superadmin@alumninet.dev"
	}
	if password == "" {
		password = "superadmin123"
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("role = ?", entity.RoleSuperadmin).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	superadmin := entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Platform Superadmin",
		Role:         entity.RoleSuperadmin,
		Status:       entity.UserStatusActive,
	}

	if err := db.Create(&superadmin).Error; err != nil {
		return err
	}

	log.Printf("Superadmin seeded: %s", email)
	return nil
}

// SeedDevData creates a sample university with an admin account so a fresh
// development database is usable right away.
func SeedDevData(db *gorm.DB) error {
	university := entity.University{
		ID:     "stanford",
		Name:   "Stanford University",
		Status: entity.UniversityStatusActive,
	}

	var count int64
	if err := db.Model(&entity.University{}).
		Where("id = ?", university.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&university).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	universityID := university.ID
	admin := entity.User{
		Email:        "admin@stanford.alumninet.dev",
		PasswordHash: string(hash),
		Name:         "Stanford Admin",
		Role:         entity.RoleAdmin,
		UniversityID: &universityID,
		Status:       entity.UserStatusActive,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Development data seeded: university=%s admin=%s", university.ID, admin.Email)
	return nil
}
