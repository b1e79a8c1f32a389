// File: internal/platform/database/seed.go
package database

import (
	"errors"
	"fmt"

	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/category"
	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/user"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the initial password of all seeded accounts. Meant for
// local development only.
const SeedPassword = "ChangeMe123!"

var seedCategories = []string{"Sedan", "SUV", "Hatchback", "Coupe", "Pickup"}

type seedCar struct {
	Make     string
	Model    string
	Year     int
	Price    float64
	Category string
	Status   car.Status
}

var seedCars = []seedCar{
	{Make: "Toyota", Model: "Camry", Year: 2022, Price: 28999, Category: "Sedan", Status: car.StatusApproved},
	{Make: "Honda", Model: "Civic", Year: 2023, Price: 24999, Category: "Sedan", Status: car.StatusApproved},
	{Make: "Nissan", Model: "Ariya", Year: 2023, Price: 45999, Category: "SUV", Status: car.StatusPending},
}

// Seed populates an empty database with development accounts, the default
// category set, and a handful of example cars. Existing rows are left alone,
// making the seed safe to run repeatedly.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		admin, err := seedUser(tx, "admin@roadsuite.local", "Admin", []string{common.RoleAdmin, common.RoleDealer})
		if err != nil {
			return err
		}
		if _, err := seedUser(tx, "moderator@roadsuite.local", "Moderator", []string{common.RoleModerator, common.RoleDealer}); err != nil {
			return err
		}
		dealerUser, err := seedUser(tx, "dealer@roadsuite.local", "Demo Dealer", []string{common.RoleDealer})
		if err != nil {
			return err
		}

		if _, err := seedProfile(tx, admin, "RoadSuite Staff"); err != nil {
			return err
		}
		dealerProfile, err := seedProfile(tx, dealerUser, "Demo Dealer")
		if err != nil {
			return err
		}

		categories := make(map[string]*category.Category, len(seedCategories))
		for _, name := range seedCategories {
			cat, err := seedCategory(tx, name)
			if err != nil {
				return err
			}
			categories[name] = cat
		}

		for _, sc := range seedCars {
			if err := seedCarRow(tx, sc, categories[sc.Category], dealerProfile); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedUser(tx *gorm.DB, email, displayName string, roles []string) (*user.User, error) {
	var existing user.User
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	seeded := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Roles:        roles,
	}
	if err := tx.Create(seeded).Error; err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return seeded, nil
}

func seedProfile(tx *gorm.DB, owner *user.User, displayName string) (*dealer.Profile, error) {
	var existing dealer.Profile
	err := tx.Where("user_id = ?", owner.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	contactEmail := owner.Email
	profile := &dealer.Profile{
		UserID:       owner.ID,
		DisplayName:  displayName,
		ContactEmail: &contactEmail,
	}
	if err := tx.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to seed dealer profile for %s: %w", owner.Email, err)
	}
	return profile, nil
}

func seedCategory(tx *gorm.DB, name string) (*category.Category, error) {
	var existing category.Category
	err := tx.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat := &category.Category{Name: name, Slug: slug.Make(name)}
	if err := tx.Create(cat).Error; err != nil {
		return nil, fmt.Errorf("failed to seed category %s: %w", name, err)
	}
	return cat, nil
}

func seedCarRow(tx *gorm.DB, sc seedCar, cat *category.Category, profile *dealer.Profile) error {
	var count int64
	err := tx.Model(&car.Car{}).Where("make = ? AND model = ?", sc.Make, sc.Model).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	row := &car.Car{
		Make:            sc.Make,
		Model:           sc.Model,
		Year:            sc.Year,
		Price:           sc.Price,
		CategoryID:      cat.ID,
		DealerProfileID: &profile.ID,
		Status:          sc.Status,
	}
	if err := tx.Create(row).Error; err != nil {
		return fmt.Errorf("failed to seed car %s %s: %w", sc.Make, sc.Model, err)
	}
	return nil
}
