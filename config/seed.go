package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/rice-apps/rice-bikes-go/models"
)

// SeedDefaults creates the rows the shop cannot run without: the managed
// sales tax item referenced by the pricing engine, and a first admin user.
func SeedDefaults(cfg *Config) {
	var cnt int64
	DB.Model(&models.Item{}).
		Where("name = ? AND managed = ?", cfg.Shop.TaxItemName, true).
		Count(&cnt)
	if cnt == 0 {
		DB.Create(&models.Item{
			Name:     cfg.Shop.TaxItemName,
			Category: "System",
			Managed:  true,
			Hidden:   true,
		})
	}

	DB.Model(&models.User{}).Count(&cnt)
	if cnt == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "ricebikes")), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed admin password: %v", err)
		}
		DB.Create(&models.User{
			Username:     "admin",
			FirstName:    "Shop",
			LastName:     "Admin",
			PasswordHash: string(hash),
			Admin:        true,
			Active:       true,
		})
	}
}
