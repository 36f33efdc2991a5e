package db

import (
	"errors"

	"github.com/diewo77/invoice-ledger/internal/models"
	"gorm.io/gorm"
)

// DefaultPlatforms are the payment channels known out of the box.
var DefaultPlatforms = []string{"Nequi", "Daviplata", "PSE", "Bancolombia"}

// Seed inserts reference data. Safe to run repeatedly.
func Seed(db *gorm.DB) error {
	for _, name := range DefaultPlatforms {
		var existing models.Platform
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Platform{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
