package database

import (
	"errors"
	"fmt"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminSeed describes the bootstrap administrator account.
type AdminSeed struct {
	Username string
	Password string
}

// Seed inserts the reference data the application relies on. It is safe to
// run on every start.
func Seed(db *gorm.DB, admin *AdminSeed) error {
	roles := models.DefaultRoles()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	for _, name := range models.DefaultGenderNames {
		gender := models.Gender{Name: name, Activatable: models.Activatable{Active: true}}
		if err := db.Where(models.Gender{Name: name}).FirstOrCreate(&gender).Error; err != nil {
			return fmt.Errorf("failed to seed gender %s: %w", name, err)
		}
	}

	if admin == nil || admin.Username == "" || admin.Password == "" {
		return nil
	}

	var existing models.Employee
	err := db.Where("username = ?", admin.Username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	hash, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	employee := models.Employee{
		FirstName:    "Administrador",
		LastName:     "Sistema",
		Username:     admin.Username,
		PasswordHash: hash,
		RoleCode:     models.RoleAdmin,
		Activatable:  models.Activatable{Active: true},
	}
	if err := db.Create(&employee).Error; err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	utils.Logger.WithField("username", admin.Username).Info("Bootstrap administrator created")
	return nil
}
