package migration

import (
	"errors"
	"fmt"
	"log"

	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/amanjaiswal7236/chai-lelo/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MenuItem{}); err != nil {
		log.Fatalf("Error migrating menu item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Location{}); err != nil {
		log.Fatalf("Error migrating location database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealDeadline{}); err != nil {
		log.Fatalf("Error migrating meal deadline database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealCounter{}); err != nil {
		log.Fatalf("Error migrating meal counter database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Order{}, &entities.OrderItem{}); err != nil {
		log.Fatalf("Error migrating order database: %v", err)
		return err
	}

	if err := seedAdmin(db); err != nil {
		log.Fatalf("Error seeding admin user: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

// seedAdmin promotes the configured phone number so the dashboard is
// reachable on a fresh database.
func seedAdmin(db *gorm.DB) error {
	adminPhone := utils.GetConfig("ADMIN_PHONE")
	if adminPhone == "" {
		return nil
	}

	var existing entities.User
	err := db.Where("phone = ?", adminPhone).First(&existing).Error
	if err == nil {
		if existing.Role == entities.RoleAdmin {
			return nil
		}
		existing.Role = entities.RoleAdmin
		return db.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := entities.User{
		ID:    uuid.New(),
		Phone: adminPhone,
		Name:  "Admin",
		Role:  entities.RoleAdmin,
	}
	return db.Create(&admin).Error
}
