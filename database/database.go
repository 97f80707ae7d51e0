package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Shuja06/School-ERP/config"
	"github.com/Shuja06/School-ERP/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate creates/updates the schema for every entity. Uniqueness of
// business identifiers (student_id, staff_id, receipt_number, users.email)
// and the (staff_id, month) payroll guard live here as indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Staff{},
		&models.FeeStructure{},
		&models.FeePayment{},
		&models.Payroll{},
		&models.Expense{},
		&models.User{},
		&models.Settings{},
	)
}
