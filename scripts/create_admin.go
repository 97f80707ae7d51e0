// scripts/create_admin.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Shuja06/School-ERP/config"
	"github.com/Shuja06/School-ERP/database"
	"github.com/Shuja06/School-ERP/models"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	database.Connect(cfg)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@school.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin1234"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	err = database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Println("admin user already exists:", email)
		os.Exit(0)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to query users: %v", err)
	}

	u := models.User{
		Email:    email,
		Password: string(hashed),
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("  email:   ", email)
	fmt.Println("  password:", password, "(change after first login)")
}
