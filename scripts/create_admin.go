// Bootstrap an administrator account.
//
// The registration endpoint only creates student accounts, so the first
// admin has to be seeded directly. Safe to re-run: an existing email is
// left untouched.
//
// Usage: go run scripts/create_admin.go -email admin@example.com -password secret
package main

import (
	"errors"
	"flag"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 chars)")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("usage: create_admin -email <email> -password <password, min 8 chars>")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var existing model.User
	err = db.Where("email = ?", *email).First(&existing).Error
	if err == nil {
		log.Printf("user %s already exists (id=%d), nothing to do", *email, existing.ID)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := model.User{
		Name:     *name,
		Email:    *email,
		Password: string(hash),
		Role:     model.Admin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	log.Printf("admin %s created (id=%d)", *email, admin.ID)
}
