package database

import (
	"log"
	"os"
	"time"

	"courtflow/internal/access"
	"courtflow/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.PrimaryCase{},
		&models.AppealCase{},
		&models.SupremeCase{},
		&models.Document{},
		&models.CourtSession{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultAdmin()
	seedDefaultUsers()
}

// admin comes from config only, never from a request
func createDefaultAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin@court.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		// admin already exists
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "System Administrator",
		Role:         models.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s (password: %s)", username, password)
}

// a couple of demo accounts with sensible permission grids
func seedDefaultUsers() {
	type seedUser struct {
		Username string
		Password string
		FullName string
		Role     models.UserRole
		Grid     map[string]access.FlagsInput
	}

	t := true
	full := access.FlagsInput{View: &t, Add: &t, Edit: &t, Delete: &t}
	readOnly := access.FlagsInput{View: &t}

	users := []seedUser{
		{
			Username: "lawyer@court.local",
			Password: "Lawyer123!",
			FullName: "Demo Senior Lawyer",
			Role:     models.RoleSeniorLawyer,
			Grid: map[string]access.FlagsInput{
				"cases":     full,
				"sessions":  full,
				"documents": full,
				"audit":     readOnly,
			},
		},
		{
			Username: "clerk@court.local",
			Password: "Clerk123!",
			FullName: "Demo Clerk",
			Role:     models.RoleClerk,
			Grid: map[string]access.FlagsInput{
				"cases":    readOnly,
				"sessions": {View: &t, Add: &t, Edit: &t},
			},
		},
	}

	ev := access.NewEvaluator(DB)

	for _, u := range users {
		var count int64
		if err := DB.Model(&models.User{}).
			Where("username = ?", u.Username).
			Count(&count).Error; err != nil {
			log.Printf("failed to check seed user %s: %v", u.Username, err)
			continue
		}
		if count > 0 {
			// already there
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to hash password for %s: %v", u.Username, err)
			continue
		}

		user := models.User{
			Username:     u.Username,
			PasswordHash: string(hash),
			FullName:     u.FullName,
			Role:         u.Role,
		}

		if err := DB.Create(&user).Error; err != nil {
			log.Printf("failed to create seed user %s: %v", u.Username, err)
			continue
		}

		if err := ev.ReplacePermissions(user.ID, u.Grid); err != nil {
			log.Printf("failed to seed permissions for %s: %v", u.Username, err)
		}

		log.Printf("created seed user: %s (role=%s, password=%s)", u.Username, u.Role, u.Password)
	}
}
