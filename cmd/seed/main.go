// Command seed loads a handful of test users into the database. It refuses
// to touch a database that already has users.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/infiniteherbs/adminapi/internal/admin/app"
	"github.com/infiniteherbs/adminapi/internal/admin/domain"
	"github.com/infiniteherbs/adminapi/internal/admin/store/drivers/sqlite"
	"github.com/infiniteherbs/adminapi/pkg/cryptox"
	"github.com/infiniteherbs/adminapi/pkg/idx"
)

const seedPassword = "admin123"

func main() {
	cfg := app.LoadConfig()
	cryptox.SetPepperPath(cfg.PepperFile)

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	ctx := context.Background()

	count, err := db.Users().CountUsers(ctx)
	if err != nil {
		log.Fatalf("failed to count users: %v", err)
	}
	if count > 0 {
		log.Printf("database already has %d users, nothing to do", count)
		return
	}

	seeds := []struct {
		userName  string
		email     string
		firstName string
		lastName  string
		role      domain.Role
	}{
		{"admin", "admin@admin.com", "Admin", "System", domain.RoleAdmin},
		{"jdoe", "jdoe@admin.com", "John", "Doe", domain.RoleUser},
		{"mjane", "mjane@admin.com", "Mary", "Jane", domain.RoleViewer},
	}

	for _, s := range seeds {
		hash, err := cryptox.HashPassword(seedPassword)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		now := time.Now().UTC()
		u := domain.User{
			ID:             idx.New().String(),
			UserName:       s.userName,
			Email:          s.email,
			HashedPassword: hash,
			FirstName:      s.firstName,
			LastName:       s.lastName,
			Role:           s.role,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := db.Users().CreateUser(ctx, u); err != nil {
			log.Fatalf("failed to insert %s: %v", s.userName, err)
		}
		log.Printf("created %s / %s (role: %s)", s.userName, seedPassword, s.role)
	}

	log.Printf("seeded %d users", len(seeds))
}
