package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users and schools for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM schools").Error; err != nil {
				log.Fatalf("failed to clear schools: %v", err)
			}
			if err := db.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		users := []struct {
			Name     string
			Email    string
			Password string
			Role     string
		}{
			{"Admin", "admin@gmail.com", "Admin1", "admin"},
			{"Edit", "edit@gmail.com", "Edit12", "edit"},
			{"View", "view@gmail.com", "View12", "view"},
			{"Edit2", "edit2@gmail.com", "Edit12", "edit"},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash password for %s: %v", u.Email, err)
			}

			if err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				u.Name, u.Email, string(hash), u.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		ownerIDs := make(map[string]int64)
		for _, email := range []string{"admin@gmail.com", "edit@gmail.com"} {
			var id int64
			if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
				log.Fatalf("failed to look up seeded user %s: %v", email, err)
			}
			ownerIDs[email] = id
		}

		schools := []struct {
			Name        string
			Responsible string
			Contact     string
			Address     string
			OwnerEmail  string
		}{
			{"Escola1", "Edit", "933333333", "Morada2", "edit@gmail.com"},
			{"Escola2", "Edit", "933333333", "Morada2", "edit@gmail.com"},
			{"Escola3", "Admin", "966666666", "Morada1", "admin@gmail.com"},
		}

		for _, s := range schools {
			var exists int
			if err := db.Raw("SELECT 1 FROM schools WHERE name = ?", s.Name).Row().Scan(&exists); err == nil {
				fmt.Printf("school %s already exists, skipping\n", s.Name)
				continue
			}

			if err := db.Exec(
				"INSERT INTO schools (name, responsible, contact, address, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				s.Name, s.Responsible, s.Contact, s.Address, ownerIDs[s.OwnerEmail],
			).Error; err != nil {
				log.Fatalf("failed to insert school %s: %v", s.Name, err)
			}
			fmt.Printf("Seeded school: %s\n", s.Name)
		}

		fmt.Println("Seed data loaded successfully")
	},
}
