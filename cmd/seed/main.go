package main

import (
	"context"
	"fmt"
	"log"

	"seatly/internal/seats"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Seatly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"reservations",
		"seats",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds staff accounts, a few readers, and the seat catalog.
func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.SeedSeats(); err != nil {
		return fmt.Errorf("failed to seed seats: %w", err)
	}
	return nil
}

func (s *Seeder) SeedUsers() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	seedUsers := []users.User{
		{FirstName: "Ada", LastName: "Admin", Email: "admin@seatly.local", Role: users.RoleAdmin, Password: string(hash)},
		{FirstName: "Lena", LastName: "Librarian", Email: "librarian@seatly.local", Role: users.RoleLibrarian, Password: string(hash)},
		{FirstName: "Riley", LastName: "Reader", Email: "riley@seatly.local", Role: users.RoleUser, Password: string(hash)},
		{FirstName: "Sam", LastName: "Student", Email: "sam@seatly.local", Role: users.RoleUser, Password: string(hash)},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", seedUsers[i].Email, err)
		}
		fmt.Printf("  Created user: %s (%s)\n", seedUsers[i].Email, seedUsers[i].Role)
	}

	return nil
}

func (s *Seeder) SeedSeats() error {
	ctx := context.Background()
	repo := seats.NewRepository(s.db.GetPostgreSQL())

	locations := []string{"Reading Room", "Quiet Zone", "Group Study"}
	count := 0
	for _, location := range locations {
		for n := 1; n <= 10; n++ {
			seat := &seats.Seat{
				Number:   fmt.Sprintf("%s-%02d", shortCode(location), n),
				Location: location,
			}
			if err := repo.Create(ctx, seat); err != nil {
				return fmt.Errorf("failed to create seat %s: %w", seat.Number, err)
			}
			count++
		}
	}

	fmt.Printf("  Created %d seats across %d locations\n", count, len(locations))
	return nil
}

func shortCode(location string) string {
	switch location {
	case "Reading Room":
		return "RR"
	case "Quiet Zone":
		return "QZ"
	case "Group Study":
		return "GS"
	default:
		return "ST"
	}
}
