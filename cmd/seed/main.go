package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"ticketly/internal/events"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/shows"
	"ticketly/internal/users"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Ticketly Database Seeder...")

	_ = godotenv.Load()
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

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"shows",
		"events",
		"users",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	// Drop guard state so it re-seeds from the clean store
	return s.db.GetRedisClient().FlushDB(context.Background()).Err()
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	return s.seedEventsAndShows()
}

func (s *Seeder) seedUsers() error {
	pg := s.db.GetPostgreSQL()

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt failed: %v", err)
		}
		return string(h)
	}

	seedUsers := []users.User{
		{
			ID:       uuid.New(),
			Name:     "Admin",
			Email:    "admin@ticketly.app",
			Password: hash("admin12345"),
			Role:     users.RoleAdmin,
		},
		{
			ID:       uuid.New(),
			Name:     "Asha Rao",
			Email:    "asha@example.com",
			Password: hash("password123"),
			Role:     users.RoleUser,
		},
		{
			ID:       uuid.New(),
			Name:     "Vikram Mehta",
			Email:    "vikram@example.com",
			Password: hash("password123"),
			Role:     users.RoleUser,
		},
	}

	if err := pg.Create(&seedUsers).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	fmt.Printf("✅ Seeded %d users\n", len(seedUsers))
	return nil
}

func (s *Seeder) seedEventsAndShows() error {
	pg := s.db.GetPostgreSQL()

	movie := events.Event{
		ID:         uuid.New(),
		Title:      "Interstellar: Re-release",
		EventType:  "MOVIE",
		Location:   "Mumbai",
		DateTime:   time.Now().AddDate(0, 0, 7),
		TotalSeats: 80,
		BannerURL:  "https://cdn.ticketly.app/banners/interstellar.jpg",
	}
	concert := events.Event{
		ID:         uuid.New(),
		Title:      "Indie Night Live",
		EventType:  "CONCERT",
		Location:   "Bengaluru",
		DateTime:   time.Now().AddDate(0, 0, 14),
		TotalSeats: 80,
		BannerURL:  "https://cdn.ticketly.app/banners/indie-night.jpg",
	}
	if err := pg.Create(&[]events.Event{movie, concert}).Error; err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}
	fmt.Println("✅ Seeded 2 events")

	seedShows := []shows.Show{
		{
			ID:          uuid.New(),
			EventID:     movie.ID,
			TheaterName: "PVR Phoenix",
			ShowTime:    movie.DateTime.Add(18 * time.Hour),
			Price:       350,
			TotalSeats:  80,
		},
		{
			ID:          uuid.New(),
			EventID:     movie.ID,
			TheaterName: "INOX Nariman Point",
			ShowTime:    movie.DateTime.Add(21 * time.Hour),
			Price:       420,
			TotalSeats:  80,
		},
		{
			ID:          uuid.New(),
			EventID:     concert.ID,
			TheaterName: "Indira Gandhi Arena",
			ShowTime:    concert.DateTime.Add(19 * time.Hour),
			Price:       1500,
			TotalSeats:  80,
		},
	}
	if err := pg.Create(&seedShows).Error; err != nil {
		return fmt.Errorf("failed to seed shows: %w", err)
	}
	fmt.Printf("✅ Seeded %d shows\n", len(seedShows))
	return nil
}
