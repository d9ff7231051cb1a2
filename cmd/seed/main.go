package main

import (
	"fmt"
	"log"
	"time"

	"reelpass/internal/movies"
	"reelpass/internal/screenings"
	"reelpass/internal/shared/config"
	"reelpass/internal/shared/database"
	"reelpass/internal/users"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Reelpass Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	pg := s.db.GetPostgreSQL()

	// Tickets reference screenings, screenings reference movies
	tables := []string{"tickets", "screenings", "movies", "users"}
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

// SeedAll seeds users, the movie catalog, and a week of screenings
func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	fmt.Println("  👤 Users seeded")

	catalog, err := s.seedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}
	fmt.Printf("  🎬 %d movies seeded\n", len(catalog))

	count, err := s.seedScreenings(catalog)
	if err != nil {
		return fmt.Errorf("failed to seed screenings: %w", err)
	}
	fmt.Printf("  🕗 %d screenings seeded\n", count)

	return nil
}

func (s *Seeder) seedUsers() error {
	pg := s.db.GetPostgreSQL()

	seedAccounts := []struct {
		firstName string
		lastName  string
		email     string
		password  string
		role      users.Role
	}{
		{"Admin", "Reelpass", "admin@reelpass.io", "admin123", users.RoleAdmin},
		{"Demo", "Customer", "demo@reelpass.io", "demo123", users.RoleUser},
	}

	for _, account := range seedAccounts {
		hashed, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &users.User{
			FirstName: account.firstName,
			LastName:  account.lastName,
			Email:     account.email,
			Password:  string(hashed),
			Role:      account.role,
		}
		if err := pg.Create(user).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *Seeder) seedMovies() ([]movies.Movie, error) {
	pg := s.db.GetPostgreSQL()

	catalog := []movies.Movie{
		{
			Title:       "Blade Runner 2049",
			Description: "A young blade runner uncovers a long-buried secret that leads him to track down a former colleague who has been missing for thirty years.",
			Genre:       "Sci-Fi",
			DurationMin: 164,
			Rating:      "R",
		},
		{
			Title:       "The Grand Budapest Hotel",
			Description: "The adventures of a legendary concierge and his trusted lobby boy at a famous European hotel between the wars.",
			Genre:       "Comedy",
			DurationMin: 99,
			Rating:      "R",
		},
		{
			Title:       "Spirited Away",
			Description: "A ten-year-old girl wanders into a world ruled by spirits and witches, where humans are changed into beasts.",
			Genre:       "Animation",
			DurationMin: 125,
			Rating:      "PG",
		},
		{
			Title:       "Heat",
			Description: "A group of professional bank robbers start to feel the heat from police when they unknowingly leave a clue at their latest heist.",
			Genre:       "Crime",
			DurationMin: 170,
			Rating:      "R",
		},
	}

	for i := range catalog {
		if err := pg.Create(&catalog[i]).Error; err != nil {
			return nil, err
		}
	}

	return catalog, nil
}

func (s *Seeder) seedScreenings(catalog []movies.Movie) (int, error) {
	pg := s.db.GetPostgreSQL()

	// Evening slots for the next seven days
	slots := []int{15, 18, 21}
	halls := []string{"Hall 1", "Hall 2", "Grand Hall"}
	prices := []decimal.Decimal{
		decimal.NewFromFloat(9.50),
		decimal.NewFromFloat(12.00),
		decimal.NewFromFloat(14.50),
	}

	count := 0
	today := time.Now().Truncate(24 * time.Hour)

	for day := 1; day <= 7; day++ {
		date := today.AddDate(0, 0, day)
		for slotIdx, hour := range slots {
			movie := catalog[(day+slotIdx)%len(catalog)]

			screening := &screenings.Screening{
				MovieID:  movie.ID,
				Hall:     halls[slotIdx],
				StartsAt: date.Add(time.Duration(hour) * time.Hour),
				Price:    prices[slotIdx],
			}
			if err := pg.Create(screening).Error; err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}
