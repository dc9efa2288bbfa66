// Command main runs the database seeder for Warbler.
package main

import (
	"flag"
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numWarbles := flag.Int("warbles", 100, "Number of warbles to create")
	maxDays := flag.Int("max-days", 30, "Spread warbles over this many past days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixture := flag.String("fixture", "", "Apply a YAML fixture instead of generated data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *fixture != "" {
		f, err := seed.LoadFixture(*fixture)
		if err != nil {
			log.Fatalf("Fixture load failed: %v", err)
		}
		if err := f.Apply(db); err != nil {
			log.Fatalf("Fixture apply failed: %v", err)
		}
		log.Printf("Fixture %s applied.", *fixture)
		return
	}

	if err := s.Run(seed.Options{
		NumUsers:   *numUsers,
		NumWarbles: *numWarbles,
		MaxDays:    *maxDays,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. All seeded users have the password: password123")
}
