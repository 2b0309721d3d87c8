// Command seed populates the database with demo users, blogs and comments.
package main

import (
	"flag"
	"log"

	"blogpost/internal/config"
	"blogpost/internal/database"
	"blogpost/internal/password"
	"blogpost/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 100, "Number of users to create")
	numBlogs := flag.Int("blogs", 50, "Number of blogs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, password.NewHasher(cfg.PasswordSalt))

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(*numUsers, *numBlogs); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All seeded users share the password %q", seed.DefaultPassword)
}
