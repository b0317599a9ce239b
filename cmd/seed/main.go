// Command seed populates the database with the built-in accounts and demo posts.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/passwords"
	"quill/internal/seed"
)

func main() {
	fakePosts := flag.Int("fake-posts", 0, "Number of generated demo posts to add")
	builtins := flag.Bool("builtins", true, "Seed the admin and testUser accounts and the starter posts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if *builtins {
		if err := seed.BuiltIns(db, cfg, passwords.Default); err != nil {
			log.Fatalf("Built-in seeding failed: %v", err)
		}
	}

	if err := seed.FakePosts(db, *fakePosts); err != nil {
		log.Fatalf("Demo post seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
