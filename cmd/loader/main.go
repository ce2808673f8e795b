package main

import (
	"log"
	"os"

	"finadvisor/internal/catalog"
	"finadvisor/internal/config"
	"finadvisor/internal/db"
	"finadvisor/internal/repository"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	f, err := os.Open(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}
	defer f.Close()

	products, err := catalog.ParseCSV(f)
	if err != nil {
		log.Fatalf("parse catalog: %v", err)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer conn.Close()
	if err := conn.Ping(); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	repo := &repository.SeedRepository{DB: conn}
	if err := repo.EnsureTable(); err != nil {
		log.Fatalf("ensure table: %v", err)
	}

	for _, p := range products {
		if err := repo.Save(p); err != nil {
			log.Fatalf("save %s: %v", p.Name, err)
		}
		log.Printf("[Loader] saved %s", p.Name)
	}
	log.Printf("[Loader] seeded %d products", len(products))
}
