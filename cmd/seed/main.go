package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/chatbet/base-models/config"
	"github.com/chatbet/base-models/models"
	"github.com/chatbet/base-models/pkg/mongodb"
	mongorepos "github.com/chatbet/base-models/repositories/mongodb"
)

// Seeds a tenant with the default configuration records: message
// templates, platform endpoints, site config, sportbook config, an empty
// promotion catalog and an empty tutorial collection.
func main() {
	companyID := flag.String("company", "", "company ID to seed")
	siteName := flag.String("site", "", "site name for the site config (defaults to the company ID)")
	flag.Parse()

	if *companyID == "" {
		log.Fatal("-company is required")
	}
	if *siteName == "" {
		*siteName = *companyID
	}

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to MongoDB
	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)

	templatesRepo := mongorepos.NewMessageTemplatesRepository(db)
	endpointsRepo := mongorepos.NewEndpointsRepository(db)
	siteRepo := mongorepos.NewSiteConfigRepository(db)
	sportbookRepo := mongorepos.NewSportbookConfigRepository(db)
	promotionsRepo := mongorepos.NewPromotionsRepository(db)
	tutorialsRepo := mongorepos.NewTutorialsRepository(db)

	if err := templatesRepo.Upsert(ctx, models.DefaultMessageTemplatesDB(*companyID)); err != nil {
		log.Fatalf("Failed to seed message templates: %v", err)
	}
	log.Printf("Seeded message templates for company %s", *companyID)

	if err := endpointsRepo.Upsert(ctx, models.DefaultAPIEndpointsDB(*companyID)); err != nil {
		log.Fatalf("Failed to seed platform endpoints: %v", err)
	}
	log.Printf("Seeded platform endpoints for company %s", *companyID)

	if err := siteRepo.Upsert(ctx, models.DefaultSiteConfigDB(*siteName, *companyID)); err != nil {
		log.Fatalf("Failed to seed site config: %v", err)
	}
	log.Printf("Seeded site config for company %s", *companyID)

	if err := sportbookRepo.Upsert(ctx, models.DefaultBetsw3SportbookConfigDB(*companyID)); err != nil {
		log.Fatalf("Failed to seed sportbook config: %v", err)
	}
	log.Printf("Seeded sportbook config for company %s", *companyID)

	if err := promotionsRepo.Upsert(ctx, models.NewPromotionsConfigDB(*companyID)); err != nil {
		log.Fatalf("Failed to seed promotions: %v", err)
	}
	log.Printf("Seeded promotions for company %s", *companyID)

	if err := tutorialsRepo.Upsert(ctx, models.NewTutorialsDB(*companyID)); err != nil {
		log.Fatalf("Failed to seed tutorials: %v", err)
	}
	log.Printf("Seeded tutorials for company %s", *companyID)

	log.Printf("Seeding complete for company %s", *companyID)
}
