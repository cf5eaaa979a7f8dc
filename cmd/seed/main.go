package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"catalog-search-backend/config"
	"catalog-search-backend/internal/domain"
	"catalog-search-backend/internal/repository/postgres"
	"catalog-search-backend/pkg/logger"
)

const productCount = 500

var categories = []string{"laptop", "phone", "sneaker", "hoodie", "backpack", "headphones", "watch", "keyboard"}

var colors = []string{"black", "white", "red", "blue", "green", "silver", "grey"}

var adjectives = []string{"Classic", "Pro", "Ultra", "Lite", "Max", "Sport", "Urban", "Essential", "Premium", "Everyday"}

var brands = []string{"Nordwind", "Apex", "Vela", "Kitefall", "Orbita", "Stratus", "Lumen", "Hexa"}

var descriptions = []string{
	"Built for daily use with durable materials.",
	"Lightweight design with all-day comfort.",
	"High performance in a compact form factor.",
	"A reliable pick that holds up over time.",
	"Refined finish with attention to detail.",
	"",
}

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	ctx := context.Background()

	pool, err := postgres.NewPgxPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	batch := &pgx.Batch{}
	for i := 0; i < productCount; i++ {
		category := categories[rng.Intn(len(categories))]
		color := colors[rng.Intn(len(colors))]

		p := domain.Product{
			SKU:        fmt.Sprintf("%s-%s", strings.ToUpper(category[:3]), uuid.NewString()[:8]),
			Name:       fmt.Sprintf("%s %s %s", brands[rng.Intn(len(brands))], adjectives[rng.Intn(len(adjectives))], category),
			Category:   category,
			Color:      color,
			PriceCents: int64(rng.Intn(195000) + 500),
			Currency:   "USD",
			StockQty:   rng.Intn(200),
		}
		if desc := descriptions[rng.Intn(len(descriptions))]; desc != "" {
			p.Description = &desc
		}
		p.RebuildSearchableText()

		// Spread creation over the last 30 days so recency sorts are meaningful
		createdAt := now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour)
		updatedAt := createdAt.Add(time.Duration(rng.Intn(72)) * time.Hour)
		if updatedAt.After(now) {
			updatedAt = now
		}

		batch.Queue(`
			INSERT INTO products (
				sku, name, description, category, color,
				price_cents, currency, stock_qty, searchable_text,
				created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (sku) DO NOTHING`,
			p.SKU, p.Name, p.Description, p.Category, p.Color,
			p.PriceCents, p.Currency, p.StockQty, p.SearchableText,
			createdAt, updatedAt,
		)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			log.Fatal().Err(err).Int("index", i).Msg("Seed insert failed")
		}
		inserted += int(tag.RowsAffected())
	}

	if err := results.Close(); err != nil {
		log.Fatal().Err(err).Msg("Failed to close batch")
	}

	log.Info().Int("inserted", inserted).Msg("Seed complete")
}
