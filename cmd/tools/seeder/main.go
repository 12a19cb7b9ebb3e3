// Seeder loads a starter furniture catalog so the storefront has
// something to sell on a fresh database.
package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

type product struct {
	Name          string
	Price         int64
	OriginalPrice *int64
	Category      string
	ImageURL      string
	InStock       bool
	StockQty      int
}

func price(v int64) *int64 { return &v }

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	if err := conn.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedCatalog(ctx, conn)

	log.Println("Seeding completed successfully!")
}

func seedCatalog(ctx context.Context, conn *pgx.Conn) {
	products := []product{
		{"Linen Slipcover Sofa", 129900, price(149900), "sofas", "/images/linen-sofa.jpg", true, 8},
		{"Boucle Accent Chair", 64900, nil, "seating", "/images/boucle-chair.jpg", true, 14},
		{"Walnut Coffee Table", 38900, price(44900), "tables", "/images/walnut-coffee-table.jpg", true, 20},
		{"Marble Dining Table", 219900, nil, "tables", "/images/marble-dining-table.jpg", true, 3},
		{"Oak Bookshelf", 84900, nil, "storage", "/images/oak-bookshelf.jpg", true, 11},
		{"Rattan Pendant Lamp", 17900, price(21900), "lighting", "/images/rattan-pendant.jpg", true, 30},
		{"Ceramic Table Vase", 4900, nil, "decor", "/images/ceramic-vase.jpg", true, 48},
		{"Velvet Ottoman", 29900, nil, "seating", "/images/velvet-ottoman.jpg", true, 9},
		{"Teak Outdoor Bench", 74900, price(89900), "outdoor", "/images/teak-bench.jpg", true, 6},
		{"Wool Area Rug 5x8", 54900, nil, "rugs", "/images/wool-rug.jpg", true, 17},
		{"Brass Floor Lamp", 32900, nil, "lighting", "/images/brass-floor-lamp.jpg", false, 0},
		{"Ash Nightstand", 24900, nil, "storage", "/images/ash-nightstand.jpg", true, 22},
	}

	log.Println("Seeding catalog...")
	for _, p := range products {
		_, err := conn.Exec(ctx, `
			INSERT INTO products (name, price, original_price, category, image_url, in_stock, stock_qty)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT DO NOTHING`,
			p.Name, p.Price, p.OriginalPrice, p.Category, p.ImageURL, p.InStock, p.StockQty,
		)
		if err != nil {
			log.Fatalf("Failed to seed product %q: %v", p.Name, err)
		}
	}
}
