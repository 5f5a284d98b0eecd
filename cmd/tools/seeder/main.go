package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/alexedwards/argon2id"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatalf("Failed to parse DATABASE_URL: %v", err)
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	queries := dbgen.New(pool)

	seedAdmin(ctx, queries)
	seedCatalog(ctx, queries)
	seedDeliveryCosts(ctx, queries)
	seedCoupons(ctx, queries)

	log.Println("Seeding completed successfully!")
}

func seedAdmin(ctx context.Context, q *dbgen.Queries) {
	phone := os.Getenv("SEED_ADMIN_PHONE")
	if phone == "" {
		phone = "+8801700000000"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-admin"
	}

	if _, err := q.GetUserByPhone(ctx, phone); err == nil {
		log.Printf("Admin %s already present, skipping", phone)
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("Failed to look up admin: %v", err)
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	if _, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		Name:         "FlexFume Admin",
		PhoneNumber:  phone,
		Email:        pgtype.Text{String: "admin@flexfume.com", Valid: true},
		PasswordHash: hash,
		Role:         dbgen.UserRoleADMIN,
	}); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Seeded admin user %s", phone)
}

func seedCatalog(ctx context.Context, q *dbgen.Queries) {
	existing, err := q.ListCategories(ctx)
	if err != nil {
		log.Fatalf("Failed to list categories: %v", err)
	}
	if len(existing) > 0 {
		log.Println("Catalog already seeded, skipping")
		return
	}

	type seedProduct struct {
		name        string
		description string
		price       string
	}
	catalog := []struct {
		category    string
		description string
		products    []seedProduct
	}{
		{
			category:    "Eau de Parfum",
			description: "Long lasting concentrated fragrances",
			products: []seedProduct{
				{"Oud Royale 100ml", "Deep woody oud with amber base notes", "4500.00"},
				{"Midnight Jasmine 50ml", "Floral jasmine with a hint of musk", "2800.00"},
				{"Citrus Noir 100ml", "Bergamot and black pepper", "3200.00"},
			},
		},
		{
			category:    "Body Spray",
			description: "Everyday light fragrances",
			products: []seedProduct{
				{"Fresh Sport 150ml", "Aquatic notes for daily wear", "650.00"},
				{"Urban Musk 150ml", "Soft musk body spray", "700.00"},
			},
		},
		{
			category:    "Attar",
			description: "Alcohol free concentrated oils",
			products: []seedProduct{
				{"White Oud Attar 12ml", "Traditional alcohol free oud oil", "1900.00"},
			},
		},
	}

	for _, entry := range catalog {
		cat, err := q.CreateCategory(ctx, dbgen.CreateCategoryParams{
			Name:        entry.category,
			Description: pgtype.Text{String: entry.description, Valid: true},
		})
		if err != nil {
			log.Fatalf("Failed to create category %s: %v", entry.category, err)
		}
		for _, p := range entry.products {
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				log.Fatalf("Bad seed price %s: %v", p.price, err)
			}
			if _, err := q.CreateProduct(ctx, dbgen.CreateProductParams{
				Name:        p.name,
				Description: pgtype.Text{String: p.description, Valid: true},
				Price:       price,
				CategoryID:  cat.ID,
			}); err != nil {
				log.Fatalf("Failed to create product %s: %v", p.name, err)
			}
		}
		log.Printf("Seeded category %s with %d products", entry.category, len(entry.products))
	}
}

func seedDeliveryCosts(ctx context.Context, q *dbgen.Queries) {
	existing, err := q.ListDeliveryCosts(ctx)
	if err != nil {
		log.Fatalf("Failed to list delivery costs: %v", err)
	}
	if len(existing) > 0 {
		log.Println("Delivery costs already seeded, skipping")
		return
	}

	costs := []struct {
		location string
		service  string
		cost     string
	}{
		{"Dhaka", "standard", "60.00"},
		{"Chattogram", "standard", "120.00"},
		{"Sylhet", "standard", "120.00"},
		{"Khulna", "standard", "130.00"},
	}
	for _, c := range costs {
		amount, err := decimal.NewFromString(c.cost)
		if err != nil {
			log.Fatalf("Bad seed cost %s: %v", c.cost, err)
		}
		if _, err := q.CreateDeliveryCost(ctx, dbgen.CreateDeliveryCostParams{
			Location: c.location,
			Service:  c.service,
			Cost:     amount,
		}); err != nil {
			log.Fatalf("Failed to create delivery cost for %s: %v", c.location, err)
		}
	}
	log.Printf("Seeded %d delivery cost rows", len(costs))
}

func seedCoupons(ctx context.Context, q *dbgen.Queries) {
	if _, err := q.GetCouponByCode(ctx, "WELCOME10"); err == nil {
		log.Println("Coupons already seeded, skipping")
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("Failed to look up coupon: %v", err)
	}

	expiry := time.Now().AddDate(0, 3, 0)
	if _, err := q.CreateCoupon(ctx, dbgen.CreateCouponParams{
		Code:             "WELCOME10",
		CouponType:       dbgen.CouponTypePERCENTAGE,
		Amount:           decimal.NewFromInt(10),
		MinOrderAmount:   decimal.NewFromInt(1000),
		MaxAmountApplied: decimal.NewFromInt(500),
		UsageLimit:       1,
		ExpirationTime:   pgtype.Timestamptz{Time: expiry, Valid: true},
		Active:           true,
	}); err != nil {
		log.Fatalf("Failed to create coupon: %v", err)
	}
	log.Println("Seeded coupon WELCOME10")
}
