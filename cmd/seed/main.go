// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
	"pharmacore/internal/domain/auth"
	"pharmacore/internal/domain/catalogs/customer"
	"pharmacore/internal/domain/catalogs/product"
	"pharmacore/internal/domain/inventory"
	"pharmacore/internal/domain/purchases"
	"pharmacore/internal/infrastructure/storage/postgres"
	"pharmacore/internal/infrastructure/storage/postgres/auth_repo"
	"pharmacore/internal/infrastructure/storage/postgres/catalog_repo"
	"pharmacore/internal/infrastructure/storage/postgres/document_repo"
	"pharmacore/internal/infrastructure/storage/postgres/inventory_repo"
	"pharmacore/pkg/logger"
	"pharmacore/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if err := seedWalkInCustomer(ctx, pool, txManager, log); err != nil {
		log.Fatalw("failed to seed walk-in customer", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@pharmacore.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	userRepo := auth_repo.NewUserRepo(txManager)
	tokenSvc := auth.NewTokenService("seed-unused", time.Hour)
	authSvc := auth.NewService(userRepo, tokenSvc)

	user, err := authSvc.Register(ctx, adminEmail, "System Admin", adminPassword, auth.RoleAdmin)
	if err != nil {
		if apperrIsDuplicate(err) {
			log.Infow("admin user already exists", "email", adminEmail)
			return nil
		}
		return err
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", user.ID)
	return nil
}

func seedWalkInCustomer(ctx context.Context, pool *postgres.Pool, txManager *postgres.TxManager, log *logger.Logger) error {
	const walkInName = "Walk-in customer"

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM cat_customers WHERE name = $1 AND deletion_mark = false`,
		walkInName,
	).Scan(&existingID)
	if err == nil {
		log.Infow("walk-in customer already exists", "customer_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check walk-in customer: %w", err)
	}

	customerSvc := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager)
	c := customer.New(walkInName)
	if err := customerSvc.Create(ctx, c); err != nil {
		return err
	}

	log.Infow("walk-in customer created", "customer_id", c.ID)
	return nil
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	log.Info("seeding demo data...")

	productRepo := catalog_repo.NewProductRepo(txManager)
	productSvc := product.NewService(productRepo, txManager)
	inventorySvc := inventory.NewService(inventory_repo.NewBatchRepo(txManager), txManager)
	num := numerator.New(func(ctx context.Context) numerator.Querier {
		return txManager.GetQuerier(ctx)
	})
	purchaseSvc := purchases.NewService(
		document_repo.NewPurchaseRepo(txManager),
		productRepo, inventorySvc, num, txManager,
	)

	type productSeed struct {
		code     string
		name     string
		alertQty int64
		cost     string
		price    string
		qty      int64
		expiry   time.Time
	}

	now := time.Now().UTC()
	seeds := []productSeed{
		{"PARA-500", "Paracetamol 500mg (20 tabs)", 30, "1.20", "2.50", 200, now.AddDate(1, 6, 0)},
		{"IBUP-400", "Ibuprofen 400mg (30 tabs)", 25, "1.80", "3.90", 150, now.AddDate(2, 0, 0)},
		{"AMOX-500", "Amoxicillin 500mg (16 caps)", 20, "3.50", "7.20", 80, now.AddDate(0, 9, 0)},
		{"VITC-1000", "Vitamin C 1000mg (60 tabs)", 15, "4.00", "8.50", 60, now.AddDate(1, 0, 0)},
		{"SALB-100", "Salbutamol inhaler 100mcg", 10, "6.50", "12.00", 40, now.AddDate(1, 3, 0)},
	}

	created := 0
	for _, s := range seeds {
		exists, err := productRepo.ExistsByCode(ctx, s.code)
		if err != nil {
			return fmt.Errorf("check product %s: %w", s.code, err)
		}
		if exists {
			continue
		}

		p := product.New(s.code, s.name)
		p.AlertQty = s.alertQty
		p.Cost = types.MustMoney(s.cost)
		p.Price = types.MustMoney(s.price)
		if err := productSvc.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %s: %w", s.code, err)
		}

		// Receive an initial delivery so stock and batches line up.
		po := purchases.New("Initial stock")
		po.AddLine(p.ID, fmt.Sprintf("LOT-%s-001", s.code), s.qty, types.MustMoney(s.cost), s.expiry)
		if err := purchaseSvc.Receive(ctx, po); err != nil {
			return fmt.Errorf("receive initial stock for %s: %w", s.code, err)
		}
		created++
	}

	log.Infow("demo data seeded", "products_created", created)
	return nil
}

func apperrIsDuplicate(err error) bool {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.Code == apperror.CodeDuplicate || appErr.Code == apperror.CodeConflict
	}
	return false
}
