package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"clinic-chat/config"
	"clinic-chat/internal/repository"
	"clinic-chat/internal/services"
	"clinic-chat/pkg/database"
	"clinic-chat/pkg/logger"
)

const usage = `
Clinic Chat - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Create tables, indexes and constraints
  status      Show database connection status and row counts
  seed-dev    Seed with development data (doctors, patients, one rated consultation)
  reset       Drop all tables and re-run migrations (DANGEROUS)
  truncate    Delete all rows from every table (DANGEROUS)

Flags:
  -doctors string    Comma separated doctor names for seed-dev
  -patients string   Comma separated patient names for seed-dev

Examples:
  go run ./cmd/migrate up
  go run ./cmd/migrate status
  go run ./cmd/migrate -doctors "Dr. House,Dr. Grey" seed-dev
  go run ./cmd/migrate truncate
`

func main() {
	doctors := flag.String("doctors", "", "Comma separated doctor names for seed-dev")
	patients := flag.String("patients", "", "Comma separated patient names for seed-dev")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close()

	switch command {
	case "up":
		runMigrationsUp()
	case "status":
		showStatus()
	case "seed-dev":
		runSeedDevelopment(cfg, *doctors, *patients)
	case "reset":
		runReset()
	case "truncate":
		runTruncate()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp() {
	log.Println("🚀 Running migrations UP...")

	if err := database.RunFullMigration(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func showStatus() {
	log.Println("🔍 Checking database status...")

	if err := database.Ping(); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	for _, table := range repository.TableNames() {
		exists, err := database.TableExists(table)
		if err != nil {
			log.Printf("⚠️  Error checking table %s: %v", table, err)
			continue
		}
		if exists {
			count, _ := database.GetTableCount(table)
			log.Printf("✅ Table %-26s exists (%d rows)", table, count)
		} else {
			log.Printf("❌ Table %-26s does not exist", table)
		}
	}

	if err := database.HealthCheck(); err != nil {
		log.Printf("⚠️  Health check warning: %v", err)
	} else {
		log.Println("✅ Health check: PASSED")
	}
}

func runSeedDevelopment(cfg *config.Config, doctors, patients string) {
	log.Println("🌱 Seeding database (development mode)...")

	seedCfg := database.DefaultSeedConfig()
	if names := splitNames(doctors); len(names) > 0 {
		seedCfg.Doctors = names
	}
	if names := splitNames(patients); len(names) > 0 {
		seedCfg.Patients = names
	}

	l := logger.New(cfg.LogMode)
	defer l.Sync()

	uow := repository.NewUnitOfWork(database.DB)
	users := services.NewUserService(uow, l)
	conversations := services.NewConversationService(uow, users, l)
	svc := database.Services{
		Users:         users,
		Conversations: conversations,
		Messages:      services.NewMessageService(uow, users, conversations, l),
		Ratings:       services.NewRatingService(uow, users, conversations, nil, l),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := database.Seed(ctx, svc, seedCfg)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("📊 Seed Summary:")
	log.Printf("   - Doctors: %d", len(result.Doctors))
	log.Printf("   - Patients: %d", len(result.Patients))
	log.Printf("   - Conversations: %d", len(result.Conversations))
	log.Printf("   - Messages: %d", len(result.Messages))
	log.Printf("   - Ratings: %d", len(result.Ratings))
	for _, p := range result.Patients {
		log.Printf("   - Patient %s: %s", p.Name, p.ID)
	}
	log.Println("✅ Development seeding completed!")
}

func runReset() {
	log.Println("⚠️  WARNING: This will DROP all tables and re-run migrations!")
	log.Println("⚠️  Press Ctrl+C within 5 seconds to cancel...")

	fmt.Print("Proceeding in: ")
	for i := 5; i > 0; i-- {
		fmt.Printf("%d... ", i)
		time.Sleep(time.Second)
	}
	fmt.Println()

	log.Println("🗑️  Dropping all tables...")
	if err := database.DropAllTables(); err != nil {
		log.Fatalf("❌ Failed to drop tables: %v", err)
	}

	log.Println("🚀 Running migrations...")
	if err := database.RunFullMigration(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Database reset completed!")
}

func runTruncate() {
	log.Println("⚠️  WARNING: This will delete every row!")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.TruncateAll(ctx, repository.NewUnitOfWork(database.DB)); err != nil {
		log.Fatalf("❌ Truncate failed: %v", err)
	}

	log.Println("✅ All tables truncated!")
}

func splitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
