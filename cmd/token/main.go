package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"clinic-chat/config"
	"clinic-chat/internal/repository"
	"clinic-chat/internal/services"
	"clinic-chat/pkg/database"
	"clinic-chat/pkg/logger"

	"github.com/google/uuid"
)

const usage = `
Clinic Chat - Token CLI Tool

Mints a bearer token for a registered user. Send it as
"Authorization: Bearer <token>" when AUTH_ENABLED is set.

Usage:
  token <user-id>
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	userID, err := uuid.Parse(flag.Arg(0))
	if err != nil {
		log.Fatalf("invalid user id %q: %v", flag.Arg(0), err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.StorageDriver != config.StoragePostgres {
		log.Fatalf("token minting needs the postgres store, got STORAGE_DRIVER=%s", cfg.StorageDriver)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	users := services.NewUserService(repository.NewUnitOfWork(db), logger.NewNop())
	auth := services.NewAuthService(users, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, err := auth.IssueToken(ctx, userID)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Println(token.AccessToken)
	fmt.Fprintf(os.Stderr, "expires in %ds\n", token.ExpiresIn)
}
