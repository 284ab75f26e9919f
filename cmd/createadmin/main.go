// Copyright (c) 2026 Atimus. All rights reserved.

// Command createadmin provisions (or re-credentials) a platform operator.
//
// Admin accounts have no self-service signup: they are created out-of-band
// by whoever operates the deployment.
//
// # Usage
//
//	DATABASE_URL=postgres://... createadmin -email ops@atimus.agr.br -password 'S3nh4Forte'
//
// Running it again with the same email rotates the password.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/atimus/edital-api/internal/admin"
	pgstore "github.com/atimus/edital-api/internal/platform/postgres"
	"github.com/atimus/edital-api/internal/platform/sec"
	"github.com/atimus/edital-api/pkg/uuid"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Error("both -email and -password are required")
		os.Exit(2)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, databaseURL, log)
	if err != nil {
		log.Error("connect to postgres failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	passwordHash, err := sec.HashPassword(*password)
	if err != nil {
		log.Error("password hashing failed", slog.Any("error", err))
		os.Exit(1)
	}

	store := admin.NewPostgresStore(pool)
	account := &admin.Account{
		ID:           uuid.New(),
		Email:        *email,
		PasswordHash: passwordHash,
		Role:         sec.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	if err := store.Upsert(ctx, account); err != nil {
		log.Error("admin upsert failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("admin_provisioned", slog.String("email", sec.MaskEmail(*email)))
}
