// Command token issues a bearer token for a company, for local use and scripts.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/infrastructure/database"
	"github.com/sangkips/ledger-api/internal/infrastructure/repository"
	"github.com/sangkips/ledger-api/pkg/utils"
	"github.com/spf13/pflag"
)

func main() {
	cfg := config.Load()
	config.ConfigureLogger(&cfg.Log)
	logger := config.GetLogger()

	slug := pflag.String("company", utils.Slugify(cfg.Seed.CompanySlug), "slug of the company the token is bound to")
	userFlag := pflag.String("user", "", "user id to put in the token (random when empty)")
	email := pflag.String("email", "", "email claim")
	ttl := pflag.Duration("ttl", cfg.JWT.ExpiryHours, "token lifetime")
	pflag.Parse()

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			logger.WithError(err).Fatal("Invalid --user")
		}
		userID = parsed
	}

	db, err := database.NewPostgresDB(&cfg.Database, false)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	company, err := repository.NewCompanyRepository(db).GetBySlug(ctx, *slug)
	if err != nil {
		logger.WithError(err).Fatal("Failed to look up company")
	}
	if company == nil {
		logger.WithField("slug", *slug).Fatal("Company not found")
	}

	token, err := utils.NewJWTManager(cfg.JWT.Secret, *ttl).GenerateAccessToken(userID, company.ID, *email)
	if err != nil {
		logger.WithError(err).Fatal("Failed to sign token")
	}

	fmt.Fprintln(os.Stdout, token)
}
