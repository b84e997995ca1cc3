package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	adapthttp "pokedex/internal/adapter/http"
	"pokedex/internal/adapter/memory"
	"pokedex/internal/adapter/postgres"
	"pokedex/internal/app"
	"pokedex/internal/config"
	"pokedex/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var repo domain.UserRepository
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		repo = db
	} else {
		log.Print("DATABASE_URL not set, using in-memory store")
		repo = memory.New()
	}

	store := app.NewAccountStore(repo)
	authSvc := app.NewAuthService(store, []byte(cfg.JWTSecret), cfg.JWTExpire)
	userSvc := app.NewUserService(store)

	var oidcCfg *adapthttp.OIDCConfig
	if cfg.SSOEnabled() {
		oidcCfg, err = adapthttp.NewOIDCConfig(context.Background(),
			cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
		if err != nil {
			log.Fatalf("oidc: %v", err)
		}
	}

	h := adapthttp.New(authSvc, userSvc, cfg.Development(), oidcCfg).Handler()
	log.Printf("listening on %s (%s mode)", cfg.Addr, cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
