package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/medinova/health-claims-api/internal/auth"
	"github.com/medinova/health-claims-api/internal/claims"
	"github.com/medinova/health-claims-api/internal/config"
	"github.com/medinova/health-claims-api/internal/database"
	"github.com/medinova/health-claims-api/internal/handler"
	"github.com/medinova/health-claims-api/internal/middleware"
	"github.com/medinova/health-claims-api/internal/queue"
	"github.com/medinova/health-claims-api/internal/repository"
	"github.com/medinova/health-claims-api/internal/router"
)

func main() {
	// Load a local .env if present; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories over the shared connection pool.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewVerificationTokenRepo(db)
	memberRepo := repository.NewMemberRepo(db)
	providerRepo := repository.NewProviderRepo(db)
	refRepo := repository.NewReferenceRepo(db)
	claimRepo := repository.NewClaimRepo(db)

	// Domain services.
	otp := auth.NewOTPEngine(tokenRepo)
	authn := auth.NewAuthenticator(userRepo, otp)
	ledger := claims.NewLedger(db, memberRepo, providerRepo, refRepo, claimRepo)

	// HTTP handlers.
	authHandler := handler.NewAuthHandler(cfg, authn, otp)
	claimsHandler := handler.NewClaimsHandler(ledger)
	usersHandler := handler.NewUsersHandler(cfg, userRepo, otp)

	// Redis-backed rate limiter for the auth endpoints.  When Redis is not
	// reachable the limiter degrades to a pass-through.
	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient()
	limiter := middleware.NewTokenBucket(rlCfg, rdb)

	// Background consumer that audits processed claims from the broker.
	go func() {
		if err := queue.StartClaimConsumer(); err != nil {
			log.Printf("claim consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, limiter)
	router.RegisterClaims(e, claimsHandler, cfg.JWTSecret)
	router.RegisterUsers(e, usersHandler, userRepo, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
