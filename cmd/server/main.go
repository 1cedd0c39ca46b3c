package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"wealthwise_gateway/internal/app/di"
	"wealthwise_gateway/internal/app/router"
	markethandler "wealthwise_gateway/internal/feature/market/transport/handler"
	portfolioadapters "wealthwise_gateway/internal/feature/portfolio/adapters"
	portfoliohandler "wealthwise_gateway/internal/feature/portfolio/transport/handler"
	portfoliousecase "wealthwise_gateway/internal/feature/portfolio/usecase"
	sessionadapters "wealthwise_gateway/internal/feature/session/adapters"
	sessionhandler "wealthwise_gateway/internal/feature/session/transport/handler"
	sessionusecase "wealthwise_gateway/internal/feature/session/usecase"
	infradb "wealthwise_gateway/internal/platform/db"
	infraredis "wealthwise_gateway/internal/platform/redis"
)

func main() {
	// Local development reads settings from .env; absence is fine.
	_ = godotenv.Load()

	// Snapshot database
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without quote cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Session lifecycle
	sessionPath := os.Getenv("SESSION_FILE")
	if sessionPath == "" {
		sessionPath = "session.json"
	}
	sessionStore := sessionadapters.NewSessionFile(sessionPath)
	sessions := sessionusecase.NewManager(sessionStore)
	defer sessions.Close()
	log.Printf("session restored: %s", sessions.Restore())

	// Backend client; the session manager supplies the bearer token
	backendClient := di.NewBackendClient(sessions)

	// Repository
	snapshotRepo := portfolioadapters.NewSnapshotRepository(db)
	di.SeedDemoHoldings(context.Background(), snapshotRepo)

	// Usecase
	quotesUC := di.NewQuoteUsecase(rdb, backendClient)
	store := portfoliousecase.NewStore()
	portfolioUC := portfoliousecase.NewPortfolioUsecase(store, backendClient, snapshotRepo, quotesUC)
	// Fresh prices move the derived metrics even when holdings are unchanged.
	quotesUC.Subscribe(portfolioUC.Recompute)
	authUC := sessionusecase.NewAuthUsecase(backendClient, sessions)

	// Handler
	sessionH := sessionhandler.NewSessionHandler(authUC, sessions)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC, quotesUC, quotesUC)
	marketH := markethandler.NewMarketHandler(quotesUC)

	r := router.NewRouter(sessionH, portfolioH, marketH, sessions)

	if os.Getenv("WEALTHWISE_API_URL") == "" {
		log.Println("[WARN] WEALTHWISE_API_URL is not set. Falling back to http://localhost:5005.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
