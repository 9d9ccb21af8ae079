package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"userhub/backend/internal/config"
	"userhub/backend/internal/httpserver"
	"userhub/backend/internal/infrastructure/postgres"
	"userhub/backend/internal/infrastructure/token"
	authusecase "userhub/backend/internal/usecase/auth"
	userusecase "userhub/backend/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	users := postgres.NewUserRepository(db.Pool)
	tokenManager := token.NewJWTManager(cfg.AppSecret, cfg.TokenTTL, cfg.TokenIssuer)

	authService := authusecase.NewService(users, tokenManager)
	userService := userusecase.NewService(users)

	server := httpserver.NewServer(cfg, authService, userService, tokenManager, db)
	log.Printf("HTTP server listening on %s", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server closed: %v", err)
				return
			}
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	} else {
		log.Printf("graceful shutdown completed")
	}
}
