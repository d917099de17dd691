package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/picshare/picshare-go/internal/authz"
	"github.com/picshare/picshare-go/internal/config"
	"github.com/picshare/picshare-go/internal/handler"
	"github.com/picshare/picshare-go/internal/middleware"
	"github.com/picshare/picshare-go/internal/repository"
	"github.com/picshare/picshare-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)

	policy := authz.NewPolicy(cfg.AdminEmails)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	imageService := service.NewImageService(imageRepo, policy)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, imageService)
	imageHandler := handler.NewImageHandler(imageService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/register", authHandler.HandleRegister)
		r.Post("/api/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret, userRepo))

		r.Get("/api/users/profile", userHandler.HandleProfile)

		r.Get("/api/images", imageHandler.HandleList)
		r.Get("/api/images/{id}", imageHandler.HandleGet)
		r.Post("/api/images/upload", imageHandler.HandleUpload)
		r.Post("/api/images/{id}/like", imageHandler.HandleLike)
		r.Post("/api/images/{id}/comments", imageHandler.HandleComment)
		r.Delete("/api/images/{id}", imageHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
