package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"Formbase/internal/airtable"
	"Formbase/internal/api/handlers/auth"
	"Formbase/internal/api/middleware"
	"Formbase/internal/api/routes"
	"Formbase/internal/config"
	"Formbase/internal/core/forms"
	"Formbase/internal/core/responses"
	"Formbase/internal/db/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}

	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	// Session cookies are signed with this secret; startup fails on a weak one
	if err := auth.InitCookieStore(cfg.CookieSecret); err != nil {
		log.Fatal("Failed to initialize cookie store:", err)
	}

	platform := airtable.NewClient(airtable.ClientArgs{
		ClientID:     cfg.AirtableClientID,
		ClientSecret: cfg.AirtableClientSecret,
		TokenURL:     cfg.AirtableTokenURL,
		APIURL:       cfg.AirtableAPIURL,
	})

	// Repositories and services
	accountRepo := postgres.NewAccountRepository(db)
	formRepo := postgres.NewFormRepository(db)
	responseRepo := postgres.NewResponseRepository(db)

	formService := forms.NewService(formRepo)
	responseService := responses.NewService(responseRepo, formRepo, accountRepo, platform)

	sessionAuth := middleware.NewSessionAuthMiddleware(auth.GetCookieStore(), accountRepo, auth.SessionName)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// The frontend runs on its own origin and sends the session cookie
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limit per IP; the auth and submit surfaces add stricter ones
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	routes.RegisterAuthRoutes(r, cfg, platform, accountRepo)
	routes.RegisterFormRoutes(r, formService, platform, sessionAuth)
	routes.RegisterResponseRoutes(r, responseService, sessionAuth, cfg.RateLimitPerMinute)
	routes.RegisterWebhookRoutes(r, responseService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("Formbase API starting on port %s\n", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
