package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/merchant-leads/internal/config"
	"github.com/xavierca1/merchant-leads/internal/infra/database"
	"github.com/xavierca1/merchant-leads/internal/infra/http/handlers"
	"github.com/xavierca1/merchant-leads/internal/infra/http/middleware"
	"github.com/xavierca1/merchant-leads/internal/infra/integration/tib"
	"github.com/xavierca1/merchant-leads/internal/infra/mail"
	"github.com/xavierca1/merchant-leads/internal/infra/queue"
	"github.com/xavierca1/merchant-leads/internal/infra/session"
	"github.com/xavierca1/merchant-leads/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	// 1. Postgres
	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// 2. Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	sessionStore := session.NewStore(redisClient, cfg.SessionTTL)

	// 3. RabbitMQ + mail (optional: missing config disables notifications)
	var producer usecase.QueueProducerInterface
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Printf("RabbitMQ unavailable, notifications disabled: %v", err)
		} else {
			defer rabbitMQ.Conn.Close()
			defer rabbitMQ.Ch.Close()
			producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

			if cfg.MailHost != "" {
				sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
				worker := queue.NewWorker(rabbitMQ.Ch, sender)
				go worker.Start(queue.QueueName)
			}
		}
	}

	// 4. Repositories and use cases
	leadRepo := database.NewLeadRepository(db)
	verifier := tib.NewClient(cfg.EnrichmentDelayMin, cfg.EnrichmentDelayMax, cfg.EnrichmentFailureRate)

	submitUC := usecase.NewSubmitLeadUseCase(sessionStore, leadRepo, producer)
	enrichUC := usecase.NewEnrichBusinessUseCase(sessionStore, verifier)

	// 5. Handlers
	sessionHandler := handlers.NewSessionHandler(sessionStore)
	leadHandler := handlers.NewLeadHandler(submitUC, leadRepo)
	enrichmentHandler := handlers.NewEnrichmentHandler(enrichUC)
	healthHandler := handlers.NewHealthHandler(db, sessionStore, config.Version)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	r.Post("/sessions", sessionHandler.HandleCreate)
	r.Get("/sessions/{id}", sessionHandler.HandleGet)
	r.Put("/sessions/{id}", sessionHandler.HandleUpdate)
	r.Delete("/sessions/{id}", sessionHandler.HandleDelete)

	r.Post("/enrichment", enrichmentHandler.Handle)

	r.Post("/leads", leadHandler.HandleCreate)
	r.Post("/leads/submit/{session_id}", leadHandler.HandleSubmitFromSession)
	r.Get("/leads", leadHandler.HandleList)
	r.Get("/leads/{id}", leadHandler.HandleGet)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("🔥 Merchant Leads API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
