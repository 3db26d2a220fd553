package main

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lungeable/crunch-backend/internal/config"
	"github.com/lungeable/crunch-backend/internal/entity"
	"github.com/lungeable/crunch-backend/internal/infra/database"
	"github.com/lungeable/crunch-backend/internal/infra/http/handlers"
	"github.com/lungeable/crunch-backend/internal/infra/http/middleware"
	"github.com/lungeable/crunch-backend/internal/infra/integration/analytics"
	"github.com/lungeable/crunch-backend/internal/infra/integration/formrelay"
	"github.com/lungeable/crunch-backend/internal/infra/mail"
	"github.com/lungeable/crunch-backend/internal/infra/queue"
	"github.com/lungeable/crunch-backend/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	// Every collaborator is feature-detected once here. A missing one
	// disables its channel; the submit flow copes with whatever is left.
	var leadRepo entity.LeadRepositoryInterface
	var prefRepo entity.PreferenceRepositoryInterface
	var eventRepo entity.EventRepositoryInterface
	var sessionRepo usecase.SessionStoreInterface

	db := connectDB(cfg)
	if db != nil {
		defer db.Close()
		leadRepo = database.NewLeadRepository(db)
		prefRepo = database.NewPreferenceRepository(db)
		eventRepo = database.NewEventRepository(db)
		sessionRepo = database.NewSessionRepository(db)
	}

	var producer usecase.QueueProducerInterface
	var amqpConn *amqp.Connection
	rabbitMQ := connectQueue(cfg)
	if rabbitMQ != nil {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		amqpConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		if cfg.MailHost != "" {
			mailSender := mail.NewEmailSender(
				cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass,
				cfg.MailFrom, cfg.MailTo,
			)
			worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
			go worker.Start(queue.QueueName)
		} else {
			log.Println("⚠️ MAIL_HOST not set, lead alerts disabled")
		}
	}

	var relay usecase.FormRelayInterface
	if cfg.RelayEndpoint != "" {
		relay = formrelay.NewClient(cfg.RelayEndpoint)
	} else {
		log.Println("⚠️ RELAY_ENDPOINT not set, form relay channel disabled")
	}

	var tracker usecase.AnalyticsInterface
	if cfg.AnalyticsEndpoint != "" {
		tracker = analytics.NewClient(cfg.AnalyticsEndpoint, cfg.AnalyticsToken)
	}

	// Use cases
	submitUC := usecase.NewSubmitLeadUseCase(leadRepo, eventRepo, relay, tracker, producer, cfg.Site)
	prefUC := usecase.NewCapturePreferencesUseCase(prefRepo)
	awardUC := usecase.NewAwardEngagementUseCase(sessionRepo, eventRepo, entity.DefaultCounterConfig())

	// Handlers
	leadHandler := handlers.NewLeadHandler(submitUC)
	prefHandler := handlers.NewPreferenceHandler(prefUC)
	engagementHandler := handlers.NewEngagementHandler(awardUC)
	coachHandler := handlers.NewCoachHandler(awardUC)
	healthHandler := handlers.NewHealthHandler(db, amqpConn, cfg.RelayEndpoint)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/leads", leadHandler.Handle)
	r.Post("/api/preferences", prefHandler.Handle)
	r.Post("/api/engagement/{session}/award", engagementHandler.HandleAward)
	r.Get("/api/engagement/{session}", engagementHandler.HandleState)
	r.Get("/api/coach/scenarios", coachHandler.HandleScenarios)
	r.Get("/api/coach/scenarios/{key}/replay", coachHandler.HandleReplay)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("🔥 Crunch lead API running on %s (site=%s)", addr, cfg.Site)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

func connectDB(cfg *config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		log.Println("⚠️ DATABASE_URL not set, record store channel disabled")
		return nil
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Printf("⚠️ Record store unreachable, continuing without it: %v", err)
		return nil
	}

	return db
}

func connectQueue(cfg *config.Config) *queue.RabbitMQ {
	if cfg.AMQPHost == "" {
		log.Println("⚠️ AMQP_HOST not set, lead notifications disabled")
		return nil
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPUser, cfg.AMQPPass, cfg.AMQPHost, cfg.AMQPPort)
	if err != nil {
		log.Printf("⚠️ RabbitMQ unreachable, continuing without notifications: %v", err)
		return nil
	}

	return rabbitMQ
}
