package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchcast/core/internal/config"
	"github.com/matchcast/core/pkg/apifootball"
	"github.com/matchcast/core/pkg/database"
	"github.com/matchcast/core/pkg/handlers/channels"
	"github.com/matchcast/core/pkg/handlers/health"
	"github.com/matchcast/core/pkg/handlers/matches"
	"github.com/matchcast/core/pkg/handlers/scheduler"
	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/middleware"
	"github.com/matchcast/core/pkg/services"
)

// Server represents the API server
type Server struct {
	router   *http.ServeMux
	port     string
	logger   *logger.Logger
	dbPool   *pgxpool.Pool
	handlers struct {
		health    *health.Handler
		scheduler *scheduler.Handler
		matches   *matches.Handler
		channels  *channels.Handler
	}
}

// New creates a new server instance
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Server.Port
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := testDatabaseConnection(dbPool, log); err != nil {
		dbPool.Close()
		return nil, err
	}

	store := database.NewStore(dbPool)

	// The manual trigger shares the sync pipeline with the cron binary and
	// with it the single-run guard.
	client := apifootball.NewClient(&apifootball.Config{
		APIKey:  cfg.External.APIKey,
		BaseURL: cfg.External.BaseURL,
		Timeout: time.Duration(cfg.External.Timeout) * time.Second,
	})
	syncService := services.NewSyncService(client, store, cfg.Sync.LeagueIDs)
	tracker := services.NewSchedulerTracker(syncService)
	tracker.SetSchedule(cfg.Sync.Enabled, cfg.Sync.Hour, cfg.Sync.Minute, cfg.Sync.Timezone)

	server := &Server{
		router: http.NewServeMux(),
		port:   port,
		logger: log,
		dbPool: dbPool,
	}

	server.handlers.health = health.NewHandler(log)
	server.handlers.scheduler = scheduler.NewHandler(syncService, tracker, store, log)
	server.handlers.matches = matches.NewHandler(store, log)
	server.handlers.channels = channels.NewHandler(store, log)

	server.setupRoutes()

	log.Info().
		Str("action", "db_connected").
		Msg("Database connection pool established")

	return server, nil
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", middleware.CORS(s.handlers.health.HealthCheck))

	// Simple root endpoint
	s.router.HandleFunc("/", middleware.CORS(func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintf(w, "Matchcast API Service - OK"); err != nil {
			http.Error(w, "Failed to write response", http.StatusInternalServerError)
		}
	}))

	// Scheduler endpoints
	s.router.HandleFunc("/api/scheduler/status", middleware.CORS(s.handlers.scheduler.Status))
	s.router.HandleFunc("/api/scheduler/sync", middleware.CORS(s.handlers.scheduler.Trigger))
	s.router.HandleFunc("/api/scheduler/runs", middleware.CORS(s.handlers.scheduler.Runs))

	// Directory endpoints
	s.router.HandleFunc("/api/matches", middleware.CORS(s.handlers.matches.ByDate))
	s.router.HandleFunc("/api/channels", middleware.CORS(s.handlers.channels.List))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().
		Str("action", "server_start").
		Str("port", s.port).
		Msg("Starting API server")

	if err := http.ListenAndServe(":"+s.port, s.router); err != nil {
		return fmt.Errorf("server failed to start on port %s: %w", s.port, err)
	}

	return nil
}

// Close gracefully shuts down the server and closes database connections
func (s *Server) Close() {
	if s.dbPool != nil {
		s.dbPool.Close()
		s.logger.Info().Msg("Database connection pool closed")
	}
}

// testDatabaseConnection tests the database connection with retry logic
func testDatabaseConnection(dbPool *pgxpool.Pool, log *logger.Logger) error {
	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := dbPool.Ping(ctx)
		cancel()

		if err == nil {
			return nil
		}

		if i == maxRetries-1 {
			return fmt.Errorf("failed to ping database after %d retries: %w", maxRetries, err)
		}

		log.Warn().
			Err(err).
			Int("attempt", i+1).
			Str("action", "db_ping_retry").
			Msg("Retrying database connection")
		time.Sleep(2 * time.Second)
	}

	return nil
}
