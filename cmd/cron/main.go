package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/matchcast/core/internal/config"
	"github.com/matchcast/core/pkg/apifootball"
	"github.com/matchcast/core/pkg/database"
	"github.com/matchcast/core/pkg/database/pool"
	"github.com/matchcast/core/pkg/jobs"
	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/services"
)

func main() {
	var (
		jobName = flag.String("job", "", "Run specific job once (fixtures)")
		once    = flag.Bool("once", false, "Run job once and exit")
		migrate = flag.Bool("migrate", false, "Run schema migration before starting")
	)
	flag.Parse()

	logger.SetupLogger()
	log := logger.New("cron-service")

	cfg := config.Load()

	// Connect to database with the tuned pool
	dbPool, err := pool.New(context.Background(), cfg.DatabaseURL(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	store := database.NewStore(dbPool)
	if *migrate {
		if err := store.Migrate(context.Background()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Info().Msg("Schema migration completed")
	}

	// Initialize services
	client := apifootball.NewClient(&apifootball.Config{
		APIKey:  cfg.External.APIKey,
		BaseURL: cfg.External.BaseURL,
		Timeout: time.Duration(cfg.External.Timeout) * time.Second,
	})
	syncService := services.NewSyncService(client, store, cfg.Sync.LeagueIDs)
	tracker := services.NewSchedulerTracker(syncService)
	tracker.SetSchedule(cfg.Sync.Enabled, cfg.Sync.Hour, cfg.Sync.Minute, cfg.Sync.Timezone)

	// The cron runs in the schedule's timezone so the daily slot fires at
	// the configured local time.
	loc, err := time.LoadLocation(cfg.Sync.Timezone)
	if err != nil {
		log.Warn().
			Err(err).
			Str("timezone", cfg.Sync.Timezone).
			Msg("Falling back to UTC for job scheduling")
		loc = time.UTC
	}

	jobManager := jobs.NewJobManager(loc)

	fixturesJob := jobs.NewFixturesSyncJob(syncService, tracker, cfg.Sync.Hour, cfg.Sync.Minute)
	if err := jobManager.RegisterJob(fixturesJob); err != nil {
		log.Fatalf("Failed to register fixtures sync job: %v", err)
	}

	// Handle single job execution
	if *once && *jobName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		switch *jobName {
		case "fixtures":
			log.Info().Msg("Running fixtures sync job once...")
			if err := fixturesJob.Execute(ctx); err != nil {
				log.Fatalf("Failed to execute fixtures job: %v", err)
			}
			log.Info().Msg("Fixtures sync completed successfully")
		default:
			log.Fatalf("Unknown job: %s. Available jobs: fixtures", *jobName)
		}
		return
	}

	if !cfg.Sync.Enabled {
		log.Warn().Msg("Sync schedule disabled, cron service idle")
	} else {
		jobManager.Start()
		log.Info().
			Int("job_count", len(jobManager.GetJobs())).
			Msg("Cron job service started")
	}

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down cron job service...")
	jobManager.Stop()
	log.Info().Msg("Cron job service stopped")
}
