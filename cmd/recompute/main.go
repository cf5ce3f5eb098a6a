package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benassi/liftlog/internal/catalog"
	"github.com/benassi/liftlog/internal/config"
	"github.com/benassi/liftlog/internal/db"
	"github.com/benassi/liftlog/internal/events"
	"github.com/benassi/liftlog/internal/logging"
	"github.com/benassi/liftlog/internal/records"
	"github.com/benassi/liftlog/internal/telemetry/metrics"
	"github.com/benassi/liftlog/internal/workouts"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// recompute rebuilds exercise records from the full workout history,
// for one user or for every user with logged workouts. Meant to be run
// manually after data fixes or record policy changes.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	userID := flag.Int("user", 0, "user id to recompute records for (0 = all users)")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		receivedSig := <-chOsInterrupt
		log.Warnf("signal [%s] received, aborting ...", receivedSig)
		cancel()
	}()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: cfg.PostgresHost,
		DBPort: cfg.PostgresPort,
		DBName: cfg.PostgresDBName,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	exerciseCatalog, err := catalog.NewCatalog(ctx, catalog.NewRepo(dbPool))
	if err != nil {
		log.Fatalf("load exercise catalog: %s", err)
	}

	workoutsRepo := workouts.NewRepo(dbPool)
	aggregator := records.NewAggregator(
		records.NewRepo(dbPool),
		exerciseCatalog,
		workoutsRepo,
		events.NewService(events.NewRepo(dbPool)),
		cfg.DefaultBodyWeightKilos,
		metrics.NewManager("liftlog", "recompute", prometheus.NewRegistry()),
	)

	userIDs := []int{*userID}
	if *userID == 0 {
		userIDs, err = workoutsRepo.ListUserIDs(ctx)
		if err != nil {
			log.Fatalf("list user ids: %s", err)
		}
		log.Infof("recomputing records for all %d users", len(userIDs))
	}

	failed := 0
	for _, id := range userIDs {
		if ctx.Err() != nil {
			dbPool.Close()
			log.Fatalln("recompute aborted")
		}
		if err := aggregator.Recompute(ctx, id); err != nil {
			log.Errorf("recompute records for user %d: %s", id, err)
			failed++
			continue
		}
		log.Infof("records recomputed for user %d", id)
	}

	if failed > 0 {
		dbPool.Close()
		log.Fatalf("done, %d of %d users failed", failed, len(userIDs))
	}

	fmt.Println("done")
}
