package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/benassi/liftlog/internal/catalog"
	"github.com/benassi/liftlog/internal/events"
	"github.com/benassi/liftlog/internal/telemetry/metrics"
	"github.com/benassi/liftlog/internal/telemetry/tracing"
	"github.com/benassi/liftlog/internal/workouts"
	"github.com/benassi/liftlog/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=records_test

type recordsStore interface {
	FindOne(ctx context.Context, userID int, exerciseKey string) (*ExerciseRecord, error)
	Insert(ctx context.Context, record ExerciseRecord) (*ExerciseRecord, error)
	Update(ctx context.Context, record *ExerciseRecord) error
	DeleteAllForUser(ctx context.Context, userID int) error
}

type exerciseCatalog interface {
	ResolveCanonicalID(ctx context.Context, freeText string) (string, error)
	Lookup(ctx context.Context, id string) (*catalog.Entry, error)
}

type workoutSource interface {
	ListByUser(ctx context.Context, userID int) ([]workouts.Workout, error)
}

type bodyWeightSource interface {
	LatestWeightKilos(ctx context.Context, userID int) (float64, error)
}

// Aggregator derives and maintains per-exercise personal records from
// logged workouts: incrementally on every new workout, and via a full
// delete-and-rebuild recompute for migrations/corrections.
//
// Updates for one user are serialized through a per-user mutex, so an
// incremental update cannot race a recompute's delete-then-rebuild
// window within this process.
type Aggregator struct {
	store                  recordsStore
	catalog                exerciseCatalog
	workouts               workoutSource
	bodyWeights            bodyWeightSource
	defaultBodyWeightKilos float64
	metrics                *metrics.Manager

	userLocksMux sync.Mutex
	userLocks    map[int]*sync.Mutex
}

func NewAggregator(
	store recordsStore,
	exCatalog exerciseCatalog,
	workoutSrc workoutSource,
	bodyWeights bodyWeightSource,
	defaultBodyWeightKilos float64,
	metricsManager *metrics.Manager,
) *Aggregator {
	if defaultBodyWeightKilos <= 0 {
		defaultBodyWeightKilos = DefaultBodyWeightKilos
	}
	return &Aggregator{
		store:                  store,
		catalog:                exCatalog,
		workouts:               workoutSrc,
		bodyWeights:            bodyWeights,
		defaultBodyWeightKilos: defaultBodyWeightKilos,
		metrics:                metricsManager,
		userLocks:              map[int]*sync.Mutex{},
	}
}

func (a *Aggregator) lockUser(userID int) *sync.Mutex {
	a.userLocksMux.Lock()
	defer a.userLocksMux.Unlock()
	lock, ok := a.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		a.userLocks[userID] = lock
	}
	return lock
}

// ProcessWorkout incrementally folds one workout into the user's
// records: per touched exercise key, load the existing record, build
// the workout's contribution, merge, upsert. Failing exercise entries
// do not stop the remaining ones; all failures are collected and
// returned so the caller can retry or fall back to a recompute.
func (a *Aggregator) ProcessWorkout(ctx context.Context, workout *workouts.Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.aggregator.processworkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", workout.UserID))
	span.SetAttributes(attribute.Int("workout.id", workout.ID))

	startedAt := time.Now()
	defer func() {
		a.metrics.HistAggregationDuration.Observe(time.Since(startedAt).Seconds())
	}()

	lock := a.lockUser(workout.UserID)
	lock.Lock()
	defer lock.Unlock()

	bodyWeight := a.bodyWeightFor(ctx, workout.UserID)

	for _, entry := range workout.Exercises {
		if strings.TrimSpace(entry.Name) == "" {
			log.Warnf("workout %d: skipping exercise entry with empty name", workout.ID)
			continue
		}

		class := a.classify(ctx, entry)
		if class.Type != catalog.TypeStrength {
			continue
		}

		key := catalog.Normalize(entry.Name)
		contribution := BuildContribution(entry, class, workout.ID, workout.Day, bodyWeight)
		if contribution.DailyMax == nil {
			// no countable sets
			continue
		}

		if upsertErr := a.upsert(ctx, workout.UserID, key, contribution); upsertErr != nil {
			a.metrics.CounterRecordWriteFailure.Inc()
			log.Errorf(
				"workout %d: record update for user %d, exercise %q: %s",
				workout.ID, workout.UserID, key, upsertErr,
			)
			err = multierr.Append(err, fmt.Errorf("exercise %q: %w", key, upsertErr))
			continue
		}
		a.metrics.CounterRecordsUpdated.Inc()
	}

	return err
}

func (a *Aggregator) upsert(ctx context.Context, userID int, key string, c *Contribution) error {
	existing, err := a.store.FindOne(ctx, userID, key)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("find record: %w", err)
	}

	merged := Merge(existing, key, userID, c, time.Now())
	if existing == nil {
		_, insertErr := a.store.Insert(ctx, *merged)
		if insertErr == nil {
			return nil
		}
		if !pkg.IsUniqueViolationError(insertErr) {
			return fmt.Errorf("insert record: %w", insertErr)
		}
		// another writer created the row between FindOne and Insert,
		// merge into that row instead
		existing, err = a.store.FindOne(ctx, userID, key)
		if err != nil {
			return fmt.Errorf("find record after insert conflict: %w", err)
		}
		merged = Merge(existing, key, userID, c, time.Now())
	}
	if err := a.store.Update(ctx, merged); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

// Recompute drops all of the user's records and rebuilds them from the
// full chronological workout history through the same reducer the
// incremental path uses, giving every field full visibility.
func (a *Aggregator) Recompute(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.aggregator.recompute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	a.metrics.CounterRecomputeRuns.Inc()
	startedAt := time.Now()
	defer func() {
		a.metrics.HistAggregationDuration.Observe(time.Since(startedAt).Seconds())
	}()

	lock := a.lockUser(userID)
	lock.Lock()
	defer lock.Unlock()

	workoutList, err := a.workouts.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list workouts: %w", err)
	}

	bodyWeight := a.bodyWeightFor(ctx, userID)

	rebuilt := map[string]*ExerciseRecord{}
	for i := range workoutList {
		workout := &workoutList[i]
		for _, entry := range workout.Exercises {
			if strings.TrimSpace(entry.Name) == "" {
				log.Warnf("workout %d: skipping exercise entry with empty name", workout.ID)
				continue
			}
			class := a.classify(ctx, entry)
			if class.Type != catalog.TypeStrength {
				continue
			}
			key := catalog.Normalize(entry.Name)
			contribution := BuildContribution(entry, class, workout.ID, workout.Day, bodyWeight)
			if contribution.DailyMax == nil {
				continue
			}
			rebuilt[key] = Merge(rebuilt[key], key, userID, contribution, time.Now())
		}
	}

	if err := a.store.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}

	keys := make([]string, 0, len(rebuilt))
	for key := range rebuilt {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, insertErr := a.store.Insert(ctx, *rebuilt[key]); insertErr != nil {
			a.metrics.CounterRecordWriteFailure.Inc()
			log.Errorf("recompute for user %d: insert record %q: %s", userID, key, insertErr)
			err = multierr.Append(err, fmt.Errorf("insert record %q: %w", key, insertErr))
			continue
		}
		a.metrics.CounterRecordsUpdated.Inc()
	}

	log.Debugf("recompute for user %d: %d workouts, %d records", userID, len(workoutList), len(rebuilt))
	return err
}

// classify resolves one exercise entry through the catalog, falling
// back to the entry's own type override, then to hard defaults.
func (a *Aggregator) classify(ctx context.Context, entry workouts.ExerciseEntry) ExerciseClass {
	id, err := a.catalog.ResolveCanonicalID(ctx, entry.Name)
	if err == nil {
		catalogEntry, lookupErr := a.catalog.Lookup(ctx, id)
		if lookupErr == nil {
			return ExerciseClass{
				CanonicalID:  id,
				Category:     catalogEntry.Category,
				Type:         catalogEntry.Type,
				IsBodyweight: catalogEntry.IsBodyweight,
			}
		}
		log.Warnf("catalog lookup for resolved id %q: %s", id, lookupErr)
	}

	class := ExerciseClass{
		Category: "other",
		Type:     catalog.TypeStrength,
	}
	if override := catalog.MovementType(entry.TypeOverride); override.IsValid() {
		class.Type = override
	}
	return class
}

func (a *Aggregator) bodyWeightFor(ctx context.Context, userID int) float64 {
	if a.bodyWeights == nil {
		return a.defaultBodyWeightKilos
	}
	kilos, err := a.bodyWeights.LatestWeightKilos(ctx, userID)
	if err != nil {
		if !errors.Is(err, events.ErrNoWeightReport) {
			log.Warnf("latest body weight for user %d: %s", userID, err)
		}
		return a.defaultBodyWeightKilos
	}
	if kilos <= 0 {
		return a.defaultBodyWeightKilos
	}
	return kilos
}
