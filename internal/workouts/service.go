package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benassi/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

// ErrRecordUpdateFailed marks workouts that were persisted, but whose
// personal-record aggregation failed. Callers can retry the aggregation
// (or run a full recompute) without re-submitting the workout.
var ErrRecordUpdateFailed = errors.New("workout saved, record update failed")

type workoutsRepo interface {
	Insert(ctx context.Context, workout Workout) (*Workout, error)
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*Workout, error)
	GetByUserAndDay(ctx context.Context, userID int, day time.Time) (*Workout, error)
	ListByUser(ctx context.Context, userID int) ([]Workout, error)
}

type recordAggregator interface {
	ProcessWorkout(ctx context.Context, workout *Workout) error
}

type Service struct {
	repo       workoutsRepo
	aggregator recordAggregator
}

func NewService(repo workoutsRepo, aggregator recordAggregator) *Service {
	return &Service{
		repo:       repo,
		aggregator: aggregator,
	}
}

// Log stores a submitted workout and feeds it to the record aggregator.
// When the user already has a workout on the same calendar day, the new
// exercises are merged into it instead of creating a second entry; only
// the newly submitted exercises are aggregated in that case.
func (s *Service) Log(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", workout.UserID))

	if len(workout.Exercises) == 0 {
		return nil, errors.New("workout has no exercises")
	}

	if workout.Day.IsZero() {
		workout.Day = DayOf(time.Now())
	} else {
		workout.Day = DayOf(workout.Day)
	}
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now()
	}

	newExercises := workout.Exercises

	saved, err := s.repo.GetByUserAndDay(ctx, workout.UserID, workout.Day)
	switch {
	case err == nil:
		saved.MergeFrom(&workout)
		if err := s.repo.Update(ctx, saved); err != nil {
			return nil, fmt.Errorf("merge workout into day %s: %w", workout.Day.Format(time.DateOnly), err)
		}
		log.Debugf("workout %d: merged %d new exercises for user %d", saved.ID, len(newExercises), workout.UserID)
	case errors.Is(err, ErrWorkoutNotFound):
		saved, err = s.repo.Insert(ctx, workout)
		if err != nil {
			return nil, fmt.Errorf("insert workout: %w", err)
		}
		log.Debugf("workout %d: logged for user %d", saved.ID, workout.UserID)
	default:
		return nil, fmt.Errorf("get workout by day: %w", err)
	}

	// aggregate only the newly submitted exercises, attributed to the
	// persisted workout
	contribution := &Workout{
		ID:        saved.ID,
		UserID:    saved.UserID,
		Day:       saved.Day,
		CreatedAt: saved.CreatedAt,
		Exercises: newExercises,
	}
	if err := s.aggregator.ProcessWorkout(ctx, contribution); err != nil {
		log.Errorf("workout %d: record aggregation: %s", saved.ID, err)
		return saved, fmt.Errorf("%w: %s", ErrRecordUpdateFailed, err)
	}

	return saved, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Workout, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]Workout, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces a workout's exercises/notes/day after a manual edit.
// Records are not re-derived here; a recompute puts them back in sync.
func (s *Service) Update(ctx context.Context, workout *Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workout.Day = DayOf(workout.Day)
	return s.repo.Update(ctx, workout)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// RemoveExercise deletes one exercise entry from a workout; removing the
// last exercise deletes the whole workout entry.
func (s *Service) RemoveExercise(ctx context.Context, workoutID, index int) (deletedWorkout bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.removeexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", workoutID))
	span.SetAttributes(attribute.Int("exercise.index", index))

	workout, err := s.repo.Get(ctx, workoutID)
	if err != nil {
		return false, err
	}

	empty, ok := workout.RemoveExercise(index)
	if !ok {
		return false, fmt.Errorf("workout %d has no exercise at index %d", workoutID, index)
	}

	if empty {
		if err := s.repo.Delete(ctx, workoutID); err != nil {
			return false, fmt.Errorf("delete emptied workout: %w", err)
		}
		return true, nil
	}

	if err := s.repo.Update(ctx, workout); err != nil {
		return false, fmt.Errorf("update workout: %w", err)
	}
	return false, nil
}
