package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benassi/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrRecordNotFound = errors.New("exercise record not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) FindOne(ctx context.Context, userID int, exerciseKey string) (_ *ExerciseRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.findone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.String("exercise.key", exerciseKey))

	rows, err := r.db.Query(ctx, `
		SELECT
			id, user_id, exercise_key, display_name,
			category, movement_type, is_bodyweight, display_unit,
			max_weight, max_weight_reps, max_weight_day, max_weight_workout_id, max_weight_true_single,
			max_1rm, max_reps, total_volume,
			best_single_set, best_near_max, daily_max,
			created_at, updated_at
		FROM exercise_record
		WHERE user_id = $1 AND exercise_key = $2
	`, userID, exerciseKey)
	if err != nil {
		return nil, err
	}

	recordList, err := r.rows2records(rows)
	if err != nil {
		return nil, err
	}
	if len(recordList) == 0 {
		return nil, ErrRecordNotFound
	}
	return &recordList[0], nil
}

func (r *Repo) Insert(ctx context.Context, record ExerciseRecord) (_ *ExerciseRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", record.UserID))
	span.SetAttributes(attribute.String("exercise.key", record.ExerciseKey))

	bestSingleSetJson, bestNearMaxJson, dailyMaxJson, err := marshalDerived(&record)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO exercise_record (
			user_id, exercise_key, display_name,
			category, movement_type, is_bodyweight, display_unit,
			max_weight, max_weight_reps, max_weight_day, max_weight_workout_id, max_weight_true_single,
			max_1rm, max_reps, total_volume,
			best_single_set, best_near_max, daily_max,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`,
		record.UserID, record.ExerciseKey, record.DisplayName,
		record.Category, record.MovementType, record.IsBodyweight, record.DisplayUnit,
		record.MaxWeight, record.MaxWeightReps, record.MaxWeightDay, record.MaxWeightWorkoutID, record.MaxWeightIsTrueSingle,
		record.Max1RM, record.MaxReps, record.TotalVolume,
		bestSingleSetJson, bestNearMaxJson, dailyMaxJson,
		record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repo) Update(ctx context.Context, record *ExerciseRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("record.id", record.ID))

	bestSingleSetJson, bestNearMaxJson, dailyMaxJson, err := marshalDerived(record)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE exercise_record
		SET
			display_name = $1,
			max_weight = $2, max_weight_reps = $3, max_weight_day = $4,
			max_weight_workout_id = $5, max_weight_true_single = $6,
			max_1rm = $7, max_reps = $8, total_volume = $9,
			best_single_set = $10, best_near_max = $11, daily_max = $12,
			updated_at = $13
		WHERE id = $14
	`,
		record.DisplayName,
		record.MaxWeight, record.MaxWeightReps, record.MaxWeightDay,
		record.MaxWeightWorkoutID, record.MaxWeightIsTrueSingle,
		record.Max1RM, record.MaxReps, record.TotalVolume,
		bestSingleSetJson, bestNearMaxJson, dailyMaxJson,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *Repo) DeleteAllForUser(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.deleteallforuser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	_, err = r.db.Exec(ctx, `DELETE FROM exercise_record WHERE user_id = $1`, userID)
	return err
}

func (r *Repo) ListByUser(ctx context.Context, userID int) (_ []ExerciseRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.listbyuser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT
			id, user_id, exercise_key, display_name,
			category, movement_type, is_bodyweight, display_unit,
			max_weight, max_weight_reps, max_weight_day, max_weight_workout_id, max_weight_true_single,
			max_1rm, max_reps, total_volume,
			best_single_set, best_near_max, daily_max,
			created_at, updated_at
		FROM exercise_record
		WHERE user_id = $1
		ORDER BY exercise_key ASC
	`, userID)
	if err != nil {
		return nil, err
	}

	return r.rows2records(rows)
}

func marshalDerived(record *ExerciseRecord) (bestSingleSet, bestNearMax, dailyMax []byte, err error) {
	if record.BestSingleSet != nil {
		if bestSingleSet, err = json.Marshal(record.BestSingleSet); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal best single set: %w", err)
		}
	}
	if record.BestNearMax != nil {
		if bestNearMax, err = json.Marshal(record.BestNearMax); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal best near max: %w", err)
		}
	}
	if dailyMax, err = json.Marshal(record.DailyMax); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal daily max: %w", err)
	}
	return bestSingleSet, bestNearMax, dailyMax, nil
}

func (r *Repo) rows2records(rows pgx.Rows) ([]ExerciseRecord, error) {
	defer rows.Close()

	var recordList []ExerciseRecord
	for rows.Next() {
		var record ExerciseRecord
		var bestSingleSetJson, bestNearMaxJson, dailyMaxJson []byte
		if err := rows.Scan(
			&record.ID, &record.UserID, &record.ExerciseKey, &record.DisplayName,
			&record.Category, &record.MovementType, &record.IsBodyweight, &record.DisplayUnit,
			&record.MaxWeight, &record.MaxWeightReps, &record.MaxWeightDay, &record.MaxWeightWorkoutID, &record.MaxWeightIsTrueSingle,
			&record.Max1RM, &record.MaxReps, &record.TotalVolume,
			&bestSingleSetJson, &bestNearMaxJson, &dailyMaxJson,
			&record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, err
		}

		// stored JSON gaps default to zero values instead of failing
		if len(bestSingleSetJson) > 0 {
			record.BestSingleSet = &BestSet{}
			if err := json.Unmarshal(bestSingleSetJson, record.BestSingleSet); err != nil {
				return nil, fmt.Errorf("unmarshal best single set: %w", err)
			}
		}
		if len(bestNearMaxJson) > 0 {
			record.BestNearMax = &NearMax{}
			if err := json.Unmarshal(bestNearMaxJson, record.BestNearMax); err != nil {
				return nil, fmt.Errorf("unmarshal best near max: %w", err)
			}
		}
		if len(dailyMaxJson) > 0 {
			if err := json.Unmarshal(dailyMaxJson, &record.DailyMax); err != nil {
				return nil, fmt.Errorf("unmarshal daily max: %w", err)
			}
		}

		recordList = append(recordList, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recordList, nil
}
