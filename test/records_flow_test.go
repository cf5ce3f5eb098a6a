package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/benassi/liftlog/internal/records"
	"github.com/benassi/liftlog/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRecordsFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const userID = 7
	token := doLogin(ctx, t)

	// report body weight first, bodyweight movements depend on it
	weightReportJson, err := json.Marshal(map[string]any{
		"userId": userID,
		"kilos":  90,
	})
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(authedRequest(ctx, t, "POST", "/events/weight", token, weightReportJson))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	s.logWorkout(ctx, token, workouts.Workout{
		UserID: userID,
		Day:    day1,
		Exercises: []workouts.ExerciseEntry{
			{
				Name: "Bench Press",
				Sets: []workouts.SetEntry{
					{Weight: 80, Unit: workouts.UnitKilos, Reps: 5},
					{Weight: 100, Unit: workouts.UnitKilos, Reps: 1},
				},
			},
			{
				Name: "Pull Up",
				Sets: []workouts.SetEntry{
					{Reps: 10},
					{Reps: 8},
				},
			},
			{
				Name: "Running",
				Sets: []workouts.SetEntry{
					{Reps: 1, DistanceMeters: 5000},
				},
			},
		},
	})

	s.logWorkout(ctx, token, workouts.Workout{
		UserID: userID,
		Day:    day2,
		Exercises: []workouts.ExerciseEntry{
			{
				Name: "Bench Press",
				Sets: []workouts.SetEntry{
					{Weight: 90, Unit: workouts.UnitKilos, Reps: 3},
				},
			},
			{
				Name: "Deadlift",
				Sets: []workouts.SetEntry{
					{Weight: 140, Unit: workouts.UnitKilos, Reps: 5},
				},
			},
		},
	})

	// cardio never produces a record
	recordsBefore := s.listRecords(ctx, token, userID)
	require.Len(t, recordsBefore, 3)
	assert.Equal(t, "bench press", recordsBefore[0].ExerciseKey)
	assert.Equal(t, "deadlift", recordsBefore[1].ExerciseKey)
	assert.Equal(t, "pull up", recordsBefore[2].ExerciseKey)

	benchPress := s.getRecord(ctx, token, userID, "Bench%20Press")
	assert.Equal(t, float64(100), benchPress.MaxWeight)
	assert.True(t, benchPress.MaxWeightIsTrueSingle)
	assert.Equal(t, 1, benchPress.MaxWeightReps)
	assert.Equal(t, float64(100), benchPress.Max1RM)
	assert.Equal(t, 5, benchPress.MaxReps)
	assert.Equal(t, float64(770), benchPress.TotalVolume)
	require.NotNil(t, benchPress.BestSingleSet)
	assert.Equal(t, float64(400), benchPress.BestSingleSet.Volume)
	require.NotNil(t, benchPress.BestNearMax)
	assert.Equal(t, 3, benchPress.BestNearMax.Reps)
	assert.InDelta(t, 0.81, benchPress.BestNearMax.Score, 0.0001)
	// newest day first
	require.Len(t, benchPress.DailyMax, 2)
	assert.Equal(t, day2, benchPress.DailyMax[0].Day.UTC())
	assert.Equal(t, day1, benchPress.DailyMax[1].Day.UTC())

	// added weight is zero for a pure bodyweight movement, the
	// reported body weight shows up in the effective load only
	pullUp := s.getRecord(ctx, token, userID, "pull%20up")
	assert.True(t, pullUp.IsBodyweight)
	assert.Equal(t, float64(0), pullUp.MaxWeight)
	assert.Equal(t, 10, pullUp.MaxReps)
	assert.Equal(t, 10, pullUp.MaxWeightReps)
	assert.Equal(t, float64(1620), pullUp.TotalVolume)
	require.NotNil(t, pullUp.BestSingleSet)
	assert.Equal(t, float64(90), pullUp.BestSingleSet.EffectiveLoad)

	// a full recompute must land on the same records
	resp, err = http.DefaultClient.Do(authedRequest(
		ctx, t, "POST", fmt.Sprintf("/users/%d/records/recompute", userID), token, nil,
	))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	recordsAfter := s.listRecords(ctx, token, userID)
	assert.Equal(t, normalizeRecords(recordsBefore), normalizeRecords(recordsAfter))
}

func (s *IntegrationTestSuite) TestWorkoutsMergeSameDay() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const userID = 3
	token := doLogin(ctx, t)
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	first := s.logWorkout(ctx, token, workouts.Workout{
		UserID: userID,
		Day:    day,
		Exercises: []workouts.ExerciseEntry{
			{
				Name: "Squat",
				Sets: []workouts.SetEntry{{Weight: 120, Unit: workouts.UnitKilos, Reps: 5}},
			},
		},
	})

	second := s.logWorkout(ctx, token, workouts.Workout{
		UserID: userID,
		Day:    day,
		Exercises: []workouts.ExerciseEntry{
			{
				Name: "Deadlift",
				Sets: []workouts.SetEntry{{Weight: 160, Unit: workouts.UnitKilos, Reps: 3}},
			},
		},
	})

	// same day folds into the existing workout
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Exercises, 2)
	assert.Equal(t, "Squat", second.Exercises[0].Name)
	assert.Equal(t, "Deadlift", second.Exercises[1].Name)

	// both exercises produced records
	userRecords := s.listRecords(ctx, token, userID)
	require.Len(t, userRecords, 2)
	assert.Equal(t, "deadlift", userRecords[0].ExerciseKey)
	assert.Equal(t, "squat", userRecords[1].ExerciseKey)
}

func (s *IntegrationTestSuite) logWorkout(ctx context.Context, token string, workout workouts.Workout) *workouts.Workout {
	t := s.T()
	t.Helper()

	workoutJson, err := json.Marshal(workout)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(authedRequest(ctx, t, "POST", "/workouts", token, workoutJson))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var saved workouts.Workout
	require.NoError(t, json.Unmarshal(respBytes, &saved))
	require.NotZero(t, saved.ID)
	return &saved
}

func (s *IntegrationTestSuite) listRecords(ctx context.Context, token string, userID int) []records.ExerciseRecord {
	t := s.T()
	t.Helper()

	resp, err := http.DefaultClient.Do(authedRequest(
		ctx, t, "GET", fmt.Sprintf("/users/%d/records", userID), token, nil,
	))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var listResp records.RecordsListResponse
	require.NoError(t, json.Unmarshal(respBytes, &listResp))
	require.Equal(t, listResp.Total, len(listResp.Records))
	return listResp.Records
}

func (s *IntegrationTestSuite) getRecord(ctx context.Context, token string, userID int, key string) *records.ExerciseRecord {
	t := s.T()
	t.Helper()

	resp, err := http.DefaultClient.Do(authedRequest(
		ctx, t, "GET", fmt.Sprintf("/users/%d/records/%s", userID, key), token, nil,
	))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var record records.ExerciseRecord
	require.NoError(t, json.Unmarshal(respBytes, &record))
	return &record
}

// normalizeRecords strips the fields a delete-and-rebuild recompute is
// allowed to change: row ids and timestamps
func normalizeRecords(recordList []records.ExerciseRecord) []records.ExerciseRecord {
	normalized := make([]records.ExerciseRecord, len(recordList))
	for i, r := range recordList {
		r.ID = 0
		r.CreatedAt = time.Time{}
		r.UpdatedAt = time.Time{}
		normalized[i] = r
	}
	return normalized
}
