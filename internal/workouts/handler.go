package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/benassi/liftlog/internal/telemetry/metrics"
	"github.com/benassi/liftlog/internal/telemetry/tracing"
	"github.com/benassi/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	Log(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	ListByUser(ctx context.Context, userID int) ([]Workout, error)
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id int) error
	RemoveExercise(ctx context.Context, workoutID, index int) (bool, error)
}

type WorkoutsListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type DeleteWorkoutResponse struct {
	DeletedID int `json:"deletedId"`
}

type RemoveExerciseResponse struct {
	WorkoutID      int  `json:"workoutId"`
	WorkoutDeleted bool `json:"workoutDeleted"`
}

type Handler struct {
	service workoutsService
	metrics *metrics.Manager
}

func NewHandler(service workoutsService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", handler.HandleLog).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/workouts/{id}/exercises/{index}", handler.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-exercise")
	r.HandleFunc("/users/{userId}/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.log")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Errorf("log workout, unmarshal json params: %s", err)
		http.Error(w, "log workout failed", http.StatusBadRequest)
		return
	}

	if workout.UserID <= 0 {
		http.Error(w, "error, user id missing", http.StatusBadRequest)
		return
	}
	if len(workout.Exercises) == 0 {
		http.Error(w, "error, workout has no exercises", http.StatusBadRequest)
		return
	}

	savedWorkout, err := handler.service.Log(ctx, workout)
	if err != nil {
		if errors.Is(err, ErrRecordUpdateFailed) {
			// the workout itself is persisted; records catch up on the
			// next successful update or a full recompute
			log.Errorf("workout logged, records stale: %s", err)
			http.Error(w, "workout saved, records not updated", http.StatusInternalServerError)
			return
		}
		log.Errorf("failed to log workout for user %d: %s", workout.UserID, err)
		http.Error(w, "error, failed to log workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsLogged.Inc()
	log.Debugf("workout logged: user %d, day %s: %d", savedWorkout.UserID, savedWorkout.Day.Format(time.DateOnly), savedWorkout.ID)

	savedWorkoutJson, err := json.Marshal(savedWorkout)
	if err != nil {
		log.Errorf("failed to marshal logged workout: %s", err)
		http.Error(w, "error, failed to log workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, savedWorkoutJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id, ok := intPathVar(w, r, "id")
	if !ok {
		return
	}

	workout, err := handler.service.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, ok := intPathVar(w, r, "userId")
	if !ok {
		return
	}

	workoutList, err := handler.service.ListByUser(ctx, userID)
	if err != nil {
		log.Errorf("list workouts for user %d: %s", userID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(WorkoutsListResponse{
		Workouts: workoutList,
		Total:    len(workoutList),
	})
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Errorf("update workout, unmarshal json params: %s", err)
		http.Error(w, "update workout failed", http.StatusBadRequest)
		return
	}

	if workout.ID <= 0 {
		http.Error(w, "error, workout id missing", http.StatusBadRequest)
		return
	}

	if err := handler.service.Update(ctx, &workout); err != nil {
		log.Errorf("failed to update workout %d: %s", workout.ID, err)
		http.Error(w, "error, failed to update workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout updated: %d", workout.ID)
	pkg.WriteJSONResponseOK(w, `{"updatedId":`+strconv.Itoa(workout.ID)+`}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id, ok := intPathVar(w, r, "id")
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete workout %d: %s", id, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.removeexercise")
	defer span.End()

	id, ok := intPathVar(w, r, "id")
	if !ok {
		return
	}
	index, ok := intPathVar(w, r, "index")
	if !ok {
		return
	}

	workoutDeleted, err := handler.service.RemoveExercise(ctx, id, index)
	if err != nil {
		log.Errorf("failed to remove exercise %d from workout %d: %s", index, id, err)
		http.Error(w, "exercise not removed", http.StatusInternalServerError)
		return
	}

	removeRespJson, err := json.Marshal(RemoveExerciseResponse{
		WorkoutID:      id,
		WorkoutDeleted: workoutDeleted,
	})
	if err != nil {
		log.Errorf("failed to marshal remove exercise response: %s", err)
		http.Error(w, "failed to marshal remove exercise response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(removeRespJson))
}

func intPathVar(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	vars := mux.Vars(r)
	valStr := vars[name]
	if valStr == "" {
		http.Error(w, "error, "+name+" empty", http.StatusBadRequest)
		return 0, false
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		http.Error(w, "error, "+name+" NaN", http.StatusBadRequest)
		return 0, false
	}
	return val, true
}
