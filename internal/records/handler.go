package records

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/benassi/liftlog/internal/catalog"
	"github.com/benassi/liftlog/internal/telemetry/tracing"
	"github.com/benassi/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=records_test

type recordsProvider interface {
	ListByUser(ctx context.Context, userID int) ([]ExerciseRecord, error)
	FindOne(ctx context.Context, userID int, exerciseKey string) (*ExerciseRecord, error)
}

type recomputeRunner interface {
	Recompute(ctx context.Context, userID int) error
}

type RecordsListResponse struct {
	Records []ExerciseRecord `json:"records"`
	Total   int              `json:"total"`
}

type RecomputeResponse struct {
	UserID int `json:"userId"`
}

type Handler struct {
	provider   recordsProvider
	recomputer recomputeRunner
}

func NewHandler(provider recordsProvider, recomputer recomputeRunner) *Handler {
	return &Handler{
		provider:   provider,
		recomputer: recomputer,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/{userId}/records", h.HandleList).Methods("GET", "OPTIONS").Name("list-records")
	r.HandleFunc("/users/{userId}/records/recompute", h.HandleRecompute).Methods("POST", "OPTIONS").Name("recompute-records")
	r.HandleFunc("/users/{userId}/records/{key}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-record")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.list")
	defer span.End()

	userID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "error, user id NaN", http.StatusBadRequest)
		return
	}

	recordList, err := h.provider.ListByUser(ctx, userID)
	if err != nil {
		log.Errorf("list records for user %d: %s", userID, err)
		http.Error(w, "failed to get records", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(RecordsListResponse{
		Records: recordList,
		Total:   len(recordList),
	})
	if err != nil {
		log.Errorf("marshal records error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.get")
	defer span.End()

	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["userId"])
	if err != nil {
		http.Error(w, "error, user id NaN", http.StatusBadRequest)
		return
	}
	key := catalog.Normalize(vars["key"])
	if key == "" {
		http.Error(w, "error, exercise key empty", http.StatusBadRequest)
		return
	}

	record, err := h.provider.FindOne(ctx, userID, key)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		log.Errorf("get record %q for user %d: %s", key, userID, err)
		http.Error(w, "failed to get record", http.StatusInternalServerError)
		return
	}

	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("marshal record error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordJson, http.StatusOK)
}

func (h *Handler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.recompute")
	defer span.End()

	userID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "error, user id NaN", http.StatusBadRequest)
		return
	}

	if err := h.recomputer.Recompute(ctx, userID); err != nil {
		log.Errorf("recompute records for user %d: %s", userID, err)
		http.Error(w, "recompute failed", http.StatusInternalServerError)
		return
	}
	log.Debugf("records recomputed for user %d", userID)

	recomputeRespJson, err := json.Marshal(RecomputeResponse{UserID: userID})
	if err != nil {
		log.Errorf("marshal recompute response error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(recomputeRespJson))
}
