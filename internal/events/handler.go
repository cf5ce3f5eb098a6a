package events

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/benassi/liftlog/internal/telemetry/tracing"
	"github.com/benassi/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=events_test

type eventsService interface {
	AddTrainingStart(ctx context.Context, ts TrainingStart) (int, error)
	AddTrainingFinish(ctx context.Context, tf TrainingFinish) (int, error)
	AddWeightReport(ctx context.Context, wr WeightReport) (int, error)
	List(ctx context.Context, params ListParams) ([]*Event, error)
}

type Handler struct {
	service eventsService
}

func NewHandler(service eventsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/events/training/start", h.HandleAddTrainingStart).Methods("POST", "OPTIONS").Name("new-training-start")
	r.HandleFunc("/events/training/finish", h.HandleAddTrainingFinish).Methods("POST", "OPTIONS").Name("new-training-finish")
	r.HandleFunc("/events/weight", h.HandleAddWeightReport).Methods("POST", "OPTIONS").Name("new-weight-report")
	r.HandleFunc("/users/{userId}/events", h.HandleList).Methods("GET", "OPTIONS").Name("list-events")
}

func (h *Handler) HandleAddTrainingStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.new.trainingstart")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var trainingStart TrainingStart
	if err := json.NewDecoder(r.Body).Decode(&trainingStart); err != nil {
		log.Errorf("new training start, unmarshal json params: %s", err)
		http.Error(w, "add training start failed", http.StatusBadRequest)
		return
	}
	if trainingStart.UserID <= 0 {
		http.Error(w, "error, user id missing", http.StatusBadRequest)
		return
	}
	if trainingStart.Timestamp.IsZero() {
		trainingStart.Timestamp = time.Now()
	}

	id, err := h.service.AddTrainingStart(ctx, trainingStart)
	if err != nil {
		log.Errorf("new training start: %s", err)
		http.Error(w, "add training start failed", http.StatusInternalServerError)
		return
	}
	trainingStart.ID = id

	trainingStartJson, err := json.Marshal(trainingStart)
	if err != nil {
		log.Errorf("failed to marshal new training start: %s", err)
		http.Error(w, "error, failed to add new training start", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, trainingStartJson, http.StatusCreated)
}

func (h *Handler) HandleAddTrainingFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.new.trainingfinish")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var trainingFinish TrainingFinish
	if err := json.NewDecoder(r.Body).Decode(&trainingFinish); err != nil {
		log.Errorf("new training finish, unmarshal json params: %s", err)
		http.Error(w, "add training finish failed", http.StatusBadRequest)
		return
	}
	if trainingFinish.UserID <= 0 {
		http.Error(w, "error, user id missing", http.StatusBadRequest)
		return
	}
	if trainingFinish.Timestamp.IsZero() {
		trainingFinish.Timestamp = time.Now()
	}

	id, err := h.service.AddTrainingFinish(ctx, trainingFinish)
	if err != nil {
		log.Errorf("new training finish: %s", err)
		http.Error(w, "add training finish failed", http.StatusInternalServerError)
		return
	}
	trainingFinish.ID = id

	trainingFinishJson, err := json.Marshal(trainingFinish)
	if err != nil {
		log.Errorf("failed to marshal new training finish: %s", err)
		http.Error(w, "error, failed to add new training finish", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, trainingFinishJson, http.StatusCreated)
}

func (h *Handler) HandleAddWeightReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.new.weightreport")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var weightReport WeightReport
	if err := json.NewDecoder(r.Body).Decode(&weightReport); err != nil {
		log.Errorf("new weight report, unmarshal json params: %s", err)
		http.Error(w, "add weight report failed", http.StatusBadRequest)
		return
	}
	if weightReport.UserID <= 0 {
		http.Error(w, "error, user id missing", http.StatusBadRequest)
		return
	}
	if weightReport.Kilos <= 0 {
		http.Error(w, "error, weight missing", http.StatusBadRequest)
		return
	}
	if weightReport.Timestamp.IsZero() {
		weightReport.Timestamp = time.Now()
	}

	id, err := h.service.AddWeightReport(ctx, weightReport)
	if err != nil {
		log.Errorf("new weight report: %s", err)
		http.Error(w, "add weight report failed", http.StatusInternalServerError)
		return
	}
	weightReport.ID = id

	weightReportJson, err := json.Marshal(weightReport)
	if err != nil {
		log.Errorf("failed to marshal new weight report: %s", err)
		http.Error(w, "error, failed to add new weight report", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, weightReportJson, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.list")
	defer span.End()

	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["userId"])
	if err != nil {
		http.Error(w, "error, user id NaN", http.StatusBadRequest)
		return
	}

	params := ListParams{
		EventParams: EventParams{UserID: userID},
		Page:        0,
		Size:        100,
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 0 {
			params.Page = page
		}
	}
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			params.Size = size
		}
	}
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		eventType := EventType(typeStr)
		if !eventType.IsValid() {
			http.Error(w, "error, invalid event type", http.StatusBadRequest)
			return
		}
		params.Type = &eventType
	}

	eventList, err := h.service.List(ctx, params)
	if err != nil {
		log.Errorf("list events for user %d: %s", userID, err)
		http.Error(w, "failed to get events", http.StatusInternalServerError)
		return
	}

	eventsJson, err := json.Marshal(eventList)
	if err != nil {
		log.Errorf("marshal events error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, eventsJson, http.StatusOK)
}
