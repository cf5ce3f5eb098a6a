package events

import (
	"strconv"
	"time"
)

type TrainingStart struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

type TrainingFinish struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	Calories  int       `json:"calories"`
}

type WeightReport struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	Kilos     float64   `json:"kilos"`
}

// Event (DB level type) covers the out-of-workout signals the mobile
// app sends:
//   - training started (with timestamp)
//   - training finished (with timestamp, calories burned, etc.)
//   - weight report (with timestamp and body weight in kilos)
//
// Weight reports double as the body weight source for record
// aggregation of bodyweight movements.
type Event struct {
	ID        int               `json:"id"`
	UserID    int               `json:"userId"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

func NewTrainingStartEvent(ts TrainingStart) Event {
	return Event{
		ID:        ts.ID,
		UserID:    ts.UserID,
		Type:      EventTypeTrainingStarted,
		Timestamp: ts.Timestamp,
		Data:      map[string]string{},
	}
}

func NewTrainingFinishEvent(tf TrainingFinish) Event {
	return Event{
		ID:        tf.ID,
		UserID:    tf.UserID,
		Type:      EventTypeTrainingFinished,
		Timestamp: tf.Timestamp,
		Data: map[string]string{
			"calories": strconv.Itoa(tf.Calories),
		},
	}
}

func NewWeightReportEvent(wr WeightReport) Event {
	return Event{
		ID:        wr.ID,
		UserID:    wr.UserID,
		Type:      EventTypeWeightReport,
		Timestamp: wr.Timestamp,
		Data: map[string]string{
			"kilos": strconv.FormatFloat(wr.Kilos, 'f', -1, 64),
		},
	}
}

// EventType can be one of:
//   - training_started
//   - training_finished
//   - weight_report
type EventType string

const (
	EventTypeTrainingStarted  EventType = "training_started"
	EventTypeTrainingFinished EventType = "training_finished"
	EventTypeWeightReport     EventType = "weight_report"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeTrainingStarted,
		EventTypeTrainingFinished,
		EventTypeWeightReport:
		return true
	default:
		return false
	}
}
