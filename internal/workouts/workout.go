package workouts

import (
	"strings"
	"time"
)

type WeightUnit string

const (
	UnitKilos  WeightUnit = "kg"
	UnitPounds WeightUnit = "lb"
)

func (u WeightUnit) IsValid() bool {
	switch u {
	case UnitKilos, UnitPounds:
		return true
	default:
		return false
	}
}

// SetEntry is one performed set. Strength sets carry weight and reps,
// distance-based movements carry meters instead.
type SetEntry struct {
	Weight         float64    `json:"weight"`
	Unit           WeightUnit `json:"unit,omitempty"`
	Reps           int        `json:"reps"`
	DistanceMeters float64    `json:"distanceMeters,omitempty"`
}

// ExerciseEntry is one exercise within a workout, with its sets in the
// order they were performed. Name is free text, not yet canonicalized.
type ExerciseEntry struct {
	Name         string     `json:"name"`
	Unilateral   bool       `json:"unilateral,omitempty"`
	TypeOverride string     `json:"typeOverride,omitempty"`
	Sets         []SetEntry `json:"sets"`
}

// Workout is one logged session. Day is a calendar day with no implied
// timezone (stored date-only, kept at UTC midnight in memory).
type Workout struct {
	ID        int             `json:"id"`
	UserID    int             `json:"userId"`
	Day       time.Time       `json:"day"`
	CreatedAt time.Time       `json:"createdAt"`
	Exercises []ExerciseEntry `json:"exercises"`
	Notes     string          `json:"notes,omitempty"`
}

// DayOf truncates a timestamp to its calendar day in UTC
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MergeFrom appends another workout's exercises (same user, same day)
// into this one. Notes are concatenated when both are present.
func (w *Workout) MergeFrom(other *Workout) {
	w.Exercises = append(w.Exercises, other.Exercises...)
	switch {
	case w.Notes == "":
		w.Notes = other.Notes
	case other.Notes != "":
		w.Notes = strings.TrimRight(w.Notes, " ") + "\n" + other.Notes
	}
}

// RemoveExercise drops the exercise at the given index, returning whether
// the workout is now empty (and should be deleted altogether)
func (w *Workout) RemoveExercise(index int) (empty bool, ok bool) {
	if index < 0 || index >= len(w.Exercises) {
		return false, false
	}
	w.Exercises = append(w.Exercises[:index], w.Exercises[index+1:]...)
	return len(w.Exercises) == 0, true
}
