package records

import (
	"time"

	"github.com/benassi/liftlog/internal/catalog"
	"github.com/benassi/liftlog/internal/workouts"
)

const (
	// PoundsToKilos converts pound-denominated set weights to the
	// canonical kilogram representation.
	PoundsToKilos = 0.453592

	// DefaultBodyWeightKilos is used for bodyweight-movement effective
	// load when the user never reported a body weight.
	DefaultBodyWeightKilos = 80.0
)

// DailyMax is the best set of one calendar day: highest effective load,
// reps as tiebreak.
type DailyMax struct {
	Day           time.Time `json:"day"`
	Weight        float64   `json:"weight"`
	EffectiveLoad float64   `json:"effectiveLoad"`
	Reps          int       `json:"reps"`
}

// BestSet is the set with the highest volume (effective load x reps)
// seen so far.
type BestSet struct {
	Day           time.Time `json:"day"`
	Weight        float64   `json:"weight"`
	EffectiveLoad float64   `json:"effectiveLoad"`
	Reps          int       `json:"reps"`
	Volume        float64   `json:"volume"`
}

// NearMax is the most impressive set below the max (see the scoring in
// contribution.go). Score is relative to the maxima current at the last
// aggregation, and is re-derived whenever those maxima move.
type NearMax struct {
	Day           time.Time `json:"day"`
	Weight        float64   `json:"weight"`
	EffectiveLoad float64   `json:"effectiveLoad"`
	Reps          int       `json:"reps"`
	Score         float64   `json:"score"`
}

// ExerciseRecord holds the personal records for one user x exercise
// key. The exercise key is the trimmed, lower-cased exact name: distinct
// phrasings and equipment variants intentionally keep separate records.
//
// MaxWeight is the largest actually lifted weight (real, never an Epley
// estimate); Max1RM tracks the estimate separately. MaxWeight, Max1RM,
// MaxReps and TotalVolume never decrease across the record's lifetime.
type ExerciseRecord struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	ExerciseKey string `json:"exerciseKey"`
	DisplayName string `json:"displayName"`

	// catalog metadata frozen at first write
	Category     string               `json:"category"`
	MovementType catalog.MovementType `json:"movementType"`
	IsBodyweight bool                 `json:"isBodyweight"`
	DisplayUnit  workouts.WeightUnit  `json:"displayUnit"`

	MaxWeight             float64   `json:"maxWeight"`
	MaxWeightReps         int       `json:"maxWeightReps"`
	MaxWeightDay          time.Time `json:"maxWeightDay"`
	MaxWeightWorkoutID    int       `json:"maxWeightWorkoutId"`
	MaxWeightIsTrueSingle bool      `json:"maxWeightIsTrueSingle"`

	Max1RM      float64 `json:"max1Rm"`
	MaxReps     int     `json:"maxReps"`
	TotalVolume float64 `json:"totalVolume"`

	BestSingleSet *BestSet `json:"bestSingleSet,omitempty"`
	BestNearMax   *NearMax `json:"bestNearMax,omitempty"`

	// one entry per calendar day, newest first
	DailyMax []DailyMax `json:"dailyMax"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// pureBodyweight reports whether the record is still in the
// pure-bodyweight regime: a bodyweight movement where no set ever
// carried added external weight. MaxWeight stores added weight only, so
// a zero max means none was ever seen.
func (r *ExerciseRecord) pureBodyweight() bool {
	return r.IsBodyweight && r.MaxWeight == 0
}
