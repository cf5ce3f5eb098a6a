package records

import (
	"time"

	"github.com/benassi/liftlog/internal/catalog"
	"github.com/benassi/liftlog/internal/workouts"
)

// ExerciseClass is the classification of one exercise entry, resolved
// from the catalog with the entry's own override and hard defaults as
// fallbacks.
type ExerciseClass struct {
	CanonicalID  string
	Category     string
	Type         catalog.MovementType
	IsBodyweight bool
}

// normalizedSet is one performed set after weight normalization:
// Weight is the real lifted weight in kilos (lb converted, unilateral
// doubled), EffectiveLoad additionally carries the user's body weight
// for bodyweight movements.
type normalizedSet struct {
	Weight        float64
	EffectiveLoad float64
	Reps          int
	Volume        float64
}

func normalizeSet(set workouts.SetEntry, unilateral, bodyweight bool, bodyWeightKilos float64) normalizedSet {
	weight := set.Weight
	if set.Unit == workouts.UnitPounds {
		weight *= PoundsToKilos
	}
	if unilateral {
		weight *= 2
	}
	effectiveLoad := weight
	if bodyweight {
		effectiveLoad += bodyWeightKilos
	}
	return normalizedSet{
		Weight:        weight,
		EffectiveLoad: effectiveLoad,
		Reps:          set.Reps,
		Volume:        effectiveLoad * float64(set.Reps),
	}
}

// Contribution is what one workout's worth of sets for a single
// exercise key adds to a record. Built by BuildContribution, folded
// into the stored record by Merge; both are pure.
type Contribution struct {
	WorkoutID   int
	Day         time.Time
	DisplayName string
	Class       ExerciseClass
	DisplayUnit workouts.WeightUnit

	MaxWeight             float64
	MaxWeightReps         int
	MaxWeightIsTrueSingle bool
	Max1RM                float64
	MaxReps               int
	Volume                float64
	BestSingleSet         *BestSet
	DailyMax              *DailyMax

	// sets with reps >= 2, kept raw; regime scoring happens at merge
	// time against the post-merge maxima
	nearMaxCandidates []NearMax
}

// BuildContribution reduces one exercise entry's sets to the derived
// values that feed a record merge. Zero-rep sets are excluded from all
// maxima and from volume, but do not invalidate the rest of the entry.
func BuildContribution(entry workouts.ExerciseEntry, class ExerciseClass, workoutID int, day time.Time, bodyWeightKilos float64) *Contribution {
	c := &Contribution{
		WorkoutID:   workoutID,
		Day:         day,
		DisplayName: entry.Name,
		Class:       class,
		DisplayUnit: workouts.UnitKilos,
	}
	for _, set := range entry.Sets {
		if set.Unit.IsValid() {
			c.DisplayUnit = set.Unit
			break
		}
	}

	var singleSeen bool
	for _, rawSet := range entry.Sets {
		if rawSet.Reps <= 0 {
			continue
		}
		set := normalizeSet(rawSet, entry.Unilateral, class.IsBodyweight, bodyWeightKilos)

		// max weight: a true single always outranks multi-rep sets,
		// regardless of weight
		isSingle := set.Reps == 1 && set.Weight > 0
		switch {
		case isSingle && !singleSeen:
			singleSeen = true
			c.MaxWeight = set.Weight
			c.MaxWeightReps = 1
			c.MaxWeightIsTrueSingle = true
		case isSingle && set.Weight > c.MaxWeight:
			c.MaxWeight = set.Weight
			c.MaxWeightReps = 1
		case !singleSeen && set.Weight > c.MaxWeight:
			c.MaxWeight = set.Weight
			c.MaxWeightReps = set.Reps
		}

		if oneRM := EstimateOneRepMax(set.Weight, set.Reps); oneRM > c.Max1RM {
			c.Max1RM = oneRM
		}
		if set.Reps > c.MaxReps {
			c.MaxReps = set.Reps
		}
		c.Volume += set.Volume

		if c.BestSingleSet == nil || set.Volume > c.BestSingleSet.Volume {
			c.BestSingleSet = &BestSet{
				Day:           day,
				Weight:        set.Weight,
				EffectiveLoad: set.EffectiveLoad,
				Reps:          set.Reps,
				Volume:        set.Volume,
			}
		}

		if c.DailyMax == nil ||
			set.EffectiveLoad > c.DailyMax.EffectiveLoad ||
			(set.EffectiveLoad == c.DailyMax.EffectiveLoad && set.Reps > c.DailyMax.Reps) {
			c.DailyMax = &DailyMax{
				Day:           day,
				Weight:        set.Weight,
				EffectiveLoad: set.EffectiveLoad,
				Reps:          set.Reps,
			}
		}

		if set.Reps >= 2 {
			c.nearMaxCandidates = append(c.nearMaxCandidates, NearMax{
				Day:           day,
				Weight:        set.Weight,
				EffectiveLoad: set.EffectiveLoad,
				Reps:          set.Reps,
			})
		}
	}

	return c
}

// Merge folds a contribution into the previous record state and returns
// the updated record. A nil existing record means this is the first
// qualifying set for the exercise key; catalog metadata is frozen then.
// Maxima only ever grow, cumulative fields are added to.
func Merge(existing *ExerciseRecord, key string, userID int, c *Contribution, now time.Time) *ExerciseRecord {
	var updated ExerciseRecord
	if existing == nil {
		updated = ExerciseRecord{
			UserID:       userID,
			ExerciseKey:  key,
			DisplayName:  c.DisplayName,
			Category:     c.Class.Category,
			MovementType: c.Class.Type,
			IsBodyweight: c.Class.IsBodyweight,
			DisplayUnit:  c.DisplayUnit,
			CreatedAt:    now,
		}
	} else {
		updated = *existing
		updated.DailyMax = append([]DailyMax(nil), existing.DailyMax...)
	}
	updated.UpdatedAt = now

	mergeMaxWeight(&updated, c)

	if c.Max1RM > updated.Max1RM {
		updated.Max1RM = c.Max1RM
	}
	if c.MaxReps > updated.MaxReps {
		updated.MaxReps = c.MaxReps
	}
	// for pure-bodyweight records the effective weight is constant
	// across reps, so the max-weight rep count follows the rep max
	if updated.pureBodyweight() && !updated.MaxWeightIsTrueSingle && updated.MaxReps > updated.MaxWeightReps {
		updated.MaxWeightReps = updated.MaxReps
	}

	updated.TotalVolume += c.Volume

	if c.BestSingleSet != nil &&
		(updated.BestSingleSet == nil || c.BestSingleSet.Volume > updated.BestSingleSet.Volume) {
		best := *c.BestSingleSet
		updated.BestSingleSet = &best
	}

	if c.DailyMax != nil {
		mergeDailyMax(&updated, *c.DailyMax)
	}

	mergeNearMax(&updated, c)

	return &updated
}

// mergeMaxWeight applies the max-weight policy across passes: a stored
// true single is never displaced by multi-rep sets, and the recorded max
// never decreases.
func mergeMaxWeight(r *ExerciseRecord, c *Contribution) {
	if c.MaxWeightReps == 0 {
		return
	}
	adopt := func() {
		r.MaxWeight = c.MaxWeight
		r.MaxWeightReps = c.MaxWeightReps
		r.MaxWeightDay = c.Day
		r.MaxWeightWorkoutID = c.WorkoutID
		r.MaxWeightIsTrueSingle = c.MaxWeightIsTrueSingle
	}
	switch {
	case r.MaxWeightIsTrueSingle:
		if c.MaxWeightIsTrueSingle && c.MaxWeight > r.MaxWeight {
			adopt()
		}
	case c.MaxWeightIsTrueSingle:
		if c.MaxWeight >= r.MaxWeight {
			adopt()
		}
	default:
		if c.MaxWeight > r.MaxWeight {
			adopt()
		}
	}
}

func mergeDailyMax(r *ExerciseRecord, dm DailyMax) {
	for i, existing := range r.DailyMax {
		if existing.Day.Equal(dm.Day) {
			if dm.EffectiveLoad > existing.EffectiveLoad ||
				(dm.EffectiveLoad == existing.EffectiveLoad && dm.Reps > existing.Reps) {
				r.DailyMax[i] = dm
			}
			return
		}
	}
	// newest first
	inserted := false
	for i, existing := range r.DailyMax {
		if dm.Day.After(existing.Day) {
			r.DailyMax = append(r.DailyMax[:i], append([]DailyMax{dm}, r.DailyMax[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		r.DailyMax = append(r.DailyMax, dm)
	}
}

// mergeNearMax re-scores the retained best near-max together with the
// contribution's candidates against the record's post-merge maxima, so
// incremental updates converge with a full recompute even when a new
// workout raises the relevant maximum.
func mergeNearMax(r *ExerciseRecord, c *Contribution) {
	candidates := c.nearMaxCandidates
	if r.BestNearMax != nil {
		candidates = append([]NearMax{*r.BestNearMax}, candidates...)
	}

	var best *NearMax
	for i := range candidates {
		candidate := candidates[i]
		score, ok := scoreNearMax(r, candidate)
		if !ok {
			continue
		}
		candidate.Score = score
		if best == nil || score > best.Score || (score == best.Score && nearMaxTieBreak(r, candidate, *best)) {
			chosen := candidate
			best = &chosen
		}
	}
	r.BestNearMax = best
}

// scoreNearMax scores one candidate set under the record's current
// regime. Pure-bodyweight records score by rep ratio against the rep
// max; anything with added weight scores by effective load against the
// max weight, discounted for higher-rep sets.
func scoreNearMax(r *ExerciseRecord, candidate NearMax) (float64, bool) {
	if r.pureBodyweight() {
		if candidate.Reps < 2 || candidate.Reps > r.MaxReps || r.MaxReps == 0 {
			return 0, false
		}
		ratio := float64(candidate.Reps) / float64(r.MaxReps)
		return ratio * ratio, true
	}

	if candidate.Reps < 2 || candidate.Reps > 10 || r.MaxWeight <= 0 {
		return 0, false
	}
	ratio := candidate.EffectiveLoad / r.MaxWeight
	repFactor := 1.0
	switch {
	case candidate.Reps >= 9:
		repFactor = 0.8
	case candidate.Reps >= 7:
		repFactor = 0.9
	}
	return ratio * ratio * repFactor, true
}

func nearMaxTieBreak(r *ExerciseRecord, candidate, current NearMax) bool {
	if r.pureBodyweight() {
		return candidate.Reps > current.Reps
	}
	return candidate.EffectiveLoad > current.EffectiveLoad
}
