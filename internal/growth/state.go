package growth

import (
	"fmt"
	"time"

	"github.com/gauss2302/agrogame/internal/domain"
)

// CheckPlotInvariant verifies (crop == nil) <=> (stage == empty) <=> (plantedAt == nil)
func CheckPlotInvariant(p domain.Plot) error {
	if !p.Stage.Valid() {
		return fmt.Errorf("%w: plot %d has stage %q", domain.ErrPlotInvariant, p.ID, p.Stage)
	}

	empty := p.Stage == domain.StageEmpty
	if (p.Crop == nil) != empty || (p.PlantedAt == nil) != empty {
		return fmt.Errorf("%w: plot %d (stage=%s, crop set=%t, planted_at set=%t)",
			domain.ErrPlotInvariant, p.ID, p.Stage, p.Crop != nil, p.PlantedAt != nil)
	}
	return nil
}

// HalfDuration is the time a crop spends in planted before it starts growing
func HalfDuration(growDuration time.Duration) time.Duration {
	return growDuration / 2
}

// DueAt returns when a plot planted at plantedAt reaches target.
// Only time-driven targets have a due time.
func DueAt(plantedAt time.Time, growDuration time.Duration, target domain.Stage) (time.Time, error) {
	switch target {
	case domain.StageGrowing:
		return plantedAt.Add(HalfDuration(growDuration)), nil
	case domain.StageReady:
		return plantedAt.Add(growDuration), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q is not reached by growth", domain.ErrInvalidStage, target)
	}
}

// CheckDue returns ErrStageNotDue when target must not be reached yet at now
func CheckDue(p domain.Plot, growDuration time.Duration, target domain.Stage, now time.Time) error {
	if p.PlantedAt == nil {
		return domain.ErrPlotEmpty
	}

	due, err := DueAt(*p.PlantedAt, growDuration, target)
	if err != nil {
		return err
	}
	if now.Before(due) {
		return fmt.Errorf("%w: plot %d reaches %s in %s", domain.ErrStageNotDue, p.ID, target, due.Sub(now))
	}
	return nil
}

// Reached reports whether the plot is already at or past target, or has
// been harvested back to empty. Either way a transition to target no longer applies.
func Reached(p domain.Plot, target domain.Stage) bool {
	return p.Stage == domain.StageEmpty || !p.Stage.Before(target)
}

// StageAt derives the stage a planted crop should be in at now
func StageAt(plantedAt time.Time, growDuration time.Duration, now time.Time) domain.Stage {
	elapsed := now.Sub(plantedAt)
	switch {
	case elapsed >= growDuration:
		return domain.StageReady
	case elapsed >= HalfDuration(growDuration):
		return domain.StageGrowing
	default:
		return domain.StagePlanted
	}
}
