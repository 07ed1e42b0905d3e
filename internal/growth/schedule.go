package growth

import (
	"time"

	"github.com/gauss2302/agrogame/internal/domain"
)

// Transition is a stage change due after Delay, measured from the time it was computed
type Transition struct {
	Delay  time.Duration
	Target domain.Stage
}

type options struct {
	minStepDelay time.Duration
}

// Option tunes PendingTransitions
type Option func(*options)

// WithMinStepDelay spaces an overdue ready step behind the growing step it
// follows, when a planted crop is found past its full duration.
func WithMinStepDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.minStepDelay = d
		}
	}
}

// PendingTransitions computes the stage changes still owed to a plot at now.
// Growing always precedes ready in the result, so the intermediate stage is
// persisted even when both halves elapsed while nobody was watching.
func PendingTransitions(p domain.Plot, growDuration time.Duration, now time.Time, opts ...Option) []Transition {
	if p.PlantedAt == nil || growDuration <= 0 {
		return nil
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	elapsed := now.Sub(*p.PlantedAt)
	half := HalfDuration(growDuration)
	full := growDuration

	switch p.Stage {
	case domain.StagePlanted:
		if elapsed < half {
			return []Transition{
				{Delay: half - elapsed, Target: domain.StageGrowing},
				{Delay: full - elapsed, Target: domain.StageReady},
			}
		}
		readyDelay := full - elapsed
		if readyDelay <= 0 {
			readyDelay = o.minStepDelay
		}
		return []Transition{
			{Delay: 0, Target: domain.StageGrowing},
			{Delay: readyDelay, Target: domain.StageReady},
		}

	case domain.StageGrowing:
		remaining := full - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return []Transition{{Delay: remaining, Target: domain.StageReady}}

	default:
		return nil
	}
}
