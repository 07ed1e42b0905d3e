package farm

import (
	"fmt"
	"math"

	"github.com/gauss2302/agrogame/internal/domain"
)

// Conversion is the split of a virtual harvest total into real products
type Conversion struct {
	Ready         int
	Progress      int
	PercentToNext int
}

// Convert splits total virtual harvests into whole real products and the
// progress toward the next one
func Convert(total, ratio int) (Conversion, error) {
	if ratio <= 0 {
		return Conversion{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidConversionRatio)
	}
	if total < 0 {
		total = 0
	}
	progress := total % ratio
	return Conversion{
		Ready:         total / ratio,
		Progress:      progress,
		PercentToNext: int(math.Round(float64(progress) * 100 / float64(ratio))),
	}, nil
}

// Unlocked reports whether the harvest that produced this total completed a
// real product
func (c Conversion) Unlocked() bool {
	return c.Progress == 0 && c.Ready > 0
}
