package utilization

import (
	"math"

	"github.com/alexanderramin/allot/internal/domain"
)

// Classify maps an aggregate allocation to its band. Each band includes its
// upper edge: 50 is light, 80 is moderate, 100 is heavy.
func Classify(aggregate float64) domain.UtilizationBand {
	switch {
	case math.IsNaN(aggregate) || aggregate <= 0:
		return domain.BandNone
	case aggregate <= 50:
		return domain.BandLight
	case aggregate <= 80:
		return domain.BandModerate
	case aggregate <= 100:
		return domain.BandHeavy
	default:
		return domain.BandOver
	}
}

// DisplayPercentage clamps an aggregate to [0, 100] for progress bars and
// similar rendering. Never feed the result back into classification.
func DisplayPercentage(aggregate float64) float64 {
	if math.IsNaN(aggregate) || aggregate < 0 {
		return 0
	}
	return math.Min(aggregate, 100)
}
