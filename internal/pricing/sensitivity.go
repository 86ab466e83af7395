package pricing

import "math"

const (
	sensitivityFloor   = 10
	sensitivitySamples = 41
	sensitivityMinTop  = 2000
)

// SensitivityPoint is one sample of the quantity → unit-cost curve.
type SensitivityPoint struct {
	Quantity int
	UnitCost float64
}

// SampleSensitivity re-runs the full pipeline at 41 evenly spaced
// quantities from 10 up to max(2000, 2× the configured quantity), producing
// the economies-of-scale curve. Each point uses the exact same formulas as
// ComputeLanded; only the quantity varies.
func SampleSensitivity(cfg Config) []SensitivityPoint {
	top := sensitivityMinTop
	if doubled := 2 * cfg.Product.Quantity; doubled > top {
		top = doubled
	}

	step := float64(top-sensitivityFloor) / float64(sensitivitySamples-1)

	points := make([]SensitivityPoint, 0, sensitivitySamples)
	for i := 0; i < sensitivitySamples; i++ {
		quantity := int(math.Round(sensitivityFloor + float64(i)*step))
		result := computeLandedAt(cfg, quantity)
		points = append(points, SensitivityPoint{Quantity: quantity, UnitCost: result.UnitLanded})
	}

	return points
}
