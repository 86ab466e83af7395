package pricing

import "testing"

func TestSampleSensitivity_BoundsCountAndOrder(t *testing.T) {
	points := SampleSensitivity(testConfig())

	if len(points) != 41 {
		t.Fatalf("expected 41 points, got %d", len(points))
	}
	if points[0].Quantity != 10 {
		t.Fatalf("first quantity = %d, want 10", points[0].Quantity)
	}
	if points[len(points)-1].Quantity != 2000 {
		t.Fatalf("last quantity = %d, want 2000", points[len(points)-1].Quantity)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Quantity <= points[i-1].Quantity {
			t.Fatalf("quantities not strictly ascending at %d: %d then %d", i, points[i-1].Quantity, points[i].Quantity)
		}
	}
}

func TestSampleSensitivity_TopTracksLargeConfiguredQuantity(t *testing.T) {
	cfg := testConfig()
	cfg.Product.Quantity = 1500

	points := SampleSensitivity(cfg)

	if got := points[len(points)-1].Quantity; got != 3000 {
		t.Fatalf("last quantity = %d, want 3000", got)
	}
}

func TestSampleSensitivity_MatchesSingleQuantityPipeline(t *testing.T) {
	cfg := testConfig()

	for _, p := range SampleSensitivity(cfg) {
		at := cfg
		at.Product.Quantity = p.Quantity
		nearlyEqual(t, "unit cost", p.UnitCost, ComputeLanded(at).UnitLanded)
	}
}

func TestSampleSensitivity_UnitCostFallsWithScale(t *testing.T) {
	points := SampleSensitivity(testConfig())

	first := points[0].UnitCost
	last := points[len(points)-1].UnitCost
	if last >= first {
		t.Fatalf("expected economies of scale: unit cost at q=10 (%v) should exceed q=2000 (%v)", first, last)
	}
}
