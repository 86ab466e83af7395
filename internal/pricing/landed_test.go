package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

// testConfig returns the scenario used across the package tests: 100 units
// at 300 USD, shipped air cargo from China under FOB.
func testConfig() Config {
	return Config{
		ProductOrigin:  "CN",
		ShipmentOrigin: "CN",
		Mode:           ModeAirCargo,
		Incoterm:       IncotermFOB,
		Product: Product{
			UnitPrice:    300,
			Currency:     "USD",
			Quantity:     100,
			UnitWeightKg: 0.8,
			LengthCm:     17,
			WidthCm:      8,
			HeightCm:     5,
		},
		FX:              map[string]float64{"EUR": 1, "USD": 0.92},
		InsurancePct:    1,
		BrokerageFee:    120,
		PortFee:         95,
		OriginTransport: 150,
		Duty:            DutyPolicy{ManualPct: 4},
		VAT:             VATPolicy{Pct: 23},
		Rates: FreightRates{
			AirTiers: TierTable{
				{UpTo: 45, Rate: 6.5},
				{UpTo: 100, Rate: 5.8},
				{UpTo: 300, Rate: 5.0},
				{UpTo: 500, Rate: 4.6},
				{Unbounded: true, Rate: 4.2},
			},
			AirVolumetricFactor: 167,
			AirMinChargeableKg:  45,
			AirFixedFee:         35,
			LCLTiers: TierTable{
				{UpTo: 3, Rate: 55},
				{UpTo: 10, Rate: 48},
				{UpTo: 25, Rate: 42},
				{Unbounded: true, Rate: 38},
			},
			LCLMinM3:        1,
			LCLFixedFee:     90,
			FCL20Price:      2300,
			FCL20CapacityM3: 33.2,
			FCL40Price:      2900,
			FCL40CapacityM3: 67.7,
			FCLFixedFee:     250,
		},
	}
}

func TestComputeLanded_EndToEndAirCargoUSD(t *testing.T) {
	result := ComputeLanded(testConfig())

	// 300 USD × 100 × 0.92.
	nearlyEqual(t, "goodsValueEUR", result.GoodsValueEUR, 27600)

	// 80 kg actual beats volumetric (0.068 m³ × 167 = 11.356 kg) and the
	// 45 kg minimum, lands in the ≤100 kg tier.
	nearlyEqual(t, "chargeableKg", result.Freight.ChargeableKg, 80)
	nearlyEqual(t, "rate", result.Freight.Rate, 5.8)
	nearlyEqual(t, "freightCost", result.Freight.Cost, 80*5.8+35)

	nearlyEqual(t, "insurance", result.Taxes.Insurance, 280.99)
	nearlyEqual(t, "customsBase", result.Taxes.CustomsBase, 28529.99)
	nearlyEqual(t, "dutyAmount", result.Taxes.DutyAmount, 1141.1996)
	nearlyEqual(t, "vatBase", result.Taxes.VATBase, 29886.1896)
	nearlyEqual(t, "vatAmount", result.Taxes.VATAmount, 6873.823608)

	nearlyEqual(t, "landedExVAT", result.LandedExVAT, 29886.1896)
	nearlyEqual(t, "landedInclVAT", result.LandedInclVAT, 36760.013208)
	nearlyEqual(t, "unitLanded", result.UnitLanded, 367.60013208)
}

func TestComputeLanded_UnitCostIsTotalOverQuantity(t *testing.T) {
	for _, quantity := range []int{1, 7, 100, 999, 2000} {
		cfg := testConfig()
		cfg.Product.Quantity = quantity

		result := ComputeLanded(cfg)
		nearlyEqual(t, "unitLanded", result.UnitLanded, result.LandedInclVAT/float64(quantity))
	}
}

func TestComputeLanded_VATRecoverableToggle(t *testing.T) {
	recoverable := testConfig()
	recoverable.VAT.Recoverable = true
	nonRecoverable := testConfig()
	nonRecoverable.VAT.Recoverable = false

	withRecovery := ComputeLanded(recoverable)
	withoutRecovery := ComputeLanded(nonRecoverable)

	nearlyEqual(t, "recoverable landedInclVAT", withRecovery.LandedInclVAT, withRecovery.LandedExVAT)
	nearlyEqual(t, "non-recoverable landedInclVAT", withoutRecovery.LandedInclVAT, withoutRecovery.LandedExVAT+withoutRecovery.Taxes.VATAmount)
	nearlyEqual(t, "landedExVAT unchanged", withRecovery.LandedExVAT, withoutRecovery.LandedExVAT)
}

func TestComputeLanded_MissingCurrencyDefaultsToRateOne(t *testing.T) {
	cfg := testConfig()
	cfg.Product.Currency = "CHF" // not in the FX table

	result := ComputeLanded(cfg)

	nearlyEqual(t, "goodsValueEUR", result.GoodsValueEUR, 300*100)
}

func TestComputeLanded_ZeroQuantityClampedForUnitCost(t *testing.T) {
	cfg := testConfig()
	cfg.Product.Quantity = 0

	result := ComputeLanded(cfg)

	nearlyEqual(t, "unitLanded", result.UnitLanded, result.LandedInclVAT)
}

func TestComposition_OrderedAndOmitsZeroComponents(t *testing.T) {
	cfg := testConfig()
	cfg.OtherFees = 0
	cfg.Duty.Ignore = true

	result := ComputeLanded(cfg)

	expected := []string{"Mercadoria", "Transporte na origem", "Frete", "Seguro", "Despachante", "Taxas portuárias"}
	if len(result.Composition) != len(expected) {
		t.Fatalf("expected %d components, got %+v", len(expected), result.Composition)
	}
	for i, name := range expected {
		if result.Composition[i].Name != name {
			t.Fatalf("component %d = %q, want %q", i, result.Composition[i].Name, name)
		}
		if result.Composition[i].Amount == 0 {
			t.Fatalf("component %q has zero amount", name)
		}
	}
}
