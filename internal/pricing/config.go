package pricing

import "fmt"

// ShippingMode identifies how the goods travel from the shipment origin.
type ShippingMode string

const (
	ModeAirExpress ShippingMode = "air_express"
	ModeAirCargo   ShippingMode = "air_cargo"
	ModeSeaLCL     ShippingMode = "sea_lcl"
	ModeSeaFCL20   ShippingMode = "sea_fcl_20"
	ModeSeaFCL40   ShippingMode = "sea_fcl_40"
)

// Incoterm selects the customs valuation base: under CIF the supplier price
// already embeds freight and insurance; under EXW/FOB they are added on top.
type Incoterm string

const (
	IncotermEXW Incoterm = "EXW"
	IncotermFOB Incoterm = "FOB"
	IncotermCIF Incoterm = "CIF"
)

// OriginOther is the fallback key in origin-keyed duty tables.
const OriginOther = "OTHER"

// Tier is a threshold-rate pair. The terminal tier of a table carries
// Unbounded instead of a numeric threshold.
type Tier struct {
	UpTo      float64
	Unbounded bool
	Rate      float64
}

// TierTable is an ordered sequence of tiers with strictly increasing
// thresholds and an unbounded terminal tier.
type TierTable []Tier

// RateFor returns the rate of the first tier whose threshold is at or above
// v. Values beyond every finite threshold fall to the last tier's rate, as
// does any lookup against an empty table (rate 0).
func (t TierTable) RateFor(v float64) float64 {
	for _, tier := range t {
		if tier.Unbounded || v <= tier.UpTo {
			return tier.Rate
		}
	}
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Rate
}

// Product holds the supplier terms for the goods being imported.
type Product struct {
	UnitPrice    float64
	Currency     string
	Quantity     int
	UnitWeightKg float64
	LengthCm     float64
	WidthCm      float64
	HeightCm     float64
}

// FreightRates holds the carrier rate cards for every shipping mode.
type FreightRates struct {
	AirTiers            TierTable // EUR per chargeable kg
	AirVolumetricFactor float64   // kg per m³
	AirMinChargeableKg  float64
	AirFixedFee         float64

	LCLTiers    TierTable // EUR per chargeable m³
	LCLMinM3    float64
	LCLFixedFee float64

	FCL20Price      float64
	FCL20CapacityM3 float64
	FCL40Price      float64
	FCL40CapacityM3 float64
	FCLFixedFee     float64
}

// DutyPolicy controls how the effective duty percentage is resolved.
type DutyPolicy struct {
	Ignore         bool
	UseOriginTable bool
	ManualPct      float64
	OriginPct      map[string]float64
}

// VATPolicy holds the import VAT percentage and whether the importer can
// later reclaim it (recoverable VAT is excluded from the landed total).
type VATPolicy struct {
	Pct         float64
	Recoverable bool
}

// Config is the immutable input record of one landed-cost computation.
// Every result is a pure function of a Config snapshot.
type Config struct {
	ProductOrigin  string
	ShipmentOrigin string
	Mode           ShippingMode
	Incoterm       Incoterm
	Product        Product

	// FX maps currency code to its EUR conversion rate (EUR = 1).
	FX map[string]float64

	InsurancePct    float64 // applied to goods + freight
	BrokerageFee    float64
	PortFee         float64
	OtherFees       float64
	OriginTransport float64

	Duty  DutyPolicy
	VAT   VATPolicy
	Rates FreightRates
}

// Validate rejects malformed configurations before any computation runs.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeAirExpress, ModeAirCargo, ModeSeaLCL, ModeSeaFCL20, ModeSeaFCL40:
	default:
		return fmt.Errorf("unknown shipping mode %q", c.Mode)
	}

	switch c.Incoterm {
	case IncotermEXW, IncotermFOB, IncotermCIF:
	default:
		return fmt.Errorf("unknown incoterm %q", c.Incoterm)
	}

	if c.Product.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", c.Product.Quantity)
	}
	if c.Product.UnitPrice < 0 {
		return fmt.Errorf("unit price must not be negative")
	}
	if c.Product.UnitWeightKg < 0 || c.Product.LengthCm < 0 || c.Product.WidthCm < 0 || c.Product.HeightCm < 0 {
		return fmt.Errorf("weight and dimensions must not be negative")
	}

	for code, rate := range c.FX {
		if rate <= 0 {
			return fmt.Errorf("exchange rate for %s must be positive, got %g", code, rate)
		}
	}

	if err := validateTiers("air", c.Rates.AirTiers); err != nil {
		return err
	}
	if err := validateTiers("sea_lcl", c.Rates.LCLTiers); err != nil {
		return err
	}

	return nil
}

func validateTiers(name string, tiers TierTable) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%s tier table is empty", name)
	}

	prev := 0.0
	for i, tier := range tiers {
		last := i == len(tiers)-1
		if tier.Unbounded != last {
			return fmt.Errorf("%s tier table must end in exactly one unbounded tier", name)
		}
		if last {
			continue
		}
		if i > 0 && tier.UpTo <= prev {
			return fmt.Errorf("%s tier thresholds must be strictly increasing", name)
		}
		prev = tier.UpTo
	}

	return nil
}

// fxRate resolves a currency code against the FX table. A missing code is
// treated as rate 1 (no conversion) rather than an error.
func (c Config) fxRate(code string) float64 {
	if rate, ok := c.FX[code]; ok {
		return rate
	}
	return 1
}

// unitVolumeM3 converts the unit dimensions from cm to m³.
func (c Config) unitVolumeM3() float64 {
	return (c.Product.LengthCm / 100) * (c.Product.WidthCm / 100) * (c.Product.HeightCm / 100)
}

func (c Config) totalVolumeM3(quantity int) float64 {
	return c.unitVolumeM3() * float64(quantity)
}

func (c Config) totalWeightKg(quantity int) float64 {
	return c.Product.UnitWeightKg * float64(quantity)
}
