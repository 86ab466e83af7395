package pricing

import (
	"fmt"
	"math"
)

// Freight is the output of the freight calculation for one mode and
// quantity. Cost is in EUR; Basis is a display-only description of how the
// cost was derived. The remaining fields expose the underlying quantities
// for diagnostics.
type Freight struct {
	Cost  float64
	Basis string

	ChargeableKg float64
	ChargeableM3 float64
	Rate         float64
	Containers   int
	Utilization  float64
}

// ComputeFreight returns the freight cost for shipping the given quantity
// under the configured mode. An unknown mode yields zero cost and an empty
// basis; Config.Validate rejects unknown modes up front, so that branch is a
// defensive default only.
func ComputeFreight(cfg Config, quantity int) Freight {
	switch cfg.Mode {
	case ModeAirExpress, ModeAirCargo:
		return airFreight(cfg, quantity)
	case ModeSeaLCL:
		return lclFreight(cfg, quantity)
	case ModeSeaFCL20:
		return fclFreight(cfg, quantity, "20'", cfg.Rates.FCL20Price, cfg.Rates.FCL20CapacityM3)
	case ModeSeaFCL40:
		return fclFreight(cfg, quantity, "40'", cfg.Rates.FCL40Price, cfg.Rates.FCL40CapacityM3)
	default:
		return Freight{}
	}
}

func airFreight(cfg Config, quantity int) Freight {
	volumetricKg := cfg.totalVolumeM3(quantity) * cfg.Rates.AirVolumetricFactor
	chargeable := math.Max(cfg.totalWeightKg(quantity), volumetricKg)
	chargeable = math.Max(chargeable, cfg.Rates.AirMinChargeableKg)

	rate := cfg.Rates.AirTiers.RateFor(chargeable)
	cost := chargeable*rate + cfg.Rates.AirFixedFee

	return Freight{
		Cost:         cost,
		Basis:        fmt.Sprintf("%.1f kg taxável × %.2f €/kg + %.2f € de taxas fixas", chargeable, rate, cfg.Rates.AirFixedFee),
		ChargeableKg: chargeable,
		Rate:         rate,
	}
}

func lclFreight(cfg Config, quantity int) Freight {
	chargeable := math.Max(cfg.totalVolumeM3(quantity), cfg.Rates.LCLMinM3)

	rate := cfg.Rates.LCLTiers.RateFor(chargeable)
	cost := chargeable*rate + cfg.Rates.LCLFixedFee

	return Freight{
		Cost:         cost,
		Basis:        fmt.Sprintf("%.2f m³ taxável × %.2f €/m³ + %.2f € de taxas fixas", chargeable, rate, cfg.Rates.LCLFixedFee),
		ChargeableM3: chargeable,
		Rate:         rate,
	}
}

func fclFreight(cfg Config, quantity int, size string, price, capacityM3 float64) Freight {
	volume := cfg.totalVolumeM3(quantity)

	containers := 1
	if capacityM3 > 0 {
		containers = int(math.Ceil(volume / capacityM3))
		if containers < 1 {
			containers = 1
		}
	}

	cost := float64(containers)*price + cfg.Rates.FCLFixedFee

	utilization := 0.0
	if capacityM3 > 0 {
		utilization = volume / (float64(containers) * capacityM3)
	}

	return Freight{
		Cost:         cost,
		Basis:        fmt.Sprintf("%d contentor(es) %s × %.2f € + %.2f € de taxas fixas (ocupação %.0f%%)", containers, size, price, cfg.Rates.FCLFixedFee, utilization*100),
		ChargeableM3: volume,
		Containers:   containers,
		Utilization:  utilization,
	}
}
