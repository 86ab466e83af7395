package seed

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/importwise/landedcost/internal/pricing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the default rate tables in an idempotent way: each table is
// only populated where rows are missing, so operator edits survive restarts.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureFXRates(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureDutyRates(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureFreightTiers(tx, "air", pricing.DefaultFreightRates().AirTiers, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureFreightTiers(tx, "sea_lcl", pricing.DefaultFreightRates().LCLTiers, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureFeeConfig(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureFXRates(tx *sql.Tx, stats *Stats) error {
	defaults := pricing.DefaultFXRates()
	for _, code := range sortedKeys(defaults) {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM fx_rates WHERE code = ?)`, code).Scan(&exists); err != nil {
			return fmt.Errorf("check fx rate %s existence: %w", code, err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`INSERT INTO fx_rates (code, rate) VALUES (?, ?)`, code, defaults[code]); err != nil {
			return fmt.Errorf("insert fx rate %s: %w", code, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureDutyRates(tx *sql.Tx, stats *Stats) error {
	defaults := pricing.DefaultDutyRates()
	for _, origin := range sortedKeys(defaults) {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM duty_rates WHERE origin = ?)`, origin).Scan(&exists); err != nil {
			return fmt.Errorf("check duty rate %s existence: %w", origin, err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`INSERT INTO duty_rates (origin, pct) VALUES (?, ?)`, origin, defaults[origin]); err != nil {
			return fmt.Errorf("insert duty rate %s: %w", origin, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureFreightTiers(tx *sql.Tx, mode string, tiers pricing.TierTable, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM freight_tiers WHERE mode = ? LIMIT 1)`, mode).Scan(&exists); err != nil {
		return fmt.Errorf("check %s tier existence: %w", mode, err)
	}
	if exists {
		return nil
	}

	for _, tier := range tiers {
		upTo := sql.NullFloat64{Float64: tier.UpTo, Valid: !tier.Unbounded}
		if _, err := tx.Exec(`INSERT INTO freight_tiers (mode, up_to, rate) VALUES (?, ?, ?)`, mode, upTo, tier.Rate); err != nil {
			return fmt.Errorf("insert %s tier: %w", mode, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureFeeConfig(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM fee_config WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check fee config existence: %w", err)
	}
	if exists {
		return nil
	}

	defaults := pricing.DefaultConfig()
	rates := defaults.Rates

	if _, err := tx.Exec(`
		INSERT INTO fee_config (
			id,
			insurance_pct,
			brokerage_fee,
			port_fee,
			other_fees,
			origin_transport,
			vat_pct,
			vat_recoverable,
			ignore_duty,
			use_origin_table,
			manual_duty_pct,
			air_volumetric_factor,
			air_min_kg,
			air_fixed_fee,
			lcl_min_m3,
			lcl_fixed_fee,
			fcl20_price,
			fcl20_capacity_m3,
			fcl40_price,
			fcl40_capacity_m3,
			fcl_fixed_fee
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		defaults.InsurancePct,
		defaults.BrokerageFee,
		defaults.PortFee,
		defaults.OtherFees,
		defaults.OriginTransport,
		defaults.VAT.Pct,
		defaults.VAT.Recoverable,
		defaults.Duty.Ignore,
		defaults.Duty.UseOriginTable,
		defaults.Duty.ManualPct,
		rates.AirVolumetricFactor,
		rates.AirMinChargeableKg,
		rates.AirFixedFee,
		rates.LCLMinM3,
		rates.LCLFixedFee,
		rates.FCL20Price,
		rates.FCL20CapacityM3,
		rates.FCL40Price,
		rates.FCL40CapacityM3,
		rates.FCLFixedFee,
	); err != nil {
		return fmt.Errorf("insert fee config singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
