package main

import (
	"database/sql"
	"fmt"

	"github.com/importwise/landedcost/internal/pricing"
)

type feeConfig struct {
	InsurancePct    float64
	BrokerageFee    float64
	PortFee         float64
	OtherFees       float64
	OriginTransport float64

	VATPct         float64
	VATRecoverable bool

	IgnoreDuty     bool
	UseOriginTable bool
	ManualDutyPct  float64

	AirVolumetricFactor float64
	AirMinKg            float64
	AirFixedFee         float64
	LCLMinM3            float64
	LCLFixedFee         float64
	FCL20Price          float64
	FCL20CapacityM3     float64
	FCL40Price          float64
	FCL40CapacityM3     float64
	FCLFixedFee         float64
}

type fxRate struct {
	Code string
	Rate float64
}

type freightTier struct {
	ID        int64
	Mode      string
	UpTo      sql.NullFloat64
	Rate      float64
	Unbounded bool
}

type dutyRate struct {
	Origin string
	Pct    float64
}

func (s *server) ensureFeeConfig() error {
	defaults := pricing.DefaultConfig()
	rates := defaults.Rates

	_, err := s.db.Exec(`
		INSERT INTO fee_config (
			id,
			insurance_pct, brokerage_fee, port_fee, other_fees, origin_transport,
			vat_pct, vat_recoverable,
			ignore_duty, use_origin_table, manual_duty_pct,
			air_volumetric_factor, air_min_kg, air_fixed_fee,
			lcl_min_m3, lcl_fixed_fee,
			fcl20_price, fcl20_capacity_m3, fcl40_price, fcl40_capacity_m3, fcl_fixed_fee
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		defaults.InsurancePct, defaults.BrokerageFee, defaults.PortFee, defaults.OtherFees, defaults.OriginTransport,
		defaults.VAT.Pct, defaults.VAT.Recoverable,
		defaults.Duty.Ignore, defaults.Duty.UseOriginTable, defaults.Duty.ManualPct,
		rates.AirVolumetricFactor, rates.AirMinChargeableKg, rates.AirFixedFee,
		rates.LCLMinM3, rates.LCLFixedFee,
		rates.FCL20Price, rates.FCL20CapacityM3, rates.FCL40Price, rates.FCL40CapacityM3, rates.FCLFixedFee,
	)
	if err != nil {
		return fmt.Errorf("insert default fee_config: %w", err)
	}
	return nil
}

func (s *server) getFeeConfig() (feeConfig, error) {
	if err := s.ensureFeeConfig(); err != nil {
		return feeConfig{}, err
	}

	var fc feeConfig
	err := s.db.QueryRow(`
		SELECT
			insurance_pct, brokerage_fee, port_fee, other_fees, origin_transport,
			vat_pct, vat_recoverable,
			ignore_duty, use_origin_table, manual_duty_pct,
			air_volumetric_factor, air_min_kg, air_fixed_fee,
			lcl_min_m3, lcl_fixed_fee,
			fcl20_price, fcl20_capacity_m3, fcl40_price, fcl40_capacity_m3, fcl_fixed_fee
		FROM fee_config
		WHERE id = 1
	`).Scan(
		&fc.InsurancePct, &fc.BrokerageFee, &fc.PortFee, &fc.OtherFees, &fc.OriginTransport,
		&fc.VATPct, &fc.VATRecoverable,
		&fc.IgnoreDuty, &fc.UseOriginTable, &fc.ManualDutyPct,
		&fc.AirVolumetricFactor, &fc.AirMinKg, &fc.AirFixedFee,
		&fc.LCLMinM3, &fc.LCLFixedFee,
		&fc.FCL20Price, &fc.FCL20CapacityM3, &fc.FCL40Price, &fc.FCL40CapacityM3, &fc.FCLFixedFee,
	)
	if err != nil {
		return feeConfig{}, fmt.Errorf("query fee_config: %w", err)
	}
	return fc, nil
}

func (s *server) updateFeeConfig(fc feeConfig) error {
	_, err := s.db.Exec(`
		UPDATE fee_config
		SET
			insurance_pct = ?,
			brokerage_fee = ?,
			port_fee = ?,
			other_fees = ?,
			origin_transport = ?,
			vat_pct = ?,
			vat_recoverable = ?,
			ignore_duty = ?,
			use_origin_table = ?,
			manual_duty_pct = ?,
			air_volumetric_factor = ?,
			air_min_kg = ?,
			air_fixed_fee = ?,
			lcl_min_m3 = ?,
			lcl_fixed_fee = ?,
			fcl20_price = ?,
			fcl20_capacity_m3 = ?,
			fcl40_price = ?,
			fcl40_capacity_m3 = ?,
			fcl_fixed_fee = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		fc.InsurancePct, fc.BrokerageFee, fc.PortFee, fc.OtherFees, fc.OriginTransport,
		fc.VATPct, fc.VATRecoverable,
		fc.IgnoreDuty, fc.UseOriginTable, fc.ManualDutyPct,
		fc.AirVolumetricFactor, fc.AirMinKg, fc.AirFixedFee,
		fc.LCLMinM3, fc.LCLFixedFee,
		fc.FCL20Price, fc.FCL20CapacityM3, fc.FCL40Price, fc.FCL40CapacityM3, fc.FCLFixedFee,
	)
	if err != nil {
		return fmt.Errorf("update fee_config: %w", err)
	}
	return nil
}

func (s *server) listFXRates() ([]fxRate, error) {
	rows, err := s.db.Query(`SELECT code, rate FROM fx_rates ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query fx rates: %w", err)
	}
	defer rows.Close()

	fxRates := make([]fxRate, 0)
	for rows.Next() {
		var fx fxRate
		if err := rows.Scan(&fx.Code, &fx.Rate); err != nil {
			return nil, fmt.Errorf("scan fx rate: %w", err)
		}
		fxRates = append(fxRates, fx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fx rates: %w", err)
	}

	return fxRates, nil
}

func (s *server) listFreightTiers() ([]freightTier, error) {
	rows, err := s.db.Query(`
		SELECT id, mode, up_to, rate
		FROM freight_tiers
		ORDER BY mode, (up_to IS NULL), up_to
	`)
	if err != nil {
		return nil, fmt.Errorf("query freight tiers: %w", err)
	}
	defer rows.Close()

	tiers := make([]freightTier, 0)
	for rows.Next() {
		var t freightTier
		if err := rows.Scan(&t.ID, &t.Mode, &t.UpTo, &t.Rate); err != nil {
			return nil, fmt.Errorf("scan freight tier: %w", err)
		}
		t.Unbounded = !t.UpTo.Valid
		tiers = append(tiers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate freight tiers: %w", err)
	}

	return tiers, nil
}

func (s *server) tierTable(mode string) (pricing.TierTable, error) {
	rows, err := s.db.Query(`
		SELECT up_to, rate
		FROM freight_tiers
		WHERE mode = ?
		ORDER BY (up_to IS NULL), up_to
	`, mode)
	if err != nil {
		return nil, fmt.Errorf("query %s tiers: %w", mode, err)
	}
	defer rows.Close()

	table := make(pricing.TierTable, 0)
	for rows.Next() {
		var upTo sql.NullFloat64
		var rate float64
		if err := rows.Scan(&upTo, &rate); err != nil {
			return nil, fmt.Errorf("scan %s tier: %w", mode, err)
		}
		table = append(table, pricing.Tier{UpTo: upTo.Float64, Unbounded: !upTo.Valid, Rate: rate})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s tiers: %w", mode, err)
	}

	return table, nil
}

func (s *server) listDutyRates() ([]dutyRate, error) {
	rows, err := s.db.Query(`SELECT origin, pct FROM duty_rates ORDER BY origin`)
	if err != nil {
		return nil, fmt.Errorf("query duty rates: %w", err)
	}
	defer rows.Close()

	duties := make([]dutyRate, 0)
	for rows.Next() {
		var d dutyRate
		if err := rows.Scan(&d.Origin, &d.Pct); err != nil {
			return nil, fmt.Errorf("scan duty rate: %w", err)
		}
		duties = append(duties, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate duty rates: %w", err)
	}

	return duties, nil
}

// loadEngineConfig assembles a pricing.Config snapshot from the rate store.
// Product terms, mode, incoterm and origins keep their defaults; the
// calculator form overrides them per request.
func (s *server) loadEngineConfig() (pricing.Config, error) {
	cfg := pricing.DefaultConfig()

	fc, err := s.getFeeConfig()
	if err != nil {
		return pricing.Config{}, err
	}

	cfg.InsurancePct = fc.InsurancePct
	cfg.BrokerageFee = fc.BrokerageFee
	cfg.PortFee = fc.PortFee
	cfg.OtherFees = fc.OtherFees
	cfg.OriginTransport = fc.OriginTransport
	cfg.VAT = pricing.VATPolicy{Pct: fc.VATPct, Recoverable: fc.VATRecoverable}
	cfg.Duty.Ignore = fc.IgnoreDuty
	cfg.Duty.UseOriginTable = fc.UseOriginTable
	cfg.Duty.ManualPct = fc.ManualDutyPct

	cfg.Rates.AirVolumetricFactor = fc.AirVolumetricFactor
	cfg.Rates.AirMinChargeableKg = fc.AirMinKg
	cfg.Rates.AirFixedFee = fc.AirFixedFee
	cfg.Rates.LCLMinM3 = fc.LCLMinM3
	cfg.Rates.LCLFixedFee = fc.LCLFixedFee
	cfg.Rates.FCL20Price = fc.FCL20Price
	cfg.Rates.FCL20CapacityM3 = fc.FCL20CapacityM3
	cfg.Rates.FCL40Price = fc.FCL40Price
	cfg.Rates.FCL40CapacityM3 = fc.FCL40CapacityM3
	cfg.Rates.FCLFixedFee = fc.FCLFixedFee

	if cfg.Rates.AirTiers, err = s.tierTable("air"); err != nil {
		return pricing.Config{}, err
	}
	if cfg.Rates.LCLTiers, err = s.tierTable("sea_lcl"); err != nil {
		return pricing.Config{}, err
	}

	fxRates, err := s.listFXRates()
	if err != nil {
		return pricing.Config{}, err
	}
	cfg.FX = make(map[string]float64, len(fxRates))
	for _, fx := range fxRates {
		cfg.FX[fx.Code] = fx.Rate
	}

	duties, err := s.listDutyRates()
	if err != nil {
		return pricing.Config{}, err
	}
	cfg.Duty.OriginPct = make(map[string]float64, len(duties))
	for _, d := range duties {
		cfg.Duty.OriginPct[d.Origin] = d.Pct
	}

	return cfg, nil
}
