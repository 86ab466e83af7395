package pricing

// Defaults used to seed the rate store and to prefill the calculator form.
// Every value is user-editable afterwards; none of them comes from a real
// tariff schedule.

// DefaultFXRates returns the starter currency → EUR table.
func DefaultFXRates() map[string]float64 {
	return map[string]float64{
		"EUR": 1,
		"USD": 0.92,
		"GBP": 1.17,
		"CNY": 0.13,
		"JPY": 0.0062,
	}
}

// DefaultDutyRates returns the starter origin → duty percentage table,
// including the OTHER fallback entry.
func DefaultDutyRates() map[string]float64 {
	return map[string]float64{
		"CN":        4.7,
		"IN":        4.0,
		"VN":        3.5,
		"TR":        2.8,
		"US":        3.2,
		OriginOther: 5.0,
	}
}

// DefaultFreightRates returns the starter carrier rate cards.
func DefaultFreightRates() FreightRates {
	return FreightRates{
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
		LCLMinM3:    1,
		LCLFixedFee: 90,

		FCL20Price:      2300,
		FCL20CapacityM3: 33.2,
		FCL40Price:      2900,
		FCL40CapacityM3: 67.7,
		FCLFixedFee:     250,
	}
}

// DefaultConfig returns a complete, valid starter configuration.
func DefaultConfig() Config {
	return Config{
		ProductOrigin:  "CN",
		ShipmentOrigin: "CN",
		Mode:           ModeSeaLCL,
		Incoterm:       IncotermFOB,
		Product: Product{
			UnitPrice:    10,
			Currency:     "USD",
			Quantity:     100,
			UnitWeightKg: 0.5,
			LengthCm:     20,
			WidthCm:      15,
			HeightCm:     10,
		},
		FX:              DefaultFXRates(),
		InsurancePct:    0.3,
		BrokerageFee:    75,
		PortFee:         150,
		OtherFees:       0,
		OriginTransport: 0,
		Duty: DutyPolicy{
			UseOriginTable: true,
			ManualPct:      5,
			OriginPct:      DefaultDutyRates(),
		},
		VAT:   VATPolicy{Pct: 23, Recoverable: true},
		Rates: DefaultFreightRates(),
	}
}
