package pricing

// Taxes holds the customs-side values derived from goods value and freight:
// insurance, the customs valuation base, the resolved duty rate, and the
// duty and VAT amounts. All monetary values are EUR.
type Taxes struct {
	Insurance   float64
	CustomsBase float64
	DutyRate    float64
	DutyAmount  float64
	VATBase     float64
	VATAmount   float64
}

// ComputeTaxes derives insurance, duty and VAT from the goods value and the
// freight cost. The chain is strictly ordered: freight → insurance →
// customs base → duty → VAT.
func ComputeTaxes(cfg Config, goodsEUR, freightEUR float64) Taxes {
	insurance := (goodsEUR + freightEUR) * cfg.InsurancePct / 100

	// Under CIF the supplier price already includes freight and insurance.
	base := goodsEUR
	if cfg.Incoterm != IncotermCIF {
		base += freightEUR + insurance
	}
	base += cfg.OriginTransport

	dutyRate := effectiveDutyRate(cfg)
	duty := base * dutyRate / 100

	vatBase := base + duty + cfg.BrokerageFee + cfg.PortFee + cfg.OtherFees
	vat := vatBase * cfg.VAT.Pct / 100

	return Taxes{
		Insurance:   insurance,
		CustomsBase: base,
		DutyRate:    dutyRate,
		DutyAmount:  duty,
		VATBase:     vatBase,
		VATAmount:   vat,
	}
}

func effectiveDutyRate(cfg Config) float64 {
	if cfg.Duty.Ignore {
		return 0
	}
	if cfg.Duty.UseOriginTable {
		if pct, ok := cfg.Duty.OriginPct[cfg.ProductOrigin]; ok {
			return pct
		}
		return cfg.Duty.OriginPct[OriginOther]
	}
	return cfg.Duty.ManualPct
}
