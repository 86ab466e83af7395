package pricing

// Component is one named line of the cost composition breakdown.
type Component struct {
	Name   string
	Amount float64
}

// Result groups the full landed-cost output: the freight and tax
// sub-results, the aggregate totals, and the composition breakdown.
type Result struct {
	GoodsValueEUR float64
	Freight       Freight
	Taxes         Taxes

	LandedExVAT   float64
	LandedInclVAT float64
	UnitLanded    float64

	Composition []Component
}

// ComputeLanded runs the full pipeline for the configured quantity.
func ComputeLanded(cfg Config) Result {
	return computeLandedAt(cfg, cfg.Product.Quantity)
}

// computeLandedAt runs the pipeline with quantity substituted for the
// configured one, holding every other parameter fixed. The sensitivity
// sampler reuses it so both paths share the exact same formulas.
func computeLandedAt(cfg Config, quantity int) Result {
	goods := cfg.Product.UnitPrice * float64(quantity) * cfg.fxRate(cfg.Product.Currency)
	freight := ComputeFreight(cfg, quantity)
	taxes := ComputeTaxes(cfg, goods, freight.Cost)

	exVAT := goods + cfg.OriginTransport + freight.Cost + taxes.Insurance +
		taxes.DutyAmount + cfg.BrokerageFee + cfg.PortFee + cfg.OtherFees

	inclVAT := exVAT
	if !cfg.VAT.Recoverable {
		inclVAT += taxes.VATAmount
	}

	divisor := quantity
	if divisor < 1 {
		divisor = 1
	}

	return Result{
		GoodsValueEUR: goods,
		Freight:       freight,
		Taxes:         taxes,
		LandedExVAT:   exVAT,
		LandedInclVAT: inclVAT,
		UnitLanded:    inclVAT / float64(divisor),
		Composition:   composition(cfg, goods, freight, taxes),
	}
}

// composition builds the ordered breakdown list, omitting zero components.
func composition(cfg Config, goods float64, freight Freight, taxes Taxes) []Component {
	all := []Component{
		{Name: "Mercadoria", Amount: goods},
		{Name: "Transporte na origem", Amount: cfg.OriginTransport},
		{Name: "Frete", Amount: freight.Cost},
		{Name: "Seguro", Amount: taxes.Insurance},
		{Name: "Direitos aduaneiros", Amount: taxes.DutyAmount},
		{Name: "Despachante", Amount: cfg.BrokerageFee},
		{Name: "Taxas portuárias", Amount: cfg.PortFee},
		{Name: "Outras taxas", Amount: cfg.OtherFees},
	}

	kept := make([]Component, 0, len(all))
	for _, c := range all {
		if c.Amount != 0 {
			kept = append(kept, c)
		}
	}
	return kept
}
