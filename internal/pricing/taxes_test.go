package pricing

import "testing"

func TestComputeTaxes_CustomsBaseByIncoterm(t *testing.T) {
	goods := 10000.0
	freight := 800.0

	exw := testConfig()
	exw.Incoterm = IncotermEXW
	fob := testConfig()
	fob.Incoterm = IncotermFOB
	cif := testConfig()
	cif.Incoterm = IncotermCIF

	insurance := (goods + freight) * exw.InsurancePct / 100

	underEXW := ComputeTaxes(exw, goods, freight)
	underFOB := ComputeTaxes(fob, goods, freight)
	underCIF := ComputeTaxes(cif, goods, freight)

	nearlyEqual(t, "EXW customsBase", underEXW.CustomsBase, goods+freight+insurance+exw.OriginTransport)
	nearlyEqual(t, "FOB customsBase", underFOB.CustomsBase, goods+freight+insurance+fob.OriginTransport)
	nearlyEqual(t, "CIF customsBase", underCIF.CustomsBase, goods+cif.OriginTransport)

	// Insurance itself is incoterm-independent.
	nearlyEqual(t, "CIF insurance", underCIF.Insurance, insurance)
}

func TestComputeTaxes_IgnoreDutyZeroesDutyOnly(t *testing.T) {
	cfg := testConfig()
	cfg.Duty.Ignore = true
	cfg.Duty.ManualPct = 25
	cfg.Duty.UseOriginTable = true
	cfg.Duty.OriginPct = map[string]float64{"CN": 12, OriginOther: 9}

	taxes := ComputeTaxes(cfg, 10000, 800)

	if taxes.DutyRate != 0 || taxes.DutyAmount != 0 {
		t.Fatalf("expected zero duty, got rate %v amount %v", taxes.DutyRate, taxes.DutyAmount)
	}
	if taxes.VATAmount == 0 {
		t.Fatalf("VAT should still apply when duty is ignored")
	}
}

func TestComputeTaxes_OriginTableWithOtherFallback(t *testing.T) {
	cfg := testConfig()
	cfg.Duty.UseOriginTable = true
	cfg.Duty.ManualPct = 99 // must be ignored while the table is enabled
	cfg.Duty.OriginPct = map[string]float64{"CN": 4.7, OriginOther: 5.0}

	cfg.ProductOrigin = "CN"
	nearlyEqual(t, "CN duty rate", ComputeTaxes(cfg, 1000, 0).DutyRate, 4.7)

	cfg.ProductOrigin = "BR"
	nearlyEqual(t, "fallback duty rate", ComputeTaxes(cfg, 1000, 0).DutyRate, 5.0)
}

func TestComputeTaxes_ManualRateWhenTableDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Duty.UseOriginTable = false
	cfg.Duty.ManualPct = 6.5
	cfg.Duty.OriginPct = map[string]float64{"CN": 1, OriginOther: 1}

	nearlyEqual(t, "manual duty rate", ComputeTaxes(cfg, 1000, 0).DutyRate, 6.5)
}

func TestComputeTaxes_VATBaseLayersFeesOnDutiedBase(t *testing.T) {
	cfg := testConfig()
	cfg.Incoterm = IncotermEXW
	cfg.InsurancePct = 0
	cfg.OriginTransport = 0
	cfg.BrokerageFee = 100
	cfg.PortFee = 50
	cfg.OtherFees = 25
	cfg.Duty.ManualPct = 10
	cfg.VAT.Pct = 20

	taxes := ComputeTaxes(cfg, 1000, 200)

	nearlyEqual(t, "customsBase", taxes.CustomsBase, 1200)
	nearlyEqual(t, "dutyAmount", taxes.DutyAmount, 120)
	nearlyEqual(t, "vatBase", taxes.VATBase, 1200+120+100+50+25)
	nearlyEqual(t, "vatAmount", taxes.VATAmount, 1495*0.20)
}
