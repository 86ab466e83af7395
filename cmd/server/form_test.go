package main

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func calculatorFormValues() url.Values {
	form := url.Values{}
	form.Set("product_origin", "CN")
	form.Set("shipment_origin", "CN")
	form.Set("mode", "air_cargo")
	form.Set("incoterm", "FOB")
	form.Set("unit_price", "300")
	form.Set("currency", "usd")
	form.Set("quantity", "100")
	form.Set("unit_weight_kg", "0.8")
	form.Set("length_cm", "17")
	form.Set("width_cm", "8")
	form.Set("height_cm", "5")
	return form
}

func TestParseCalculatorForm_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/calcular", nil)
	req.Form = calculatorFormValues()

	form, err := parseCalculatorForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if form.Quantity != 100 || form.UnitPrice != 300 {
		t.Fatalf("unexpected product terms: %+v", form)
	}
	if form.Currency != "USD" {
		t.Fatalf("currency should be upper-cased, got %q", form.Currency)
	}
	if form.Mode != "air_cargo" || form.Incoterm != "FOB" {
		t.Fatalf("unexpected shipping terms: %+v", form)
	}
}

func TestParseCalculatorForm_EmptyOriginsFallBack(t *testing.T) {
	values := calculatorFormValues()
	values.Del("product_origin")
	values.Del("shipment_origin")

	req := httptest.NewRequest("POST", "/calcular", nil)
	req.Form = values

	form, err := parseCalculatorForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if form.ProductOrigin != "OTHER" || form.ShipmentOrigin != "OTHER" {
		t.Fatalf("expected OTHER fallback origins, got %+v", form)
	}
}

func TestParseCalculatorForm_InvalidQuantity(t *testing.T) {
	values := calculatorFormValues()
	values.Set("quantity", "0")

	req := httptest.NewRequest("POST", "/calcular", nil)
	req.Form = values

	if _, err := parseCalculatorForm(req); err == nil {
		t.Fatalf("expected validation error for quantity 0")
	}
}

func TestParseCalculatorForm_InvalidNumbers(t *testing.T) {
	values := calculatorFormValues()
	values.Set("unit_weight_kg", "abc")

	req := httptest.NewRequest("POST", "/calcular", nil)
	req.Form = values

	if _, err := parseCalculatorForm(req); err == nil {
		t.Fatalf("expected numeric validation error")
	}
}

func TestParseTierForm_EmptyThresholdIsUnbounded(t *testing.T) {
	form := url.Values{}
	form.Set("mode", "air")
	form.Set("up_to", "")
	form.Set("rate", "4.2")

	req := httptest.NewRequest("POST", "/admin/tiers", nil)
	req.Form = form

	mode, upTo, rate, err := parseTierForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if mode != "air" || upTo.Valid || rate != 4.2 {
		t.Fatalf("unexpected tier: mode=%q upTo=%+v rate=%v", mode, upTo, rate)
	}
}

func TestParseTierForm_RejectsUnknownMode(t *testing.T) {
	form := url.Values{}
	form.Set("mode", "sea_fcl_20")
	form.Set("up_to", "10")
	form.Set("rate", "4.2")

	req := httptest.NewRequest("POST", "/admin/tiers", nil)
	req.Form = form

	if _, _, _, err := parseTierForm(req); err == nil {
		t.Fatalf("expected mode validation error")
	}
}
