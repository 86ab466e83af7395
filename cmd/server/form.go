package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/importwise/landedcost/internal/pricing"
)

// calculatorForm holds the per-shipment fields of the calculator page. Rate
// tables and fees come from the rate store, not from this form.
type calculatorForm struct {
	ProductOrigin  string
	ShipmentOrigin string
	Mode           string
	Incoterm       string
	UnitPrice      float64
	Currency       string
	Quantity       int
	UnitWeightKg   float64
	LengthCm       float64
	WidthCm        float64
	HeightCm       float64
}

func parseCalculatorForm(r *http.Request) (calculatorForm, error) {
	form := calculatorForm{
		ProductOrigin:  strings.TrimSpace(r.FormValue("product_origin")),
		ShipmentOrigin: strings.TrimSpace(r.FormValue("shipment_origin")),
		Mode:           strings.TrimSpace(r.FormValue("mode")),
		Incoterm:       strings.TrimSpace(r.FormValue("incoterm")),
		Currency:       strings.ToUpper(strings.TrimSpace(r.FormValue("currency"))),
	}

	if form.ProductOrigin == "" {
		form.ProductOrigin = pricing.OriginOther
	}
	if form.ShipmentOrigin == "" {
		form.ShipmentOrigin = form.ProductOrigin
	}
	if form.Currency == "" {
		return form, fmt.Errorf("currency é obrigatório")
	}

	var err error
	if form.UnitPrice, err = parsePositiveFloat(r.FormValue("unit_price"), "unit_price"); err != nil {
		return form, err
	}
	if form.Quantity, err = parsePositiveInt(r.FormValue("quantity"), "quantity"); err != nil {
		return form, err
	}
	if form.UnitWeightKg, err = parseNonNegativeFloat(r.FormValue("unit_weight_kg"), "unit_weight_kg"); err != nil {
		return form, err
	}
	if form.LengthCm, err = parseNonNegativeFloat(r.FormValue("length_cm"), "length_cm"); err != nil {
		return form, err
	}
	if form.WidthCm, err = parseNonNegativeFloat(r.FormValue("width_cm"), "width_cm"); err != nil {
		return form, err
	}
	if form.HeightCm, err = parseNonNegativeFloat(r.FormValue("height_cm"), "height_cm"); err != nil {
		return form, err
	}

	return form, nil
}

// apply overlays the form's per-shipment fields on a rate snapshot.
func (f calculatorForm) apply(cfg pricing.Config) pricing.Config {
	cfg.ProductOrigin = f.ProductOrigin
	cfg.ShipmentOrigin = f.ShipmentOrigin
	cfg.Mode = pricing.ShippingMode(f.Mode)
	cfg.Incoterm = pricing.Incoterm(f.Incoterm)
	cfg.Product = pricing.Product{
		UnitPrice:    f.UnitPrice,
		Currency:     f.Currency,
		Quantity:     f.Quantity,
		UnitWeightKg: f.UnitWeightKg,
		LengthCm:     f.LengthCm,
		WidthCm:      f.WidthCm,
		HeightCm:     f.HeightCm,
	}
	return cfg
}

func defaultCalculatorForm() calculatorForm {
	defaults := pricing.DefaultConfig()
	return calculatorForm{
		ProductOrigin:  defaults.ProductOrigin,
		ShipmentOrigin: defaults.ShipmentOrigin,
		Mode:           string(defaults.Mode),
		Incoterm:       string(defaults.Incoterm),
		UnitPrice:      defaults.Product.UnitPrice,
		Currency:       defaults.Product.Currency,
		Quantity:       defaults.Product.Quantity,
		UnitWeightKg:   defaults.Product.UnitWeightKg,
		LengthCm:       defaults.Product.LengthCm,
		WidthCm:        defaults.Product.WidthCm,
		HeightCm:       defaults.Product.HeightCm,
	}
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser numérico", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s deve ser maior ou igual a 0", field)
	}
	return value, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser numérico", field)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s deve ser maior que 0", field)
	}
	return value, nil
}

func parsePositiveInt(raw, field string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser um número inteiro", field)
	}
	if value < 1 {
		return 0, fmt.Errorf("%s deve ser pelo menos 1", field)
	}
	return value, nil
}

func parsePercent(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s deve estar entre 0 e 100", field)
	}
	return value, nil
}
