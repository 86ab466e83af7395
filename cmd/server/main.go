package main

import (
	"database/sql"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/importwise/landedcost/internal/config"
	"github.com/importwise/landedcost/internal/db"
	"github.com/importwise/landedcost/internal/migrations"
	"github.com/importwise/landedcost/internal/pricing"
	"github.com/importwise/landedcost/internal/seed"
)

type server struct {
	db *sql.DB
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type modeOption struct {
	Value string
	Label string
}

var modeOptions = []modeOption{
	{Value: string(pricing.ModeAirExpress), Label: "Aéreo expresso"},
	{Value: string(pricing.ModeAirCargo), Label: "Aéreo carga"},
	{Value: string(pricing.ModeSeaLCL), Label: "Marítimo LCL (grupagem)"},
	{Value: string(pricing.ModeSeaFCL20), Label: "Marítimo FCL 20'"},
	{Value: string(pricing.ModeSeaFCL40), Label: "Marítimo FCL 40'"},
}

var incotermOptions = []string{
	string(pricing.IncotermEXW),
	string(pricing.IncotermFOB),
	string(pricing.IncotermCIF),
}

type calculatorViewData struct {
	baseViewData
	Form        calculatorForm
	Modes       []modeOption
	Incoterms   []string
	Origins     []string
	Currencies  []string
	Result      *pricing.Result
	Sensitivity []pricing.SensitivityPoint
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
		stats, err := seed.Run(database)
		if err != nil {
			log.Fatalf("failed to seed default rates: %v", err)
		}
		if stats.Inserts > 0 {
			log.Printf("seeded %d default rate rows", stats.Inserts)
		}
	}

	srv := &server{db: database}
	if err := srv.ensureFeeConfig(); err != nil {
		log.Fatalf("failed to ensure fee config: %v", err)
	}

	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Get("/", srv.handleCalculator)
	r.Post("/calcular", srv.handleCalculatorSubmit)
	r.Get("/resumo.txt", srv.handleSummaryText)
	r.Get("/admin/fees", srv.handleAdminFeesForm)
	r.Post("/admin/fees", srv.handleAdminFeesSubmit)
	r.Get("/admin/fx", srv.handleAdminFXForm)
	r.Post("/admin/fx", srv.handleAdminFXCreate)
	r.Post("/admin/fx/{code}", srv.handleAdminFXUpdate)
	r.Get("/admin/tiers", srv.handleAdminTiersForm)
	r.Post("/admin/tiers", srv.handleAdminTiersCreate)
	r.Post("/admin/tiers/{id}", srv.handleAdminTiersUpdate)
	r.Get("/admin/duties", srv.handleAdminDutiesForm)
	r.Post("/admin/duties", srv.handleAdminDutiesCreate)
	r.Post("/admin/duties/{origin}", srv.handleAdminDutiesUpdate)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	view, err := s.buildCalculatorView(defaultCalculatorForm())
	if err != nil {
		http.Error(w, "failed to load rates", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "calculator.html", view)
}

func (s *server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, validationErr := parseCalculatorForm(r)
	if validationErr != nil {
		view, err := s.buildOptionsView(form)
		if err != nil {
			http.Error(w, "failed to load rates", http.StatusInternalServerError)
			return
		}
		view.ErrorMessage = validationErr.Error()
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, "calculator.html", view)
		return
	}

	view, err := s.buildCalculatorView(form)
	if err != nil {
		http.Error(w, "failed to load rates", http.StatusInternalServerError)
		return
	}
	if view.ErrorMessage != "" {
		w.WriteHeader(http.StatusBadRequest)
	}

	s.renderTemplate(w, "calculator.html", view)
}

// buildOptionsView fills the select-box options without computing a result.
func (s *server) buildOptionsView(form calculatorForm) (calculatorViewData, error) {
	view := calculatorViewData{
		Form:      form,
		Modes:     modeOptions,
		Incoterms: incotermOptions,
	}

	duties, err := s.listDutyRates()
	if err != nil {
		return view, err
	}
	for _, d := range duties {
		view.Origins = append(view.Origins, d.Origin)
	}

	fxRates, err := s.listFXRates()
	if err != nil {
		return view, err
	}
	for _, fx := range fxRates {
		view.Currencies = append(view.Currencies, fx.Code)
	}

	return view, nil
}

func (s *server) buildCalculatorView(form calculatorForm) (calculatorViewData, error) {
	view, err := s.buildOptionsView(form)
	if err != nil {
		return view, err
	}

	snapshot, err := s.loadEngineConfig()
	if err != nil {
		return view, err
	}

	engineCfg := form.apply(snapshot)
	if err := engineCfg.Validate(); err != nil {
		view.ErrorMessage = err.Error()
		return view, nil
	}

	result := pricing.ComputeLanded(engineCfg)
	view.Result = &result
	view.Sensitivity = pricing.SampleSensitivity(engineCfg)

	return view, nil
}

func (s *server) handleSummaryText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, err := parseCalculatorForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := s.loadEngineConfig()
	if err != nil {
		http.Error(w, "failed to load rates", http.StatusInternalServerError)
		return
	}

	engineCfg := form.apply(snapshot)
	if err := engineCfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := pricing.ComputeLanded(engineCfg)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Estimativa de custo de importação\n\n")
	fmt.Fprintf(w, "Parâmetros:\n")
	fmt.Fprintf(w, "  Quantidade: %d\n", engineCfg.Product.Quantity)
	fmt.Fprintf(w, "  Preço unitário: %.2f %s\n", engineCfg.Product.UnitPrice, engineCfg.Product.Currency)
	fmt.Fprintf(w, "  Modo: %s\n", engineCfg.Mode)
	fmt.Fprintf(w, "  Incoterm: %s\n", engineCfg.Incoterm)
	fmt.Fprintf(w, "  Origem: %s\n\n", engineCfg.ProductOrigin)
	fmt.Fprintf(w, "Frete: %.2f EUR (%s)\n", result.Freight.Cost, result.Freight.Basis)
	fmt.Fprintf(w, "Base aduaneira: %.2f EUR\n", result.Taxes.CustomsBase)
	fmt.Fprintf(w, "Direitos (%.2f%%): %.2f EUR\n", result.Taxes.DutyRate, result.Taxes.DutyAmount)
	fmt.Fprintf(w, "IVA (%.2f%%): %.2f EUR\n\n", engineCfg.VAT.Pct, result.Taxes.VATAmount)
	fmt.Fprintf(w, "Composição:\n")
	for _, component := range result.Composition {
		fmt.Fprintf(w, "  %s: %.2f EUR\n", component.Name, component.Amount)
	}
	fmt.Fprintf(w, "\nTotal sem IVA: %.2f EUR\n", result.LandedExVAT)
	fmt.Fprintf(w, "Total com IVA: %.2f EUR\n", result.LandedInclVAT)
	fmt.Fprintf(w, "Custo unitário: %.4f EUR\n", result.UnitLanded)
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFiles(
		"web/templates/layout.html",
		"web/templates/"+page,
	)
	if err != nil {
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}
