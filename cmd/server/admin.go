package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type feesViewData struct {
	baseViewData
	Fees feeConfig
}

type fxViewData struct {
	baseViewData
	Rates []fxRate
}

type tiersViewData struct {
	baseViewData
	Tiers []freightTier
}

type dutiesViewData struct {
	baseViewData
	Duties []dutyRate
}

func (s *server) handleAdminFeesForm(w http.ResponseWriter, r *http.Request) {
	fees, err := s.getFeeConfig()
	if err != nil {
		http.Error(w, "failed to load fee config", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_fees.html", feesViewData{Fees: fees})
}

func (s *server) handleAdminFeesSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	fees, validationErr := parseFeeConfigForm(r)
	if validationErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, "admin_fees.html", feesViewData{
			baseViewData: baseViewData{ErrorMessage: validationErr.Error()},
			Fees:         fees,
		})
		return
	}

	if err := s.updateFeeConfig(fees); err != nil {
		http.Error(w, "failed to save fee config", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_fees.html", feesViewData{
		baseViewData: baseViewData{SuccessMessage: "Configuração guardada com sucesso."},
		Fees:         fees,
	})
}

func (s *server) handleAdminFXForm(w http.ResponseWriter, r *http.Request) {
	rates, err := s.listFXRates()
	if err != nil {
		http.Error(w, "failed to load fx rates", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_fx.html", fxViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Rates: rates,
	})
}

func (s *server) handleAdminFXCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(r.FormValue("code")))
	if len(code) != 3 {
		http.Redirect(w, r, "/admin/fx?error="+url.QueryEscape("code deve ter 3 letras"), http.StatusSeeOther)
		return
	}

	rate, err := parsePositiveFloat(r.FormValue("rate"), "rate")
	if err != nil {
		http.Redirect(w, r, "/admin/fx?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if _, err := s.db.Exec(`INSERT INTO fx_rates (code, rate) VALUES (?, ?)`, code, rate); err != nil {
		http.Error(w, "failed to create fx rate", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/fx?success=Taxa+de+c%C3%A2mbio+criada+com+sucesso", http.StatusSeeOther)
}

func (s *server) handleAdminFXUpdate(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	if code == "" {
		http.Error(w, "invalid currency code", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rate, err := parsePositiveFloat(r.FormValue("rate"), "rate")
	if err != nil {
		http.Redirect(w, r, "/admin/fx?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	result, err := s.db.Exec(`
		UPDATE fx_rates
		SET rate = ?, updated_at = CURRENT_TIMESTAMP
		WHERE code = ?
	`, rate, code)
	if err != nil {
		http.Error(w, "failed to update fx rate", http.StatusInternalServerError)
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		http.Error(w, "failed to update fx rate", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/fx?success=Taxa+de+c%C3%A2mbio+atualizada+com+sucesso", http.StatusSeeOther)
}

func (s *server) handleAdminTiersForm(w http.ResponseWriter, r *http.Request) {
	tiers, err := s.listFreightTiers()
	if err != nil {
		http.Error(w, "failed to load freight tiers", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_tiers.html", tiersViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Tiers: tiers,
	})
}

func (s *server) handleAdminTiersCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	mode, upTo, rate, err := parseTierForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/tiers?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if _, err := s.db.Exec(`INSERT INTO freight_tiers (mode, up_to, rate) VALUES (?, ?, ?)`, mode, upTo, rate); err != nil {
		http.Error(w, "failed to create freight tier", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/tiers?success=Escal%C3%A3o+criado+com+sucesso", http.StatusSeeOther)
}

func (s *server) handleAdminTiersUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid tier id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	mode, upTo, rate, err := parseTierForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/tiers?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	result, err := s.db.Exec(`
		UPDATE freight_tiers
		SET mode = ?, up_to = ?, rate = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, mode, upTo, rate, id)
	if err != nil {
		http.Error(w, "failed to update freight tier", http.StatusInternalServerError)
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		http.Error(w, "failed to update freight tier", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/tiers?success=Escal%C3%A3o+atualizado+com+sucesso", http.StatusSeeOther)
}

func (s *server) handleAdminDutiesForm(w http.ResponseWriter, r *http.Request) {
	duties, err := s.listDutyRates()
	if err != nil {
		http.Error(w, "failed to load duty rates", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_duties.html", dutiesViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Duties: duties,
	})
}

func (s *server) handleAdminDutiesCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	origin := strings.ToUpper(strings.TrimSpace(r.FormValue("origin")))
	if origin == "" {
		http.Redirect(w, r, "/admin/duties?error=origin+%C3%A9+obrigat%C3%B3rio", http.StatusSeeOther)
		return
	}

	pct, err := parsePercent(r.FormValue("pct"), "pct")
	if err != nil {
		http.Redirect(w, r, "/admin/duties?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if _, err := s.db.Exec(`INSERT INTO duty_rates (origin, pct) VALUES (?, ?)`, origin, pct); err != nil {
		http.Error(w, "failed to create duty rate", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/duties?success=Direitos+criados+com+sucesso", http.StatusSeeOther)
}

func (s *server) handleAdminDutiesUpdate(w http.ResponseWriter, r *http.Request) {
	origin := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "origin")))
	if origin == "" {
		http.Error(w, "invalid origin", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	pct, err := parsePercent(r.FormValue("pct"), "pct")
	if err != nil {
		http.Redirect(w, r, "/admin/duties?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	result, err := s.db.Exec(`
		UPDATE duty_rates
		SET pct = ?, updated_at = CURRENT_TIMESTAMP
		WHERE origin = ?
	`, pct, origin)
	if err != nil {
		http.Error(w, "failed to update duty rate", http.StatusInternalServerError)
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		http.Error(w, "failed to update duty rate", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/duties?success=Direitos+atualizados+com+sucesso", http.StatusSeeOther)
}

func parseTierForm(r *http.Request) (mode string, upTo sql.NullFloat64, rate float64, err error) {
	mode = strings.TrimSpace(r.FormValue("mode"))
	if mode != "air" && mode != "sea_lcl" {
		return "", sql.NullFloat64{}, 0, fmt.Errorf("mode deve ser air ou sea_lcl")
	}

	// An empty threshold marks the unbounded terminal tier.
	if raw := strings.TrimSpace(r.FormValue("up_to")); raw != "" {
		value, ferr := parsePositiveFloat(raw, "up_to")
		if ferr != nil {
			return "", sql.NullFloat64{}, 0, ferr
		}
		upTo = sql.NullFloat64{Float64: value, Valid: true}
	}

	rate, err = parsePositiveFloat(r.FormValue("rate"), "rate")
	if err != nil {
		return "", sql.NullFloat64{}, 0, err
	}

	return mode, upTo, rate, nil
}

func parseFeeConfigForm(r *http.Request) (feeConfig, error) {
	var fees feeConfig
	var err error

	if fees.InsurancePct, err = parsePercent(r.FormValue("insurance_pct"), "insurance_pct"); err != nil {
		return fees, err
	}
	if fees.BrokerageFee, err = parseNonNegativeFloat(r.FormValue("brokerage_fee"), "brokerage_fee"); err != nil {
		return fees, err
	}
	if fees.PortFee, err = parseNonNegativeFloat(r.FormValue("port_fee"), "port_fee"); err != nil {
		return fees, err
	}
	if fees.OtherFees, err = parseNonNegativeFloat(r.FormValue("other_fees"), "other_fees"); err != nil {
		return fees, err
	}
	if fees.OriginTransport, err = parseNonNegativeFloat(r.FormValue("origin_transport"), "origin_transport"); err != nil {
		return fees, err
	}
	if fees.VATPct, err = parsePercent(r.FormValue("vat_pct"), "vat_pct"); err != nil {
		return fees, err
	}
	fees.VATRecoverable = r.FormValue("vat_recoverable") == "1"
	fees.IgnoreDuty = r.FormValue("ignore_duty") == "1"
	fees.UseOriginTable = r.FormValue("use_origin_table") == "1"
	if fees.ManualDutyPct, err = parsePercent(r.FormValue("manual_duty_pct"), "manual_duty_pct"); err != nil {
		return fees, err
	}
	if fees.AirVolumetricFactor, err = parsePositiveFloat(r.FormValue("air_volumetric_factor"), "air_volumetric_factor"); err != nil {
		return fees, err
	}
	if fees.AirMinKg, err = parseNonNegativeFloat(r.FormValue("air_min_kg"), "air_min_kg"); err != nil {
		return fees, err
	}
	if fees.AirFixedFee, err = parseNonNegativeFloat(r.FormValue("air_fixed_fee"), "air_fixed_fee"); err != nil {
		return fees, err
	}
	if fees.LCLMinM3, err = parseNonNegativeFloat(r.FormValue("lcl_min_m3"), "lcl_min_m3"); err != nil {
		return fees, err
	}
	if fees.LCLFixedFee, err = parseNonNegativeFloat(r.FormValue("lcl_fixed_fee"), "lcl_fixed_fee"); err != nil {
		return fees, err
	}
	if fees.FCL20Price, err = parsePositiveFloat(r.FormValue("fcl20_price"), "fcl20_price"); err != nil {
		return fees, err
	}
	if fees.FCL20CapacityM3, err = parsePositiveFloat(r.FormValue("fcl20_capacity_m3"), "fcl20_capacity_m3"); err != nil {
		return fees, err
	}
	if fees.FCL40Price, err = parsePositiveFloat(r.FormValue("fcl40_price"), "fcl40_price"); err != nil {
		return fees, err
	}
	if fees.FCL40CapacityM3, err = parsePositiveFloat(r.FormValue("fcl40_capacity_m3"), "fcl40_capacity_m3"); err != nil {
		return fees, err
	}
	if fees.FCLFixedFee, err = parseNonNegativeFloat(r.FormValue("fcl_fixed_fee"), "fcl_fixed_fee"); err != nil {
		return fees, err
	}

	return fees, nil
}
