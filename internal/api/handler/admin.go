package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"github.com/vfg2006/captive-portal-api/internal/usecases/reporting"
	"github.com/vfg2006/captive-portal-api/pkg/apiErrors"
	"github.com/vfg2006/captive-portal-api/pkg/utils"
)

func ListAds(ledger advertising.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ads, err := ledger.List(r.Context())
		if err != nil {
			writeUsecaseError(w, err, "Error listing ads")
			return
		}

		writeJSON(w, http.StatusOK, ads)
	}
}

func GetAd(ledger advertising.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ad, err := ledger.Get(r.Context(), httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeUsecaseError(w, err, "Error reading ad")
			return
		}

		writeJSON(w, http.StatusOK, ad)
	}
}

func CreateAd(ledger advertising.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.AdInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		ad, err := ledger.Create(r.Context(), input)
		if err != nil {
			writeUsecaseError(w, err, "Error creating ad")
			return
		}

		writeJSON(w, http.StatusCreated, ad)
	}
}

func UpdateAd(ledger advertising.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.AdInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		ad, err := ledger.Update(r.Context(), httprouter.ParamsFromContext(r.Context()).ByName("id"), input)
		if err != nil {
			writeUsecaseError(w, err, "Error updating ad")
			return
		}

		writeJSON(w, http.StatusOK, ad)
	}
}

// DeleteAd succeeds for unknown ids too.
func DeleteAd(ledger advertising.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ledger.Remove(r.Context(), httprouter.ParamsFromContext(r.Context()).ByName("id")); err != nil {
			writeUsecaseError(w, err, "Error deleting ad")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ToggleAd(ledger advertising.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ad, err := ledger.ToggleActive(r.Context(), httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeUsecaseError(w, err, "Error toggling ad")
			return
		}

		writeJSON(w, http.StatusOK, ad)
	}
}

// GetStats answers with money and percentages rounded to two decimals.
func GetStats(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := reporter.Stats(r.Context())
		if err != nil {
			writeUsecaseError(w, err, "Error computing stats")
			return
		}

		stats.TotalRevenue = utils.RoundWithTwoDecimalPlace(stats.TotalRevenue)
		stats.CTR = utils.RoundWithTwoDecimalPlace(stats.CTR)

		writeJSON(w, http.StatusOK, stats)
	}
}

func GetAdStats(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := reporter.AdStats(r.Context())
		if err != nil {
			writeUsecaseError(w, err, "Error computing ad stats")
			return
		}

		for i := range stats {
			stats[i].CTR = utils.RoundWithTwoDecimalPlace(stats[i].CTR)
			stats[i].Revenue = utils.RoundWithTwoDecimalPlace(stats[i].Revenue)
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
