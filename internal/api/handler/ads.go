package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
	"github.com/vfg2006/captive-portal-api/internal/usecases/pricing"
	"github.com/vfg2006/captive-portal-api/internal/usecases/recording"
	"github.com/vfg2006/captive-portal-api/internal/usecases/rotating"
)

func OpenRotation(rotator rotating.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		screen := domain.Screen(httprouter.ParamsFromContext(r.Context()).ByName("screen"))

		view, err := rotator.Open(r.Context(), screen)
		if err != nil {
			writeUsecaseError(w, err, "Error opening rotation")
			return
		}

		writeJSON(w, http.StatusCreated, view)
	}
}

func GetRotation(rotator rotating.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := rotator.View(httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeUsecaseError(w, err, "Error reading rotation")
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func CloseRotation(rotator rotating.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rotator.Close(httprouter.ParamsFromContext(r.Context()).ByName("id")); err != nil {
			writeUsecaseError(w, err, "Error closing rotation")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// RecordImpression is called by a screen each time it renders an ad.
func RecordImpression(recorder recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := recorder.RecordImpression(r.Context(), httprouter.ParamsFromContext(r.Context()).ByName("id")); err != nil {
			writeUsecaseError(w, err, "Error recording impression")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ClickAd bills the click to the current visitor, when there is one, and
// returns the url to open.
func ClickAd(recorder recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := recorder.ClickAd(r.Context(), httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeUsecaseError(w, err, "Error recording click")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func AdPrice(ledger advertising.Ledger, rates pricing.RateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ad, err := ledger.Get(r.Context(), httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeUsecaseError(w, err, "Error reading ad")
			return
		}

		writeJSON(w, http.StatusOK, rates.PriceFor(r.Context(), *ad))
	}
}

func GetRate(rates pricing.RateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]float64{
			"rate": rates.GetRate(r.Context()),
		})
	}
}
