package domain

import "time"

// DefaultExchangeRate is used when neither the source nor storage has a rate.
const DefaultExchangeRate = 227.5567

// RateEntry is a cached USD to VES rate.
type RateEntry struct {
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
}

// FreshAt reports whether the entry is younger than maxAge at now.
func (e *RateEntry) FreshAt(now time.Time, maxAge time.Duration) bool {
	return e != nil && now.Sub(e.Timestamp) < maxAge
}

// RateQuote is the payload of the official dollar endpoint.
type RateQuote struct {
	Source    string   `json:"fuente"`
	Name      string   `json:"nombre"`
	Buy       *float64 `json:"compra"`
	Sell      *float64 `json:"venta"`
	Average   float64  `json:"promedio"`
	UpdatedAt string   `json:"fechaActualizacion"`
}
