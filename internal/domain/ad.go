package domain

import (
	"net/url"
	"strings"
	"time"
)

type AdType string

const (
	AdTypeBanner AdType = "banner"
	AdTypeVideo  AdType = "video"
	AdTypePopup  AdType = "popup"
	AdTypeImage  AdType = "image"
)

func (t AdType) Valid() bool {
	switch t {
	case AdTypeBanner, AdTypeVideo, AdTypePopup, AdTypeImage:
		return true
	}
	return false
}

type AdPosition string

const (
	AdPositionLogin     AdPosition = "login"
	AdPositionDashboard AdPosition = "dashboard"
	AdPositionBoth      AdPosition = "both"
)

func (p AdPosition) Valid() bool {
	switch p {
	case AdPositionLogin, AdPositionDashboard, AdPositionBoth:
		return true
	}
	return false
}

// Screen is a page that displays ads. Only login and dashboard render rotations.
type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenDashboard Screen = "dashboard"
)

func (s Screen) Valid() bool {
	return s == ScreenLogin || s == ScreenDashboard
}

// Accepts reports whether an ad placed at p may appear on screen s.
func (p AdPosition) Accepts(s Screen) bool {
	return p == AdPositionBoth || string(p) == string(s)
}

type Ad struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"imageUrl"`
	VideoURL     string     `json:"videoUrl,omitempty"`
	TargetURL    string     `json:"targetUrl"`
	Type         AdType     `json:"type"`
	Position     AdPosition `json:"position"`
	Clicks       int        `json:"clicks"`
	Impressions  int        `json:"impressions"`
	CostPerClick float64    `json:"costPerClick"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// AdInput carries the fields editable from the admin form.
type AdInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"imageUrl"`
	VideoURL     string     `json:"videoUrl"`
	TargetURL    string     `json:"targetUrl"`
	Type         AdType     `json:"type"`
	Position     AdPosition `json:"position"`
	CostPerClick float64    `json:"costPerClick"`
	Active       *bool      `json:"active"`
}

// Validate returns the name of every invalid field.
func (in AdInput) Validate() map[string]string {
	problems := map[string]string{}

	if strings.TrimSpace(in.Title) == "" {
		problems["title"] = "required"
	}
	if !in.Type.Valid() {
		problems["type"] = "must be one of banner, video, popup, image"
	}
	if !in.Position.Valid() {
		problems["position"] = "must be one of login, dashboard, both"
	}
	if in.CostPerClick < 0 {
		problems["costPerClick"] = "must not be negative"
	}
	if !isHTTPURL(in.TargetURL) {
		problems["targetUrl"] = "must be an absolute http(s) url"
	}
	if in.VideoURL != "" && !isHTTPURL(in.VideoURL) {
		problems["videoUrl"] = "must be an absolute http(s) url"
	}

	return problems
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// DefaultAds is the inventory seeded into an uninitialised ads collection.
func DefaultAds(now time.Time) []Ad {
	return []Ad{
		{
			ID:           "ad_1",
			Title:        "Descubre el Nuevo iPhone 15",
			Description:  "La mejor tecnología en tus manos. Cómpralo ahora con descuento.",
			ImageURL:     "/modern-smartphone-advertisement.jpg",
			TargetURL:    "https://example.com/iphone",
			Type:         AdTypeBanner,
			Position:     AdPositionBoth,
			CostPerClick: 0.5,
			Active:       true,
			CreatedAt:    now,
		},
		{
			ID:           "ad_2",
			Title:        "Viaja por el Mundo",
			Description:  "Ofertas exclusivas en vuelos y hoteles. Reserva ahora.",
			ImageURL:     "/travel-vacation-beach-paradise.jpg",
			TargetURL:    "https://example.com/travel",
			Type:         AdTypeBanner,
			Position:     AdPositionLogin,
			CostPerClick: 0.75,
			Active:       true,
			CreatedAt:    now,
		},
		{
			ID:           "ad_3",
			Title:        "Aprende Programación",
			Description:  "Cursos online con certificación. Empieza gratis hoy.",
			ImageURL:     "/coding-programming-education.jpg",
			VideoURL:     "https://example.com/video.mp4",
			TargetURL:    "https://example.com/courses",
			Type:         AdTypeVideo,
			Position:     AdPositionDashboard,
			CostPerClick: 1.0,
			Active:       true,
			CreatedAt:    now,
		},
		{
			ID:           "ad_4",
			Title:        "Oferta Especial",
			Description:  "50% de descuento en tu primera compra. No te lo pierdas!",
			ImageURL:     "/special-offer-discount-sale.png",
			TargetURL:    "https://example.com/sale",
			Type:         AdTypePopup,
			Position:     AdPositionDashboard,
			CostPerClick: 0.35,
			Active:       true,
			CreatedAt:    now,
		},
	}
}

// Price is the display price of an ad in dollars and bolivares.
type Price struct {
	AdID string  `json:"adId"`
	USD  float64 `json:"usd"`
	VES  float64 `json:"ves"`
	Rate float64 `json:"rate"`
}

// displayPriceMultiplier turns a cost per click into the advertised price.
const displayPriceMultiplier = 10

func NewPrice(ad Ad, rate float64) Price {
	usd := ad.CostPerClick * displayPriceMultiplier
	return Price{AdID: ad.ID, USD: usd, VES: usd * rate, Rate: rate}
}
