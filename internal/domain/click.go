package domain

import "time"

// AdClick is an immutable billing event. Cost is the ad price at click time.
type AdClick struct {
	ID        string    `json:"id"`
	AdID      string    `json:"adId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	Cost      float64   `json:"cost"`
}

// ClickResult tells the screen where to send the visitor after a click.
type ClickResult struct {
	AdID      string `json:"adId"`
	TargetURL string `json:"targetUrl"`
	Recorded  bool   `json:"recorded"`
}
