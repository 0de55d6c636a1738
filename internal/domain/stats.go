package domain

// Stats are the portal-wide performance figures shown on the admin console.
type Stats struct {
	TotalClicks      int     `json:"totalClicks"`
	TotalImpressions int     `json:"totalImpressions"`
	TotalRevenue     float64 `json:"totalRevenue"`
	CTR              float64 `json:"ctr"`
	TotalUsers       int     `json:"totalUsers"`
	ActiveAds        int     `json:"activeAds"`
}

// AdStats are the per ad figures of the admin ad table.
type AdStats struct {
	AdID        string  `json:"adId"`
	Title       string  `json:"title"`
	Active      bool    `json:"active"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Revenue     float64 `json:"revenue"`
}

// CTR is clicks per impression as a percentage, 0 when nothing was shown.
func CTR(clicks, impressions int) float64 {
	if impressions == 0 {
		return 0
	}
	return float64(clicks) / float64(impressions) * 100
}

// ComputeStats derives the totals from a snapshot of the three collections.
// Clicks are counted from events, impressions from the ad counters.
func ComputeStats(users []User, ads []Ad, clicks []AdClick) Stats {
	stats := Stats{
		TotalClicks: len(clicks),
		TotalUsers:  len(users),
	}

	for _, ad := range ads {
		stats.TotalImpressions += ad.Impressions
		if ad.Active {
			stats.ActiveAds++
		}
	}

	for _, click := range clicks {
		stats.TotalRevenue += click.Cost
	}

	stats.CTR = CTR(stats.TotalClicks, stats.TotalImpressions)

	return stats
}

// ComputeAdStats uses the ad counters and its current price.
func ComputeAdStats(ads []Ad) []AdStats {
	result := make([]AdStats, 0, len(ads))
	for _, ad := range ads {
		result = append(result, AdStats{
			AdID:        ad.ID,
			Title:       ad.Title,
			Active:      ad.Active,
			Clicks:      ad.Clicks,
			Impressions: ad.Impressions,
			CTR:         CTR(ad.Clicks, ad.Impressions),
			Revenue:     float64(ad.Clicks) * ad.CostPerClick,
		})
	}
	return result
}
