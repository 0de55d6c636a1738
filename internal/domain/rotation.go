package domain

import "time"

// FilterForScreen keeps the active ads eligible for screen, in order.
func FilterForScreen(ads []Ad, screen Screen) []Ad {
	result := make([]Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.Active && ad.Position.Accepts(screen) {
			result = append(result, ad)
		}
	}
	return result
}

// SplitPopups separates popup ads from the ones that rotate inline.
func SplitPopups(ads []Ad) (rotating, popups []Ad) {
	rotating = make([]Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.Type == AdTypePopup {
			popups = append(popups, ad)
			continue
		}
		rotating = append(rotating, ad)
	}
	return rotating, popups
}

// Window returns size ads starting at cursor. A slice that runs past the end is
// padded from the front of set; when set is shorter than size the result may
// repeat ads.
func Window(set []Ad, cursor, size int) []Ad {
	if len(set) == 0 || size <= 0 {
		return []Ad{}
	}
	if cursor < 0 || cursor >= len(set) {
		cursor = 0
	}

	end := cursor + size
	if end > len(set) {
		end = len(set)
	}

	visible := make([]Ad, 0, size)
	visible = append(visible, set[cursor:end]...)

	if missing := size - len(visible); missing > 0 {
		if missing > len(set) {
			missing = len(set)
		}
		visible = append(visible, set[:missing]...)
	}

	return visible
}

// Advance moves cursor by step modulo n. With an empty set the tick is skipped
// and ok is false.
func Advance(cursor, step, n int) (next int, ok bool) {
	if n <= 0 {
		return cursor, false
	}
	return (cursor + step) % n, true
}

// RotationView is what a screen renders for one tick.
type RotationView struct {
	ID       string    `json:"id"`
	Screen   Screen    `json:"screen"`
	Cursor   int       `json:"cursor"`
	Size     int       `json:"size"`
	Ads      []Ad      `json:"ads"`
	Popup    *Ad       `json:"popup,omitempty"`
	OpenedAt time.Time `json:"openedAt"`
}
