package rotating

import (
	"math/rand"

	"github.com/vfg2006/captive-portal-api/internal/domain"
)

// Shuffle returns a uniformly shuffled copy of ads.
func Shuffle(ads []domain.Ad, rng *rand.Rand) []domain.Ad {
	shuffled := make([]domain.Ad, len(ads))
	copy(shuffled, ads)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
