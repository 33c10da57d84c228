// Package palette picks the colors geometry actors cycle through.
package palette

import (
	"math/rand"
	"time"

	"github.com/milk9111/gsandbox/common"
)

// Picker chooses the color for the count-th timer firing (1-based).
type Picker interface {
	Pick(count int) common.LinearColor
}

// RandomPicker returns random saturated colors from a seeded source.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker seeds the picker; a zero seed uses the current time.
func NewRandomPicker(seed int64) *RandomPicker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPicker{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPicker) Pick(int) common.LinearColor {
	return common.RandomColor(p.rng)
}

// Rand exposes the underlying source for callers that need extra draws from
// the same seed, like the hub's random layouts.
func (p *RandomPicker) Rand() *rand.Rand {
	return p.rng
}
