// Package generator picks drill prompts.
package generator

import (
	"math/rand"
	"time"
)

// Generator draws graphemes uniformly at random.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects one key uniformly. Draws are independent; repeats are allowed.
// keys must not be empty.
func (g *Generator) Pick(keys []string) string {
	return keys[g.rnd.Intn(len(keys))]
}
