package engine

import "math/rand/v2"

// Selector picks an index in [0, n). Production uses a uniform random
// source; tests substitute deterministic picks.
type Selector interface {
	Pick(n int) int
}

type randomSelector struct{}

func NewRandomSelector() Selector {
	return randomSelector{}
}

func (randomSelector) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return rand.IntN(n)
}
