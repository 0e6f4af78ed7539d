package dpor

import (
	"fmt"
	"strconv"
	"strings"
)

// VectorClock is a dense vector of logical counters, one entry per thread.
// The length is fixed at creation and every clock in one exploration has
// the same length. Components never decrease.
type VectorClock []uint64

func NewVectorClock(n int) VectorClock {
	return make(VectorClock, n)
}

// Increment bumps the counter at position i.
func (v VectorClock) Increment(i int) {
	if i < 0 || i >= len(v) {
		panic(fmt.Sprintf("dpor: vector clock index %d out of range [0,%d)", i, len(v)))
	}
	v[i]++
}

// Join sets every component to the max of the two clocks.
func (v VectorClock) Join(other VectorClock) {
	if len(v) != len(other) {
		panic(fmt.Sprintf("dpor: joining vector clocks of different lengths %d and %d", len(v), len(other)))
	}
	for i, c := range other {
		if c > v[i] {
			v[i] = c
		}
	}
}

// PartialLE reports whether every component of v is <= the corresponding
// component of other, i.e. v happens-before-or-equals other.
func (v VectorClock) PartialLE(other VectorClock) bool {
	if len(v) != len(other) {
		panic(fmt.Sprintf("dpor: comparing vector clocks of different lengths %d and %d", len(v), len(other)))
	}
	for i, c := range v {
		if c > other[i] {
			return false
		}
	}
	return true
}

// ConcurrentWith reports whether neither clock dominates the other.
func (v VectorClock) ConcurrentWith(other VectorClock) bool {
	return !v.PartialLE(other) && !other.PartialLE(v)
}

func (v VectorClock) Copy() VectorClock {
	c := make(VectorClock, len(v))
	copy(c, v)
	return c
}

func (v VectorClock) Equal(other VectorClock) bool {
	if len(v) != len(other) {
		return false
	}
	for i, c := range v {
		if c != other[i] {
			return false
		}
	}
	return true
}

func (v VectorClock) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatUint(c, 10)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
