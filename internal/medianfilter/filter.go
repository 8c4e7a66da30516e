// Package medianfilter maintains the running median of the most recent N
// samples of a stream without re-sorting the window on every sample.
//
// The window is a ring buffer of raw values plus two index arrays that encode
// sorted order: rankToSlot maps a rank (0 = smallest) to a ring slot and
// slotToRank is its inverse. Inserting a sample overwrites the oldest slot and
// walks that one slot left or right through the ranks until order is restored.
// Nothing is allocated after New.
//
// A Filter is not safe for concurrent use.
package medianfilter

import "golang.org/x/exp/constraints"

const (
	MinCapacity = 3
	MaxCapacity = 255
)

// Element is the type of a stored sample.
type Element interface {
	constraints.Integer | constraints.Float
}

// Accumulator is the type used for the running sum, mean and standard
// deviation. It should be strictly wider than the element type.
type Accumulator interface {
	constraints.Integer | constraints.Float
}

// Filter is a fixed-size running median window over samples of type T with
// sums kept in S.
type Filter[T Element, S Accumulator] struct {
	values     []T
	rankToSlot []uint8
	slotToRank []uint8
	medianRank uint8
	oldest     uint8
	sum        S
}

// New returns a filter holding capacity copies of seed. Capacity is clamped
// into [MinCapacity, MaxCapacity]. Odd capacities give a true median; for even
// ones the upper of the two middle values is reported.
func New[T Element, S Accumulator](capacity int, seed T) *Filter[T, S] {
	capacity = clampCapacity(capacity)

	f := &Filter[T, S]{
		values:     make([]T, capacity),
		rankToSlot: make([]uint8, capacity),
		slotToRank: make([]uint8, capacity),
		medianRank: uint8(capacity >> 1),
		sum:        S(capacity) * S(seed),
	}
	f.oldest = f.medianRank

	// Equal values in a straight run are trivially sorted.
	for i := range f.values {
		f.values[i] = seed
		f.rankToSlot[i] = uint8(i)
		f.slotToRank[i] = uint8(i)
	}
	return f
}

func clampCapacity(n int) int {
	if n < MinCapacity {
		return MinCapacity
	}
	if n > MaxCapacity {
		return MaxCapacity
	}
	return n
}

// Insert replaces the oldest sample with v and returns the new median.
// NaN samples leave the ordering undefined; callers must filter them out.
func (f *Filter[T, S]) Insert(v T) T {
	slot := f.push(v)
	f.reposition(slot)
	return f.Median()
}

// Capacity returns the window size after clamping.
func (f *Filter[T, S]) Capacity() int {
	return len(f.values)
}

// Clone returns an independent deep copy of f.
func (f *Filter[T, S]) Clone() *Filter[T, S] {
	c := *f
	c.values = append([]T(nil), f.values...)
	c.rankToSlot = append([]uint8(nil), f.rankToSlot...)
	c.slotToRank = append([]uint8(nil), f.slotToRank...)
	return &c
}
