package medianfilter

import "math"

// Stats is a point-in-time view of a filter's window.
type Stats[T Element, S Accumulator] struct {
	Median T
	Min    T
	Max    T
	Mean   S
	StdDev S
}

// Median returns the value at the middle rank.
func (f *Filter[T, S]) Median() T {
	return f.values[f.rankToSlot[f.medianRank]]
}

// Min returns the smallest value in the window.
func (f *Filter[T, S]) Min() T {
	return f.values[f.rankToSlot[0]]
}

// Max returns the largest value in the window.
func (f *Filter[T, S]) Max() T {
	return f.values[f.rankToSlot[len(f.rankToSlot)-1]]
}

// Mean returns the running sum divided by the capacity, using integer
// division when S is an integer type.
func (f *Filter[T, S]) Mean() S {
	return f.sum / S(len(f.values))
}

// StdDev returns the sample standard deviation of the window around Mean,
// rounded to the nearest whole number. Squares are summed in float64 so wide
// sample ranges cannot overflow the accumulator.
func (f *Filter[T, S]) StdDev() S {
	mean := float64(f.Mean())

	var squares float64
	for _, v := range f.values {
		d := float64(v) - mean
		squares += d * d
	}

	return S(math.Round(math.Sqrt(squares / float64(len(f.values)-1))))
}

// Stats collects all accessors at once.
func (f *Filter[T, S]) Stats() Stats[T, S] {
	return Stats[T, S]{
		Median: f.Median(),
		Min:    f.Min(),
		Max:    f.Max(),
		Mean:   f.Mean(),
		StdDev: f.StdDev(),
	}
}

// Sorted appends the window in ascending order to dst.
func (f *Filter[T, S]) Sorted(dst []T) []T {
	for _, slot := range f.rankToSlot {
		dst = append(dst, f.values[slot])
	}
	return dst
}
