package medianfilter

// push stores v in the oldest slot, keeps the running sum exact and advances
// the ring. It returns the slot that was overwritten.
func (f *Filter[T, S]) push(v T) uint8 {
	slot := f.oldest

	f.sum += S(v) - S(f.values[slot])
	f.values[slot] = v

	f.oldest++
	if int(f.oldest) == len(f.values) {
		f.oldest = 0
	}
	return slot
}
