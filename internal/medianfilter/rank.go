package medianfilter

// reposition restores sorted rank order after the value in slot changed.
//
// Every other slot kept its value, so the ranks are sorted except for slot.
// It is walked left while it is smaller than its left neighbour, otherwise
// right while it is larger than its right neighbour. Each neighbour passed is
// shifted one rank toward the vacated position. Comparisons are strict, so
// equal values never move.
func (f *Filter[T, S]) reposition(slot uint8) {
	v := f.values[slot]
	r := f.slotToRank[slot]

	moved := false
	for r > 0 {
		n := f.rankToSlot[r-1]
		if !(v < f.values[n]) {
			break
		}
		f.rankToSlot[r] = n
		f.slotToRank[n] = r
		r--
		moved = true
	}

	if !moved {
		last := uint8(len(f.values) - 1)
		for r < last {
			n := f.rankToSlot[r+1]
			if !(v > f.values[n]) {
				break
			}
			f.rankToSlot[r] = n
			f.slotToRank[n] = r
			r++
		}
	}

	f.rankToSlot[r] = slot
	f.slotToRank[slot] = r
}
