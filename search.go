package ip2location

// rangeKey is an unsigned address of either family, ordered by Cmp.
type rangeKey[K any] interface {
	Cmp(K) int
}

// rangeBounds returns the start of range mid and the start of range mid+1,
// the exclusive upper bound of range mid.
type rangeBounds[K any] func(mid uint32) (from, to K, err error)

// binarySearch finds the range in [low, high] containing key. Ranges are
// half-open, so a key equal to a range's upper bound belongs to the next one.
func binarySearch[K rangeKey[K]](low, high uint32, key K, bounds rangeBounds[K]) (uint32, bool, error) {
	for low <= high {
		mid := low + (high-low)/2
		from, to, err := bounds(mid)
		if err != nil {
			return 0, false, err
		}
		if key.Cmp(from) >= 0 && key.Cmp(to) < 0 {
			return mid, true, nil
		}
		if key.Cmp(from) < 0 {
			if mid == 0 {
				break
			}
			high = mid - 1
		} else {
			low = mid + 1
		}
	}
	return 0, false, nil
}
