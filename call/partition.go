package call

// Partition splits [0, n) into at most workers contiguous, disjoint
// ranges. Each range is an inclusive [lo, hi] pair; step = n/workers,
// ranges are [0,step], [step+1,2*step+1], ..., with the final range
// closed at n-1 regardless of remainder, so fewer than workers ranges
// are returned once a range reaches n-1 early. Disjoint union of all
// ranges covers exactly [0, n).
func Partition(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	step := n / workers
	ranges := make([][2]int, 0, workers)
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + step
		if w == workers-1 || hi >= n-1 {
			ranges = append(ranges, [2]int{lo, n - 1})
			return ranges
		}
		ranges = append(ranges, [2]int{lo, hi})
		lo = hi + 1
	}
	return ranges
}
