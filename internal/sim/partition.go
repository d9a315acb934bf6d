package sim

// Range is a half-open interval [Start, End) of shape indices.
type Range struct{ Start, End int }

// Len returns the number of indices in r.
func (r Range) Len() int { return r.End - r.Start }

// Partition splits [0,n) into contiguous ranges, one per worker. The first
// n%workers ranges hold one extra index. Workers is clamped to [1,n] so no
// range is empty.
func Partition(n, workers int) []Range {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	base, rem := n/workers, n%workers
	ranges := make([]Range, workers)
	start := 0
	for i := range ranges {
		size := base
		if i < rem {
			size++
		}
		ranges[i] = Range{Start: start, End: start + size}
		start += size
	}
	return ranges
}
