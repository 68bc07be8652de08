package knapsack

// provenance records, per item pass and capacity, whether the item improved
// the best value at that capacity. One bit per cell.
type provenance struct {
	words []uint64
	width int64 // words per item row
}

func newProvenance(items int, capacity int64) *provenance {
	width := capacity/64 + 1
	return &provenance{
		words: make([]uint64, int64(items)*width),
		width: width,
	}
}

func (p *provenance) set(item int, c int64) {
	p.words[int64(item)*p.width+c/64] |= 1 << uint(c%64)
}

func (p *provenance) has(item int, c int64) bool {
	return p.words[int64(item)*p.width+c/64]&(1<<uint(c%64)) != 0
}
