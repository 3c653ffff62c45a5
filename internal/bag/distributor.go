package bag

import "sync"

// Distributor precomputes, for a given range R, a length-R·(R+1)/2
// sequence of level indices in [0,R) such that level k appears exactly
// k+1 times, placed pseudo-uniformly across the sequence (spec §4.2).
// Higher levels (higher priority) are visited more often than lower
// ones, while every level is still visited periodically.
type Distributor struct {
	order int
	table []int
}

var (
	distributorCacheMu sync.Mutex
	distributorCache   = map[int]*Distributor{}
)

// ForRange returns the process-wide cached Distributor for range r,
// constructing it on first use (spec §4.2 "cached per R process-wide").
func ForRange(r int) *Distributor {
	distributorCacheMu.Lock()
	defer distributorCacheMu.Unlock()
	if d, ok := distributorCache[r]; ok {
		return d
	}
	d := newDistributor(r)
	distributorCache[r] = d
	return d
}

// newDistributor builds the pseudo-uniform level sequence for range r.
//
// For k from r-1 down to 0, let capacity = r*(r+1)/2, T = k+1; advance a
// cursor by capacity/T (integer division) modulo capacity, T times, each
// time walking forward from the cursor until an empty slot is found,
// then writing k there.
func newDistributor(r int) *Distributor {
	capacity := r * (r + 1) / 2
	table := make([]int, capacity)
	occupied := make([]bool, capacity)

	cursor := 0
	for k := r - 1; k >= 0; k-- {
		step := (k + 1)
		advance := capacity / step
		for i := 0; i < step; i++ {
			cursor = (cursor + advance) % capacity
			for occupied[cursor] {
				cursor = (cursor + 1) % capacity
			}
			table[cursor] = k
			occupied[cursor] = true
		}
	}

	return &Distributor{order: r, table: table}
}

// Pick returns the level index stored at position index (mod len).
func (d *Distributor) Pick(index int) int {
	return d.table[((index%len(d.table))+len(d.table))%len(d.table)]
}

// Next returns the next position to pick from, wrapping at the
// sequence's length.
func (d *Distributor) Next(index int) int {
	return (index + 1) % len(d.table)
}

// Len returns the distributor's total sequence length, R*(R+1)/2.
func (d *Distributor) Len() int {
	return len(d.table)
}
