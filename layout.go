package main

// Range is a MemoryLayout: the arithmetic progression start, start+stride,
// ..., start+k*stride with k = floor((finish-start-1)/stride) (spec.md §3).
// Constructed once and never mutated.
type Range struct {
	Start  int
	Finish int
	Stride int
}

// NewRange validates and builds a Range. Violating the invariant is a
// programming bug, not a recoverable error (spec.md §7): it panics, the
// same stance the teacher and structures.rs's MemoryLayout::new take with
// assert!.
func NewRange(start, finish, stride int) Range {
	if start < 0 || finish <= start {
		panic("memsyn: invalid range: require 0 <= start < finish")
	}
	if stride <= 0 {
		panic("memsyn: invalid range: stride must be > 0")
	}
	return Range{Start: start, Finish: finish, Stride: stride}
}

// Capacity is the number of addresses this range holds. spec.md §9 notes a
// known discrepancy in the reference between a size formula of
// floor((finish-start)/stride)+1 and the get()/contains() in-bounds test;
// this implementation uses the corrected ceil((finish-start)/stride) so the
// two never disagree (see Get/Contains below).
func (r Range) Capacity() int {
	span := r.Finish - r.Start
	return (span + r.Stride - 1) / r.Stride
}

// Contains reports whether v is one of this range's addresses.
func (r Range) Contains(v int) bool {
	if v < r.Start || v >= r.Finish {
		return false
	}
	return (v-r.Start)%r.Stride == 0
}

// IndexOf returns the bank-local index of v within this range. The second
// return is false if v is not contained.
func (r Range) IndexOf(v int) (int, bool) {
	if !r.Contains(v) {
		return 0, false
	}
	return (v - r.Start) / r.Stride, true
}

// Get returns the i'th address of this range. The second return is false
// if i is out of bounds.
func (r Range) Get(i int) (int, bool) {
	if i < 0 || i >= r.Capacity() {
		return 0, false
	}
	return r.Start + i*r.Stride, true
}

// TopLevelMemoryLayout concatenates one or more Ranges; a bank's logical
// addresses are the concatenation of its ranges' addresses, in order.
type TopLevelMemoryLayout struct {
	Ranges []Range
}

// NewTopLevelMemoryLayout wraps one or more ranges. Zero ranges is a
// programming bug: every bank must own at least one range.
func NewTopLevelMemoryLayout(ranges ...Range) TopLevelMemoryLayout {
	if len(ranges) == 0 {
		panic("memsyn: a memory layout needs at least one range")
	}
	return TopLevelMemoryLayout{Ranges: append([]Range(nil), ranges...)}
}

// Capacity is the sum of the constituent ranges' capacities.
func (l TopLevelMemoryLayout) Capacity() int {
	total := 0
	for _, r := range l.Ranges {
		total += r.Capacity()
	}
	return total
}

// Contains reports whether v belongs to any constituent range.
func (l TopLevelMemoryLayout) Contains(v int) bool {
	for _, r := range l.Ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// IndexOf offsets by the cumulative capacity of preceding ranges.
func (l TopLevelMemoryLayout) IndexOf(v int) (int, bool) {
	base := 0
	for _, r := range l.Ranges {
		if r.Contains(v) {
			idx, _ := r.IndexOf(v)
			return base + idx, true
		}
		base += r.Capacity()
	}
	return 0, false
}

// Get dispatches to the first range whose prefix of cumulative capacity
// covers i.
func (l TopLevelMemoryLayout) Get(i int) (int, bool) {
	base := 0
	for _, r := range l.Ranges {
		capacity := r.Capacity()
		if i-base < capacity {
			return r.Get(i - base)
		}
		base += capacity
	}
	return 0, false
}
