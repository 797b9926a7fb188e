package main

import (
	"encoding/json"
	"math/bits"
)

// Trace is a normalized, rectangular schedule of per-cycle, per-port logical
// addresses (spec.md §3). It is plain data, built once by ParseTrace and never
// mutated afterward.
type Trace struct {
	size     int
	bitwidth int
	lines    [][]*int
}

// traceWire is the on-disk JSON shape (spec.md §6): {size, bitwidth, trace}.
type traceWire struct {
	Size     int     `json:"size"`
	Bitwidth int     `json:"bitwidth"`
	Trace    [][]*int `json:"trace"`
}

// ParseTrace decodes a JSON trace document and normalizes it: lines that are
// entirely absent are dropped, and every remaining line is padded with
// absents to the maximum line length.
func ParseTrace(text []byte) (*Trace, error) {
	var wire traceWire
	if err := json.Unmarshal(text, &wire); err != nil {
		return nil, malformedTraceErrorf("decoding trace JSON: %v", err)
	}
	if wire.Size < 1 {
		return nil, malformedTraceErrorf("trace size must be >= 1, got %d", wire.Size)
	}

	t := &Trace{size: wire.Size, bitwidth: wire.Bitwidth, lines: wire.Trace}
	t.normalize()
	return t, nil
}

// normalize drops all-absent lines and pads every remaining line to
// num_ports with absents. Idempotent: normalizing twice equals normalizing
// once, since ports_required is recomputed from the already-dropped lines
// and padding an already-padded line is a no-op.
func (t *Trace) normalize() {
	kept := t.lines[:0]
	for _, line := range t.lines {
		if anyPresent(line) {
			kept = append(kept, line)
		}
	}
	t.lines = kept

	portsRequired := 0
	for _, line := range t.lines {
		if len(line) > portsRequired {
			portsRequired = len(line)
		}
	}

	for i, line := range t.lines {
		if len(line) < portsRequired {
			padded := make([]*int, portsRequired)
			copy(padded, line)
			t.lines[i] = padded
		}
	}
}

func anyPresent(line []*int) bool {
	for _, slot := range line {
		if slot != nil {
			return true
		}
	}
	return false
}

// Size returns the logical memory's element count.
func (t *Trace) Size() int { return t.size }

// Bitwidth returns the element bitwidth.
func (t *Trace) Bitwidth() int { return t.bitwidth }

// NumPorts returns the number of parallel ports, i.e. the width every
// normalized line is padded to.
func (t *Trace) NumPorts() int {
	if len(t.lines) == 0 {
		return 0
	}
	return len(t.lines[0])
}

// Lines returns the normalized trace lines in input order.
func (t *Trace) Lines() [][]*int { return t.lines }

// BitsRequired is the address-bit width used to size the routing program's
// bit-vector operands during synthesis. spec.md §9 flags the reference
// formula (word_bits - clz(size) - 1, i.e. floor(log2 size)) as an
// under-count for non-powers-of-two; this implementation uses the
// corrected ceil(log2(max(size,2))) per the spec's "for new
// implementations" guidance.
func (t *Trace) BitsRequired() int {
	return bitsRequired(t.size)
}

func bitsRequired(size int) int {
	n := size
	if n < 2 {
		n = 2
	}
	return bits.Len(uint(n - 1))
}
