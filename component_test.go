package main

import "testing"

func TestMemoryBankCanRead(t *testing.T) {
	layout := NewTopLevelMemoryLayout(NewRange(0, 8, 1))
	routing := NewUnconditional(NewSequence(Terminal{Kind: TermNoop}))
	bank := NewMemoryBank(routing, layout)

	for a := uint64(0); a < 8; a++ {
		if !bank.CanRead(a) {
			t.Fatalf("CanRead(%d) should hold for an identity bank over [0:8:1)", a)
		}
	}
	if bank.CanRead(8) {
		t.Fatalf("CanRead(8) should fail: 8 is outside the bank's layout")
	}
}

func TestComponentValidate(t *testing.T) {
	trace, err := ParseTrace([]byte(`{"size": 4, "bitwidth": 8, "trace": [[0, 1], [2, 3]]}`))
	if err != nil {
		t.Fatalf("ParseTrace: %v", err)
	}

	identity := func() MemoryBank {
		return NewMemoryBank(
			NewUnconditional(NewSequence(Terminal{Kind: TermNoop})),
			NewTopLevelMemoryLayout(NewRange(0, 4, 1)),
		)
	}
	c := NewComponentFromTrace([]MemoryBank{identity(), identity()}, trace)
	if !c.Validate(trace) {
		t.Fatalf("expected the identity component to validate the trace")
	}
	if c.PortCount != 2 || c.Size != 4 {
		t.Fatalf("PortCount=%d Size=%d, want 2 and 4", c.PortCount, c.Size)
	}

	broken := NewMemoryBank(
		NewUnconditional(NewSequence(Terminal{Kind: TermAdd, K: 1})),
		NewTopLevelMemoryLayout(NewRange(0, 4, 1)),
	)
	c2 := NewComponentFromTrace([]MemoryBank{broken, identity()}, trace)
	if c2.Validate(trace) {
		t.Fatalf("expected a mis-routed bank to fail validation")
	}
}

func TestNewComponentFromBanksDerivesAddressBits(t *testing.T) {
	bank := NewMemoryBank(
		NewUnconditional(NewSequence(Terminal{Kind: TermNoop})),
		NewTopLevelMemoryLayout(NewRange(0, 9, 1)),
	)
	c := NewComponentFromBanks(9, 32, []MemoryBank{bank})
	if c.AddressBits != 4 {
		t.Fatalf("AddressBits = %d, want 4 (ceil(log2(9)))", c.AddressBits)
	}
	if c.PortCount != 1 {
		t.Fatalf("PortCount = %d, want 1", c.PortCount)
	}
}
