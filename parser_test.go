package main

import "testing"

func TestParseLayoutSingleRange(t *testing.T) {
	l, err := ParseLayout("[0:16:2]", DialectAuthor)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if len(l.Ranges) != 1 || l.Ranges[0] != (Range{Start: 0, Finish: 16, Stride: 2}) {
		t.Fatalf("got %+v", l)
	}
}

func TestParseLayoutDefaultsStrideInAuthorDialect(t *testing.T) {
	l, err := ParseLayout("[0:16]", DialectAuthor)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if l.Ranges[0].Stride != 1 {
		t.Fatalf("expected default stride 1, got %d", l.Ranges[0].Stride)
	}
}

func TestParseLayoutEchoDialectRequiresHexAndStride(t *testing.T) {
	if _, err := ParseLayout("[0x0:0x10]", DialectEcho); err == nil {
		t.Fatalf("expected an error: echo dialect requires an explicit stride")
	}
	if _, err := ParseLayout("[0:16:1]", DialectEcho); err == nil {
		t.Fatalf("expected an error: echo dialect requires hex literals")
	}
	l, err := ParseLayout("[0x0:0x10:0x1]", DialectEcho)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if l.Ranges[0].Finish != 16 {
		t.Fatalf("Finish = %d, want 16", l.Ranges[0].Finish)
	}
}

func TestParseLayoutRangeList(t *testing.T) {
	l, err := ParseLayout("[[0:4:1], [8:12:1]]", DialectAuthor)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if len(l.Ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(l.Ranges))
	}
}

func TestParseRoutingProgramTerminal(t *testing.T) {
	prog, err := ParseRoutingProgram("INPUT >> 2", DialectAuthor)
	if err != nil {
		t.Fatalf("ParseRoutingProgram: %v", err)
	}
	if got := prog.Eval(20); got != 5 {
		t.Fatalf("Eval(20) = %d, want 5", got)
	}
}

func TestParseRoutingProgramSequence(t *testing.T) {
	prog, err := ParseRoutingProgram("[INPUT >> 1, INPUT + 1]", DialectAuthor)
	if err != nil {
		t.Fatalf("ParseRoutingProgram: %v", err)
	}
	if got := prog.Eval(8); got != 5 {
		t.Fatalf("Eval(8) = %d, want 5", got)
	}
}

func TestParseRoutingProgramSwitch(t *testing.T) {
	text := `switch {
		INPUT < 4 -> NOOP,
		(INPUT >= 4 && INPUT < 8) -> INPUT - 4,
		-> 8 - INPUT
	}`
	prog, err := ParseRoutingProgram(text, DialectAuthor)
	if err != nil {
		t.Fatalf("ParseRoutingProgram: %v", err)
	}
	if prog.IsUnconditional() {
		t.Fatalf("expected a switch, got an unconditional program")
	}
	if got := prog.Eval(2); got != 2 {
		t.Fatalf("Eval(2) = %d, want 2", got)
	}
	if got := prog.Eval(6); got != 2 {
		t.Fatalf("Eval(6) = %d, want 2", got)
	}
}

func TestParseRoutingProgramPrecedence(t *testing.T) {
	// || is loosest, && tighter, so this parses as (a && b) || c.
	cond, err := NewParser("INPUT < 2 && INPUT > 0 || INPUT == 9", DialectAuthor)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	c, err := cond.parseCondition()
	if err != nil {
		t.Fatalf("parseCondition: %v", err)
	}
	or, ok := c.(Or)
	if !ok {
		t.Fatalf("expected top-level Or, got %T", c)
	}
	if _, ok := or.Left.(And); !ok {
		t.Fatalf("expected left operand of Or to be And, got %T", or.Left)
	}
}

func TestParseBankRoundTripsThroughPretty(t *testing.T) {
	bank, err := ParseBank(`bank {
		layout: [0:8:1],
		translation: INPUT >> 1
	}`, DialectAuthor)
	if err != nil {
		t.Fatalf("ParseBank: %v", err)
	}
	if bank.Layout.Capacity() != 8 {
		t.Fatalf("Capacity() = %d, want 8", bank.Layout.Capacity())
	}

	reparsed, err := ParseBank(bank.Pretty(0), DialectAuthor)
	if err != nil {
		t.Fatalf("ParseBank(Pretty()): %v", err)
	}
	for a := uint64(0); a < 16; a += 2 {
		if bank.Routing.Eval(a) != reparsed.Routing.Eval(a) {
			t.Fatalf("routing mismatch after round trip at %d", a)
		}
	}
}

func TestParseComponent(t *testing.T) {
	text := `memory<32,8> {
	bank {
		layout: [0:8:1],
		translation: NOOP
	}
}
`
	c, err := ParseComponent(text, DialectAuthor)
	if err != nil {
		t.Fatalf("ParseComponent: %v", err)
	}
	if c.Width != 32 || c.Size != 8 || c.PortCount != 1 {
		t.Fatalf("got Width=%d Size=%d PortCount=%d", c.Width, c.Size, c.PortCount)
	}
}
