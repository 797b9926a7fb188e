package main

import (
	"fmt"
	"strings"
)

// indent returns n*4 spaces, matching structures.rs's pretty_print
// convention (" ".repeat(level*4)).
func indent(level int) string { return strings.Repeat(" ", level*4) }

// Pretty renders a Range in author-dialect form: [start:finish:stride].
func (r Range) Pretty() string {
	return fmt.Sprintf("[%d:%d:%d]", r.Start, r.Finish, r.Stride)
}

// Pretty renders a TopLevelMemoryLayout. A single range prints inline; more
// than one prints as a bracketed, newline-separated list indented one level
// deeper than level.
func (l TopLevelMemoryLayout) Pretty(level int) string {
	if len(l.Ranges) == 1 {
		return l.Ranges[0].Pretty()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[\n")
	for i, r := range l.Ranges {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "%s%s", indent(level+1), r.Pretty())
	}
	fmt.Fprintf(&b, "\n%s]", indent(level))
	return b.String()
}

// Pretty renders a SequenceRoutingProg: a single terminal inline, or a
// bracketed comma list for a multi-step sequence.
func (s SequenceRoutingProg) Pretty() string { return s.String() }

// Pretty renders a TopLevelRoutingProgram. An unconditional program prints
// its sequence inline; a switch prints one case per line followed by the
// default arm, indented one level deeper than level.
func (p TopLevelRoutingProgram) Pretty(level int) string {
	if p.IsUnconditional() {
		return p.Default.Pretty()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "switch {\n")
	for _, c := range p.Cases {
		fmt.Fprintf(&b, "%s\t%s -> %s,\n", indent(level), c.Cond, c.Seq.Pretty())
	}
	fmt.Fprintf(&b, "%s\t -> %s\n", indent(level), p.Default.Pretty())
	fmt.Fprintf(&b, "%s}", indent(level))
	return b.String()
}

// Pretty renders a MemoryBank as `bank {`, a `layout: ...` line, a
// `translation: ...` line and a closing `}`, indented at level.
func (b MemoryBank) Pretty(level int) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%sbank {\n", indent(level))
	fmt.Fprintf(&out, "%s\tlayout: %s\n", indent(level), b.Layout.Pretty(level+1))
	fmt.Fprintf(&out, "%s\ttranslation: %s\n", indent(level), b.Routing.Pretty(level+1))
	fmt.Fprintf(&out, "%s}\n", indent(level))
	return out.String()
}

// Pretty renders a full Component in author-dialect form, the inverse of
// ParseComponent (author dialect) up to whitespace (spec.md §4.5, §8).
func (c *Component) Pretty() string {
	var b strings.Builder
	fmt.Fprintf(&b, "memory<%d,%d> {\n", c.Width, c.Size)
	for _, bank := range c.Banks {
		b.WriteString(bank.Pretty(1))
	}
	b.WriteString("}\n")
	return b.String()
}
