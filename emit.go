package main

import (
	"fmt"
	"strings"
)

// Emit lowers a synthesized Component to a single Calyx-style hardware IR
// component (spec.md §4.4): one `mem_{size}_{port_count}` declaration whose
// input ports are bank_i_addr (one per port, width address_bits), whose
// output ports are read_bank_i_addr (one per port, width width), with one
// std_mem_d1 storage cell per bank plus that bank's combinational datapath,
// all wired inside the same cells/wires blocks. Grounded directly on
// structures.rs's emit_calyx_comp/emit_input_ports/emit_output_ports/
// emit_cells/emit_wires, which assemble exactly this shape — a single
// N-port component, not one component per bank.
//
// A bank whose routing program is a switch, or whose sequence contains a
// Constant step, has no single combinational datapath and is reported as
// ErrEmitUnsupported (spec.md §4.4/§7) rather than silently dropped.
func Emit(c *Component) (string, error) {
	for i, bank := range c.Banks {
		if !bank.Routing.IsUnconditional() {
			return "", emitUnsupportedErrorf("bank %d: conditional (switch) routing has no single combinational datapath", i)
		}
		for _, step := range bank.Routing.Default.Steps {
			if step.Kind == TermConstant {
				return "", emitUnsupportedErrorf("bank %d: a constant routing step addresses no wire", i)
			}
		}
	}

	var cells, wires strings.Builder
	for i, bank := range c.Banks {
		capacity := bank.Layout.Capacity()
		fmt.Fprintf(&cells, "    bank_%d = std_mem_d1(%d, %d, %d);\n", i, c.Width, capacity, c.AddressBits)
		emitBankWires(&cells, &wires, i, bank, c.Width, c.AddressBits)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "import \"primitives/core.futil\";\n")
	fmt.Fprintf(&b, "component mem_%d_%d(%s) -> (%s) {\n", c.Size, c.PortCount,
		emitInputPorts(c.PortCount, c.AddressBits), emitOutputPorts(c.PortCount, c.Width))
	fmt.Fprintf(&b, "  cells {\n")
	b.WriteString(cells.String())
	fmt.Fprintf(&b, "  }\n")
	fmt.Fprintf(&b, "  wires {\n")
	b.WriteString(wires.String())
	fmt.Fprintf(&b, "  }\n")
	fmt.Fprintf(&b, "  control {}\n")
	fmt.Fprintf(&b, "}\n")
	return b.String(), nil
}

// emitInputPorts renders the comma-separated bank_i_addr:address_bits list
// (structures.rs:42-53's emit_input_ports), one per port.
func emitInputPorts(portCount, addressBits int) string {
	var b strings.Builder
	for i := 0; i < portCount; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "bank_%d_addr: %d", i, addressBits)
	}
	return b.String()
}

// emitOutputPorts renders the comma-separated read_bank_i_addr:width list
// (structures.rs:54-65's emit_output_ports), one per port.
func emitOutputPorts(portCount, width int) string {
	var b strings.Builder
	for i := 0; i < portCount; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "read_bank_%d_addr: %d", i, width)
	}
	return b.String()
}

// emitBankWires appends bank index's translation cells to cells and its
// wiring (input port through the routing chain into the bank's std_mem_d1,
// and the cell's read-data output to the bank's output port) to wires,
// following structures.rs's MemoryBank::emit_wires, generalized from a
// single terminal to a chain of steps (spec.md §3's SequenceRoutingProg).
func emitBankWires(cells, wires *strings.Builder, index int, bank MemoryBank, width, addressBits int) {
	inPort := fmt.Sprintf("bank_%d_addr", index)
	outPort := fmt.Sprintf("read_bank_%d_addr", index)

	steps := bank.Routing.Default.Steps
	cellNames := make([]string, len(steps))
	for j, step := range steps {
		name := fmt.Sprintf("step_%d_%d", index, j)
		cellNames[j] = name
		switch step.Kind {
		case TermNoop:
			cellNames[j] = ""
		case TermRShift:
			fmt.Fprintf(cells, "    %s = std_rsh(%d);\n", name, addressBits)
		case TermAdd:
			fmt.Fprintf(cells, "    %s = std_add(%d);\n", name, addressBits)
		case TermSubPortVal, TermSubValPort:
			fmt.Fprintf(cells, "    %s = std_sub(%d);\n", name, addressBits)
		}
	}

	prev := inPort
	for j, step := range steps {
		name := cellNames[j]
		if name == "" {
			continue
		}
		switch step.Kind {
		case TermRShift, TermAdd, TermSubPortVal:
			fmt.Fprintf(wires, "    %s.left = %s;\n", name, prev)
			fmt.Fprintf(wires, "    %s.right = %d'd%d;\n", name, addressBits, step.K)
		case TermSubValPort:
			fmt.Fprintf(wires, "    %s.left = %d'd%d;\n", name, addressBits, step.K)
			fmt.Fprintf(wires, "    %s.right = %s;\n", name, prev)
		}
		prev = name + ".out"
	}
	fmt.Fprintf(wires, "    bank_%d.addr0 = %s;\n", index, prev)
	fmt.Fprintf(wires, "    %s = bank_%d.read_data;\n", outPort, index)
}
