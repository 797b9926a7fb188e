package main

import (
	"fmt"
	"io"
	"os"
	"time"
)

// runSynthesize implements `synthesize <trace.json>`: parse the trace,
// synthesize a Component, and write its pretty-printed (author-dialect)
// form to out.
func runSynthesize(tracePath string, timeout time.Duration, out io.Writer) error {
	data, err := os.ReadFile(tracePath)
	if err != nil {
		return ioErrorf("reading trace %s: %v", tracePath, err)
	}
	trace, err := ParseTrace(data)
	if err != nil {
		return err
	}

	s := NewSynthesizer(timeout)
	component, err := s.Synthesize(trace)
	if err != nil {
		return err
	}

	fmt.Fprint(out, component.Pretty())
	return nil
}

// runEmit implements `emit <desc>`: parse an author-dialect description and
// write its hardware IR to out.
func runEmit(descPath string, out io.Writer) error {
	data, err := os.ReadFile(descPath)
	if err != nil {
		return ioErrorf("reading description %s: %v", descPath, err)
	}
	component, err := ParseComponent(string(data), DialectAuthor)
	if err != nil {
		return err
	}
	ir, err := Emit(component)
	if err != nil {
		return err
	}
	fmt.Fprint(out, ir)
	return nil
}

// runVerify implements `verify <desc> <trace.json>`: parse both, then report
// whether the description validates against the trace on out ("OK" or
// "FAIL"). A validation failure is also returned as an error so the CLI
// exits non-zero, matching spec.md §6's "non-zero on parse or synthesis
// failure" for the verify path too.
func runVerify(descPath, tracePath string, out io.Writer) error {
	descData, err := os.ReadFile(descPath)
	if err != nil {
		return ioErrorf("reading description %s: %v", descPath, err)
	}
	component, err := ParseComponent(string(descData), DialectAuthor)
	if err != nil {
		return err
	}

	traceData, err := os.ReadFile(tracePath)
	if err != nil {
		return ioErrorf("reading trace %s: %v", tracePath, err)
	}
	trace, err := ParseTrace(traceData)
	if err != nil {
		return err
	}

	if component.Validate(trace) {
		fmt.Fprintln(out, "OK")
		return nil
	}
	fmt.Fprintln(out, "FAIL")
	return unsatisfiableErrorf("description does not validate against trace")
}
