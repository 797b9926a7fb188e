package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/xyproto/env/v2"
)

const versionString = "memsyn 1.0.0"

// Global flags, in the teacher's VerboseMode idiom (main.go): read once in
// main and consulted from anywhere in the package, never reassigned after
// flag parsing.
var VerboseMode bool

func usage() {
	fmt.Fprintf(os.Stderr, `%s

Usage:
  memsyn [-o out] [-timeout seconds] synthesize <trace.json>
  memsyn [-o out] emit <desc>
  memsyn [-o out] verify <desc> <trace.json>

Flags go before the subcommand.

Flags:
`, versionString)
	flag.PrintDefaults()
}

func main() {
	verboseFlag := flag.Bool("v", env.Bool("MEMSYN_VERBOSE"), "verbose mode (trace synthesis search to stderr)")
	outputFlag := flag.String("o", env.Str("MEMSYN_OUTPUT", ""), "output path (default: stdout)")
	timeoutFlag := flag.Float64("timeout", env.Float64("MEMSYN_TIMEOUT", 5.0), "synthesis search budget, in seconds")
	versionFlag := flag.Bool("version", false, "print version information and exit")
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Println(versionString)
		os.Exit(0)
	}

	VerboseMode = *verboseFlag

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	out := os.Stdout
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "memsyn: %v\n", ioErrorf("creating output %s: %v", *outputFlag, err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	var err error
	switch cmd := args[0]; cmd {
	case "synthesize":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "memsyn: synthesize requires exactly one trace.json argument")
			os.Exit(2)
		}
		timeout := time.Duration(*timeoutFlag * float64(time.Second))
		err = runSynthesize(args[1], timeout, out)
	case "emit":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "memsyn: emit requires exactly one description argument")
			os.Exit(2)
		}
		err = runEmit(args[1], out)
	case "verify":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "memsyn: verify requires a description and a trace.json argument")
			os.Exit(2)
		}
		err = runVerify(args[1], args[2], out)
	default:
		fmt.Fprintf(os.Stderr, "memsyn: unknown subcommand %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "memsyn: %v\n", err)
		os.Exit(1)
	}
}
