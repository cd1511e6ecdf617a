// Command tnucheck is a thin CLI driver over graphml+engine: it contains
// no algorithmic logic of its own, just flag parsing, I/O, and exit codes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/tnucheck/engine"
	"github.com/katalvlaran/tnucheck/graphml"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tnucheck", flag.ContinueOnError)
	output := fs.String("o", "", "write the checked graph as GraphML to this path")
	reactionTime := fs.Int64("r", 0, "minimum delay between observation and reaction")
	timeout := fs.Int64("t", 0, "wall-clock timeout in seconds (0 disables)")
	cleaned := fs.Bool("cleaned", false, "prune empty/unknown entries from the returned graph")
	verbose := fs.Bool("v", false, "print propagation counters to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tnucheck [-o out] [-r reactionTime] [-t timeoutSeconds] [-cleaned] [-v] <input.graphml>")
		return 2
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "tnucheck: %v\n", err)
		return 2
	}
	defer in.Close()

	g, err := graphml.Read(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tnucheck: %v\n", err)
		return 2
	}

	var opts []engine.Option
	if *reactionTime > 0 {
		opts = append(opts, engine.WithReactionTime(*reactionTime))
	}
	if *timeout > 0 {
		opts = append(opts, engine.WithTimeout(*timeout))
	}
	if *cleaned {
		opts = append(opts, engine.WithCleaned())
	}

	checked, status, err := engine.New(g, opts...).Run()
	var illDefined *engine.IllDefinedError
	if errors.As(err, &illDefined) {
		fmt.Fprintf(os.Stderr, "tnucheck: %v\n", illDefined)
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tnucheck: %v\n", err)
		return 2
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "cycles=%d r0=%d r3=%d lp=%d elapsed=%s\n",
			status.Cycles, status.R0Calls, status.R3Calls, status.LabeledValuePropagationCalls, status.Elapsed)
	}

	if *output != "" {
		out, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tnucheck: %v\n", err)
			return 2
		}
		defer out.Close()
		if err := graphml.Write(out, checked); err != nil {
			fmt.Fprintf(os.Stderr, "tnucheck: %v\n", err)
			return 2
		}
	}

	switch {
	case status.Timeout:
		fmt.Fprintln(os.Stderr, "tnucheck: timed out")
		return 2
	case status.Consistency:
		fmt.Println("consistent")
		return 0
	default:
		fmt.Printf("inconsistent (witness node: %s)\n", status.NegativeLoopNode)
		return 1
	}
}
