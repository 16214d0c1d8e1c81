/*
Snprun loads an SN P-system program and runs it against an input multiset.

Usage:

	snprun [flags] PROGRAM

The flags are:

	-i, --input STRING
		The input multiset, given as a separated list of symbols. Defaults to
		the empty multiset.

	--separator STRING
		The separator between symbols in --input. Defaults to ",".

	--no-strip
		Do not trim whitespace from each symbol in --input before counting it.

	-m, --mode STRING
		Reporting mode: one of "halt", "halt-mc", "time", "time-mc". Defaults
		to "halt".

	--max-steps INT
		Stop the simulation after this many steps even if it has not reached
		quiescence. Zero (the default) means unbounded.

	--render
		Write one Graphviz DOT snapshot per step to --render-path.

	--render-path STRING
		Directory render snapshots are written under. Defaults to the
		current directory.

	-r, --repeat INT
		Run the simulation this many times and print one result per run.
		Defaults to 1.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/snpsim/internal/render"
	"github.com/dekarrin/snpsim/internal/snp"
	"github.com/dekarrin/snpsim/internal/snperr"
	"github.com/dekarrin/snpsim/internal/snpw"
	"github.com/dekarrin/snpsim/internal/util"
	"github.com/dekarrin/snpsim/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or a malformed invocation.
	ExitUsageError

	// ExitLoadError indicates the program file could not be loaded or built.
	ExitLoadError

	// ExitRunError indicates a problem during simulation.
	ExitRunError
)

const consoleOutputWidth = 80

var (
	returnCode int = ExitSuccess

	flagInput      *string = pflag.StringP("input", "i", "", "The input multiset, as a separated list of symbols")
	flagSeparator  *string = pflag.String("separator", ",", "The separator between symbols in --input")
	flagNoStrip    *bool   = pflag.Bool("no-strip", false, "Do not trim whitespace from each input symbol")
	flagMode       *string = pflag.StringP("mode", "m", "halt", "Reporting mode: halt, halt-mc, time, time-mc")
	flagMaxSteps   *int    = pflag.Int("max-steps", 0, "Stop after this many steps; 0 means unbounded")
	flagRender     *bool   = pflag.Bool("render", false, "Write one DOT snapshot per step")
	flagRenderPath *string = pflag.String("render-path", ".", "Directory render snapshots are written under")
	flagRepeat     *int    = pflag.IntP("repeat", "r", 1, "Run the simulation this many times")
	flagVersion    *bool   = pflag.BoolP("version", "v", false, "Give the current version and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if pflag.NArg() != 1 {
		fail(ExitUsageError, snperr.Newf(snperr.TypeError, "cli", "expected exactly one positional argument: the program path"))
		return
	}
	programPath := pflag.Arg(0)

	mode, err := parseMode(*flagMode)
	if err != nil {
		fail(ExitUsageError, err)
		return
	}

	sys, err := snpw.LoadFile(programPath)
	if err != nil {
		fail(ExitLoadError, err)
		return
	}

	input := snpw.ParseInput(*flagInput, *flagSeparator, !*flagNoStrip)

	var maxSteps *int
	if *flagMaxSteps > 0 {
		maxSteps = flagMaxSteps
	}

	var renderer snp.Renderer
	if *flagRender {
		w, err := render.NewDirWriter(*flagRenderPath)
		if err != nil {
			fail(ExitRunError, err)
			return
		}
		renderer = w
	}

	for i := 0; i < *flagRepeat; i++ {
		result := sys.Run(input, mode, snp.RunOptions{MaxSteps: maxSteps, Renderer: renderer})
		fmt.Println(formatResult(result))
	}
}

func parseMode(raw string) (snp.Mode, error) {
	switch snp.Mode(raw) {
	case snp.Halt, snp.HaltMC, snp.Time, snp.TimeMC:
		return snp.Mode(raw), nil
	default:
		valid := util.MakeTextList([]string{"halt", "halt-mc", "time", "time-mc"})
		return "", snperr.Newf(snperr.TypeError, "cli", "unrecognized mode %q: expected one of %s", raw, valid)
	}
}

func formatResult(r snp.Result) string {
	switch r.Mode {
	case snp.Halt:
		return fmt.Sprintf("%v", r.Final.Elements())
	case snp.HaltMC:
		return fmt.Sprintf("%v", r.Merged)
	case snp.Time:
		return fmt.Sprintf("%v", r.PerStep)
	default: // TimeMC
		return fmt.Sprintf("%v", r.History)
	}
}

func fail(code int, err error) {
	msg := rosed.Edit(err.Error()).Wrap(consoleOutputWidth).String()
	fmt.Fprintf(os.Stderr, "%s\n", msg)
	returnCode = code
}
