/*
Tinylangc compiles a single source file through the scanner, parser, and
semantic analyser, writing its report artifacts to an output directory.

Usage:

	tinylangc [flags] SOURCE

The flags are:

	-v, --version
		Give the current version of the compiler and then exit.

	-o, --output-dir DIR
		Write report artifacts under DIR instead of the current directory.

	-d, --dialect-config FILE
		Load scanner feature flags from the given TOML file instead of using
		the canonical dialect's defaults.

	--binary-snapshot
		Additionally write a binary-encoded symbol table snapshot.

	--verbose
		Log each diagnostic once compilation has finished, in addition to
		the final summary banner.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/tinylang"
	"github.com/dekarrin/tinylang/internal/dialect"
	"github.com/dekarrin/tinylang/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitCompileError indicates the run completed but recorded at least one
	// lexical, syntax, or semantic diagnostic.
	ExitCompileError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue reading input or writing reports.
	ExitInitError
)

var (
	returnCode      int     = ExitSuccess
	flagVersion     *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagOutputDir   *string = pflag.StringP("output-dir", "o", ".", "Directory to write report artifacts under")
	flagDialectFile *string = pflag.StringP("dialect-config", "d", "", "TOML file selecting scanner dialect flags")
	flagSnapshot    *bool   = pflag.Bool("binary-snapshot", false, "Also write a binary symbol table snapshot")
	flagVerbose     *bool   = pflag.Bool("verbose", false, "Log each diagnostic once compilation finishes")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: no source file given")
		returnCode = ExitInitError
		return
	}
	sourcePath := pflag.Arg(0)

	dialectCfg := dialect.Default()
	if *flagDialectFile != "" {
		if !dialect.Exists(*flagDialectFile) {
			fmt.Fprintf(os.Stderr, "ERROR: dialect config %q does not exist\n", *flagDialectFile)
			returnCode = ExitInitError
			return
		}
		cfg, err := dialect.Load(*flagDialectFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		dialectCfg = cfg
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer src.Close()

	c := tinylang.New(tinylang.Options{
		OutputDir:           *flagOutputDir,
		Dialect:             dialectCfg,
		WriteBinarySnapshot: *flagSnapshot,
		Verbose:             *flagVerbose,
	})

	result, err := c.Compile(src, sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if err := c.WriteReports(result); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	fmt.Println(tinylang.Banner(result))
	if result.Failed() {
		returnCode = ExitCompileError
	}
}
