// ffidecl generates C declaration catalogs for Go packages with cgo exports.
//
// It is meant to be run from a go:generate directive in the package:
//
//	//go:generate go run github.com/chazu/ffidecl/cmd/ffidecl
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("ffidecl")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ffidecl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	verbose := fs.Bool("v", false, "Verbose output")
	printOnly := fs.Bool("print", false, "Print the catalog to stdout instead of writing files")
	check := fs.Bool("check", false, "Fail if the generated files are missing or out of date")
	dump := fs.Bool("dump", false, "Dump the scanned signatures")
	direct := fs.Bool("direct", false, "Parse the directory directly instead of asking the go command")
	configPath := fs.String("config", "", "Path to ffidecl.toml (default: search upwards from the package)")
	namespace := fs.String("namespace", "", "Override the catalog namespace")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ffidecl [options] [dir|package]\n\n")
		fmt.Fprintf(stderr, "Scans a Go package for //export functions and writes ffidecls_gen.c and ffidecls_gen.go\n")
		fmt.Fprintf(stderr, "holding their C prototypes behind <namespace>_luajit_ffi_decls.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  ffidecl                 # current package\n")
		fmt.Fprintf(stderr, "  ffidecl -print ./lib    # show the catalog for ./lib\n")
		fmt.Fprintf(stderr, "  ffidecl -check ./lib    # CI: verify generated files are current\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	targets := fs.Args()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	opts := generateOptions{
		printOnly:  *printOnly,
		check:      *check,
		dump:       *dump,
		direct:     *direct,
		configPath: *configPath,
		namespace:  *namespace,
		stdout:     stdout,
	}

	status := 0
	for _, target := range targets {
		if err := generateTarget(target, opts); err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", target, err)
			status = 1
		}
	}
	return status
}
