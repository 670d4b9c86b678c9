package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/oasnav/oasnav/internal/cliutil"
)

// HandleNav implements the "nav" command: print the navigation tree.
func HandleNav(args []string) error {
	return runNav(args, os.Stdout)
}

func runNav(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("nav", flag.ContinueOnError)

	var nav NavFlags
	nav.register(fs)
	format := fs.String("format", FormatText, "Output format: text, json, yaml")
	depth := fs.Int("depth", 0, "Maximum outline depth (0 = unlimited)")
	ids := fs.Bool("ids", false, "Print ids next to titles")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasnav nav [flags] <file|->...\n\n")
		_, _ = fmt.Fprintf(output, "Print the sidebar navigation of one or more OpenAPI documents.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasnav nav openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasnav nav --ids --depth 3 openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasnav nav --format json public.yaml admin.yaml\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(*format); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("nav command requires at least one file path")
	}

	logger := nav.logger()
	opts, err := nav.options(logger)
	if err != nil {
		return err
	}
	store, err := loadWorkspace(fs.Args(), &nav, logger)
	if err != nil {
		return err
	}
	entries, err := store.Navigation(opts...)
	if err != nil {
		return fmt.Errorf("nav: %w", err)
	}

	if *format != FormatText {
		return RenderStructured(w, entries, *format)
	}
	cliutil.WriteOutline(w, entries, cliutil.OutlineOptions{MaxDepth: *depth, IDs: *ids})
	return nil
}
