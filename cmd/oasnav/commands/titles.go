package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oasnav/oasnav/navigation"
)

type titleRow struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Type  string `json:"type" yaml:"type"`
}

// HandleTitles implements the "titles" command: list every id with its title.
func HandleTitles(args []string) error {
	return runTitles(args, os.Stdout)
}

func runTitles(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("titles", flag.ContinueOnError)

	var nav NavFlags
	nav.register(fs)
	format := fs.String("format", FormatText, "Output format: text, json, yaml")
	prefix := fs.String("prefix", "", "Only ids starting with this prefix")
	var quiet bool
	fs.BoolVar(&quiet, "quiet", false, "Suppress headers for piping")
	fs.BoolVar(&quiet, "q", false, "Suppress headers for piping (shorthand)")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasnav titles [flags] <file|->...\n\n")
		_, _ = fmt.Fprintf(output, "List every navigation id with its display title.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
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
		return fmt.Errorf("titles command requires at least one file path")
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
		return fmt.Errorf("titles: %w", err)
	}

	var rows []titleRow
	for _, e := range navigation.Flatten(entries) {
		if *prefix != "" && !strings.HasPrefix(e.ID, *prefix) {
			continue
		}
		rows = append(rows, titleRow{ID: e.ID, Title: e.Title, Type: string(e.Type)})
	}

	if *format != FormatText {
		return RenderStructured(w, rows, *format)
	}
	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{r.Type, r.ID, r.Title}
	}
	RenderTable(w, []string{"TYPE", "ID", "TITLE"}, table, quiet)
	return nil
}
