package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/oasnav/oasnav/internal/cliutil"
	"github.com/oasnav/oasnav/search"
)

// HandleSearch implements the "search" command: fuzzy-find navigation items.
func HandleSearch(args []string) error {
	return runSearch(args, os.Stdout)
}

func runSearch(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)

	var nav NavFlags
	nav.register(fs)
	format := fs.String("format", FormatText, "Output format: text, json, yaml")
	limit := fs.Int("limit", 20, "Maximum number of results (0 = all)")
	typ := fs.String("type", "", "Only results of this type: heading, tag, operation, webhook, model")
	var quiet bool
	fs.BoolVar(&quiet, "quiet", false, "Suppress headers for piping")
	fs.BoolVar(&quiet, "q", false, "Suppress headers for piping (shorthand)")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasnav search [flags] <query> <file|->...\n\n")
		_, _ = fmt.Fprintf(output, "Fuzzy-search headings, tags, operations, webhooks and models.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasnav search pets openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasnav search --type operation \"create pet\" openapi.yaml\n")
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
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("search command requires a query and at least one file path")
	}
	query := strings.TrimSpace(fs.Arg(0))
	if query == "" {
		return fmt.Errorf("search query must not be empty")
	}

	logger := nav.logger()
	opts, err := nav.options(logger)
	if err != nil {
		return err
	}
	store, err := loadWorkspace(fs.Args()[1:], &nav, logger)
	if err != nil {
		return err
	}
	index, err := search.Build(store, opts...)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	var results []search.Result
	for _, r := range index.Search(query, 0) {
		if *typ != "" && !strings.EqualFold(r.Type, *typ) {
			continue
		}
		results = append(results, r)
		if *limit > 0 && len(results) == *limit {
			break
		}
	}

	if *format != FormatText {
		return RenderStructured(w, results, *format)
	}
	if len(results) == 0 {
		if !quiet {
			cliutil.Writef(os.Stderr, "No results for %q.\n", query)
		}
		return nil
	}
	rows := make([][]string, len(results))
	for i, r := range results {
		title := r.Title
		if r.Method != "" {
			title = strings.ToUpper(r.Method) + " " + title
		}
		rows[i] = []string{strconv.Itoa(r.Score), r.Type, title, r.ID}
	}
	RenderTable(w, []string{"SCORE", "TYPE", "TITLE", "ID"}, rows, quiet)
	return nil
}
