// Package commands provides CLI command handlers for oasnav.
package commands

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/navigation"
	"github.com/oasnav/oasnav/workspace"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdinName names a document read from stdin when --name is not given.
const stdinName = "stdin"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for a document argument.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// NavFlags contains the traversal flags shared by every command that
// builds a navigation tree.
type NavFlags struct {
	Name             string // Document name (single input only).
	HideModels       bool   // Omit the Models section.
	NoExamples       bool   // Do not attach examples to operations.
	OperationsSorter string // alpha, method or none.
	TagsSorter       string // alpha or none.
	Strict           bool   // Fail on id collisions.
	Verbose          bool   // Debug logging to stderr.
}

func (f *NavFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.Name, "name", "", "Document name; its slug prefixes every id (default: file base name)")
	fs.BoolVar(&f.HideModels, "hide-models", false, "Omit the Models section")
	fs.BoolVar(&f.NoExamples, "no-examples", false, "Do not list examples under operations")
	fs.StringVar(&f.OperationsSorter, "operations-sorter", navigation.SorterAlpha, "Order inside a tag: alpha, method, none")
	fs.StringVar(&f.TagsSorter, "tags-sorter", navigation.SorterAlpha, "Order of top-level tags: alpha, none")
	fs.BoolVar(&f.Strict, "strict", false, "Fail when two entries would get the same id")
	fs.BoolVar(&f.Verbose, "verbose", false, "Log debug output to stderr")
}

// logger returns a stderr logger at warn level, or debug with --verbose.
func (f *NavFlags) logger() document.Logger {
	level := slog.LevelWarn
	if f.Verbose {
		level = slog.LevelDebug
	}
	return document.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// options converts the flags to traversal options.
func (f *NavFlags) options(logger document.Logger) ([]navigation.Option, error) {
	ops, err := navigation.ParseOperationsSorter(f.OperationsSorter)
	if err != nil {
		return nil, err
	}
	tags, err := navigation.ParseTagsSorter(f.TagsSorter)
	if err != nil {
		return nil, err
	}
	return []navigation.Option{
		navigation.WithHideModels(f.HideModels),
		navigation.WithExamples(!f.NoExamples),
		navigation.WithOperationsSorter(ops),
		navigation.WithTagsSorter(tags),
		navigation.WithStrictIDs(f.Strict),
		navigation.WithLogger(logger),
	}, nil
}

// documentName derives a document name from its path.
func documentName(path string) string {
	if path == StdinFilePath {
		return stdinName
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loadWorkspace parses every path ("-" for stdin) into a new store, in
// argument order.
func loadWorkspace(paths []string, f *NavFlags, logger document.Logger) (*workspace.Store, error) {
	if f.Name != "" && len(paths) > 1 {
		return nil, fmt.Errorf("--name requires exactly one input file")
	}
	store := workspace.New(workspace.WithLogger(logger))
	for _, path := range paths {
		name := documentName(path)
		if f.Name != "" {
			name = f.Name
		}
		if err := loadDocument(store, name, path, logger); err != nil {
			return nil, fmt.Errorf("loading %s: %w", FormatSpecPath(path), err)
		}
	}
	return store, nil
}

func loadDocument(store *workspace.Store, name, path string, logger document.Logger) error {
	if path != StdinFilePath {
		return store.Load(name, path)
	}
	result, err := document.ParseWithOptions(
		document.WithReader(os.Stdin),
		document.WithSourceName("<stdin>"),
		document.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return store.Add(name, result.Document)
}
