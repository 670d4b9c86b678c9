package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/oasnav/oasnav/internal/cliutil"
	"github.com/oasnav/oasnav/sidebar"
)

type selectResult struct {
	Selected  []string      `json:"selected" yaml:"selected"`
	Expanded  []string      `json:"expanded" yaml:"expanded"`
	Navigated *targetResult `json:"navigated,omitempty" yaml:"navigated,omitempty"`
}

type targetResult struct {
	Name   string            `json:"name" yaml:"name"`
	Params map[string]string `json:"params" yaml:"params"`
}

// HandleSelect implements the "select" command: compute the sidebar
// selection for a route or a click.
func HandleSelect(args []string) error {
	return runSelect(args, os.Stdout)
}

func runSelect(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)

	var nav NavFlags
	nav.register(fs)
	format := fs.String("format", FormatText, "Output format: text, json, yaml")
	doc := fs.String("document", "", "Route document slug (default: the first document)")
	path := fs.String("path", "", "Route path template, e.g. /pets/{id}")
	method := fs.String("method", "", "Route HTTP method")
	example := fs.String("example", "", "Route example name")
	webhook := fs.String("webhook", "", "Route webhook name (with --method)")
	var items stringList
	fs.Var(&items, "item", "Click this id; repeat to click several in order")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasnav select [flags] <file|->...\n\n")
		_, _ = fmt.Fprintf(output, "Compute the sidebar selection for a route, or for a sequence of clicks.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasnav select --path /pets --method get openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasnav select --item openapi/tag/pets --item openapi/tag/pets/GET/pets openapi.yaml\n")
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
		return fmt.Errorf("select command requires at least one file path")
	}
	if len(items) > 0 && (*path != "" || *webhook != "" || *method != "" || *example != "") {
		return fmt.Errorf("--item cannot be combined with route flags")
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

	var last *sidebar.Target
	router := sidebar.RouterFunc(func(t sidebar.Target) error {
		last = &t
		return nil
	})
	app, err := sidebar.NewApp(store,
		sidebar.WithRouter(router),
		sidebar.WithLogger(logger),
		sidebar.WithNavigationOptions(opts...),
	)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	defer app.Close()

	if len(items) > 0 {
		for _, id := range items {
			if _, ok := app.Get(id); !ok {
				return fmt.Errorf("select: unknown id %q", id)
			}
			if err := app.HandleSelectItem(id); err != nil {
				return err
			}
		}
	} else {
		slug := *doc
		if slug == "" {
			slug = store.Ordered()[0].Slug
		}
		app.SetRoute(sidebar.Route{
			DocumentSlug: slug,
			Path:         *path,
			Method:       *method,
			ExampleName:  *example,
			WebhookName:  *webhook,
		})
	}

	result := selectResult{Selected: app.Selected()}
	for id, open := range app.ExpandedItems() {
		if open {
			result.Expanded = append(result.Expanded, id)
		}
	}
	slices.Sort(result.Expanded)
	if last != nil {
		result.Navigated = &targetResult{Name: last.Name, Params: last.Params}
	}

	if *format != FormatText {
		return RenderStructured(w, result, *format)
	}
	renderSelect(w, app, result)
	return nil
}

func renderSelect(w io.Writer, app *sidebar.App, result selectResult) {
	if len(result.Selected) == 0 {
		cliutil.Writef(w, "Nothing selected.\n")
	} else {
		cliutil.Writef(w, "Selected:\n")
		// Root first, leaf last.
		for i, id := range slices.Backward(result.Selected) {
			e, _ := app.Get(id)
			cliutil.Writef(w, "%s%s  [%s]\n", cliutil.Indent(len(result.Selected)-i), cliutil.OutlineLabel(e), id)
		}
	}
	if result.Navigated != nil {
		keys := slices.Sorted(maps.Keys(result.Navigated.Params))
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + result.Navigated.Params[k]
		}
		cliutil.Writef(w, "Navigate: %s %s\n", result.Navigated.Name, strings.Join(parts, " "))
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
