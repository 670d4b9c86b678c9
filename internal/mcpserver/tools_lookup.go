package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasnav/oasnav/sidebar"
)

type lookupInput struct {
	Spec    specInput  `json:"spec"              jsonschema:"The OAS document to traverse"`
	Options navOptions `json:"options,omitempty" jsonschema:"Traversal options (defaults from OASNAV_* env vars)"`
	ID      string     `json:"id"                jsonschema:"The navigation id to look up"`
}

// locationOutput is the route an entry navigates to.
type locationOutput struct {
	DocumentSlug string `json:"document_slug"`
	Path         string `json:"path,omitempty"`
	Method       string `json:"method,omitempty"`
	WebhookName  string `json:"webhook_name,omitempty"`
	ExampleName  string `json:"example_name,omitempty"`
}

type lookupOutput struct {
	Entry     navItem         `json:"entry"`
	Ancestors []titleItem     `json:"ancestors,omitempty"`
	Children  []titleItem     `json:"children,omitempty"`
	Location  *locationOutput `json:"location,omitempty"`
}

func handleLookup(_ context.Context, _ *mcp.CallToolRequest, input lookupInput) (*mcp.CallToolResult, any, error) {
	if input.ID == "" {
		return errResult(fmt.Errorf("id is required")), nil, nil
	}
	l, err := input.Spec.resolve(input.Options)
	if err != nil {
		return errResult(err), nil, nil
	}
	app, err := l.app(nil)
	if err != nil {
		return errResult(err), nil, nil
	}
	defer app.Close()

	e, ok := app.Get(input.ID)
	if !ok {
		return errResult(fmt.Errorf("unknown navigation id %q", input.ID)), nil, nil
	}

	chain := app.Ancestors(input.ID)
	output := lookupOutput{}
	var parent string
	if len(chain) > 1 {
		parent = chain[1]
		output.Ancestors = entryTitles(app, chain[1:])
	}
	output.Entry = newNavItem(e, parent, len(chain)-1)

	output.Children = makeSlice[titleItem](len(e.Children))
	for _, c := range e.Children {
		output.Children = append(output.Children, titleItem{ID: c.ID, Title: c.Title})
	}

	if loc, ok := app.Location(input.ID); ok {
		output.Location = newLocationOutput(loc)
	}
	return nil, output, nil
}

func newLocationOutput(loc sidebar.Location) *locationOutput {
	return &locationOutput{
		DocumentSlug: loc.DocumentSlug,
		Path:         loc.Path,
		Method:       loc.Method,
		WebhookName:  loc.WebhookName,
		ExampleName:  loc.ExampleName,
	}
}

// app builds a sidebar over the loaded store with the cached traversal
// options. The caller must Close it.
func (l *loaded) app(router sidebar.Router) (*sidebar.App, error) {
	opts := []sidebar.Option{
		sidebar.WithLogger(logger),
		sidebar.WithNavigationOptions(l.opts...),
	}
	if router != nil {
		opts = append(opts, sidebar.WithRouter(router))
	}
	return sidebar.NewApp(l.store, opts...)
}

// entryTitles maps ids to titles for chain rendering.
func entryTitles(app *sidebar.App, ids []string) []titleItem {
	out := makeSlice[titleItem](len(ids))
	for _, id := range ids {
		title := ""
		if e, ok := app.Get(id); ok {
			title = e.Title
		}
		out = append(out, titleItem{ID: id, Title: title})
	}
	return out
}
