package mcpserver

import (
	"context"
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasnav/oasnav/sidebar"
)

type selectInput struct {
	Spec    specInput  `json:"spec"              jsonschema:"The OAS document to traverse"`
	Options navOptions `json:"options,omitempty" jsonschema:"Traversal options (defaults from OASNAV_* env vars)"`
	Item    string     `json:"item,omitempty"    jsonschema:"Simulate a click on this navigation id"`
	Path    string     `json:"path,omitempty"    jsonschema:"Route path template (e.g. /pets/{id})"`
	Method  string     `json:"method,omitempty"  jsonschema:"Route HTTP method"`
	Example string     `json:"example,omitempty" jsonschema:"Route example name"`
	Webhook string     `json:"webhook,omitempty" jsonschema:"Route webhook name (with method)"`
}

// targetOutput is a navigation request the sidebar issued.
type targetOutput struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

type selectOutput struct {
	Leaf      string          `json:"leaf,omitempty"`
	Selected  []titleItem     `json:"selected,omitempty"`
	Expanded  []string        `json:"expanded,omitempty"`
	// Route is where the selected leaf resolves to, after fallbacks.
	Route     *locationOutput `json:"route,omitempty"`
	Navigated *targetOutput   `json:"navigated,omitempty"`
}

func handleSelect(_ context.Context, _ *mcp.CallToolRequest, input selectInput) (*mcp.CallToolResult, any, error) {
	if input.Item != "" && (input.Path != "" || input.Webhook != "" || input.Method != "" || input.Example != "") {
		return errResult(fmt.Errorf("item cannot be combined with path, method, example or webhook")), nil, nil
	}
	if input.Path != "" && input.Webhook != "" {
		return errResult(fmt.Errorf("path and webhook are mutually exclusive")), nil, nil
	}
	l, err := input.Spec.resolve(input.Options)
	if err != nil {
		return errResult(err), nil, nil
	}

	var pushed *sidebar.Target
	router := sidebar.RouterFunc(func(t sidebar.Target) error {
		pushed = &t
		return nil
	})
	app, err := l.app(router)
	if err != nil {
		return errResult(err), nil, nil
	}
	defer app.Close()

	if input.Item != "" {
		if _, ok := app.Get(input.Item); !ok {
			return errResult(fmt.Errorf("unknown navigation id %q", input.Item)), nil, nil
		}
		if err := app.HandleSelectItem(input.Item); err != nil {
			return errResult(err), nil, nil
		}
	} else {
		app.SetRoute(sidebar.Route{
			DocumentSlug: l.slug,
			Path:         input.Path,
			Method:       input.Method,
			ExampleName:  input.Example,
			WebhookName:  input.Webhook,
		})
	}

	chain := app.Selected()
	output := selectOutput{Selected: entryTitles(app, chain)}
	if len(chain) > 0 {
		output.Leaf = chain[0]
	}
	for id, open := range app.ExpandedItems() {
		if open {
			output.Expanded = append(output.Expanded, id)
		}
	}
	slices.Sort(output.Expanded)

	if output.Leaf != "" {
		if loc, ok := app.Location(output.Leaf); ok {
			output.Route = newLocationOutput(loc)
		}
	}
	if pushed != nil {
		output.Navigated = &targetOutput{Name: pushed.Name, Params: pushed.Params}
	}
	return nil, output, nil
}
