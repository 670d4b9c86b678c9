package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasnav/oasnav/internal/cliutil"
	"github.com/oasnav/oasnav/navigation"
)

type navigationInput struct {
	Spec     specInput  `json:"spec"                jsonschema:"The OAS document to traverse"`
	Options  navOptions `json:"options,omitempty"   jsonschema:"Traversal options (defaults from OASNAV_* env vars)"`
	Root     string     `json:"root,omitempty"      jsonschema:"Only list entries below this id"`
	MaxDepth int        `json:"max_depth,omitempty" jsonschema:"Maximum nesting depth below root (0 = unlimited)"`
	Type     string     `json:"type,omitempty"      jsonschema:"Filter by entry type (document\\, text\\, tag\\, operation\\, webhook\\, model\\, example)"`
	GroupBy  string     `json:"group_by,omitempty"  jsonschema:"Return counts grouped by this field instead of entries. Values: type\\, parent"`
	Outline  bool       `json:"outline,omitempty"   jsonschema:"Return an indented text outline instead of entries"`
	Limit    int        `json:"limit,omitempty"     jsonschema:"Maximum number of entries to return (default 100)"`
	Offset   int        `json:"offset,omitempty"    jsonschema:"Skip the first N entries (for pagination)"`
}

// navItem is one navigation entry without its subtree.
type navItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Depth      int    `json:"depth"`
	Parent     string `json:"parent,omitempty"`
	Children   int    `json:"children,omitempty"`
	Method     string `json:"method,omitempty"`
	Path       string `json:"path,omitempty"`
	Name       string `json:"name,omitempty"`
	Ref        string `json:"ref,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`
	Group      bool   `json:"group,omitempty"`
}

type navigationOutput struct {
	Document string       `json:"document"`
	Title    string       `json:"title,omitempty"`
	Version  string       `json:"version,omitempty"`
	Total    int          `json:"total"`
	Matched  int          `json:"matched"`
	Returned int          `json:"returned"`
	Items    []navItem    `json:"items,omitempty"`
	Groups   []groupCount `json:"groups,omitempty"`
	Outline  string       `json:"outline,omitempty"`
}

var navigationGroupBy = []string{"type", "parent"}

func handleNavigation(_ context.Context, _ *mcp.CallToolRequest, input navigationInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, input.Outline, navigationGroupBy); err != nil {
		return errResult(err), nil, nil
	}
	l, err := input.Spec.resolve(input.Options)
	if err != nil {
		return errResult(err), nil, nil
	}

	scope, parent, err := l.scope(input.Root)
	if err != nil {
		return errResult(err), nil, nil
	}

	output := navigationOutput{
		Document: l.slug,
		Title:    l.parse.Document.Title(),
		Version:  l.parse.Version,
	}

	if input.Outline {
		var b strings.Builder
		cliutil.WriteOutline(&b, scope, cliutil.OutlineOptions{MaxDepth: input.MaxDepth, IDs: true})
		output.Total = len(navigation.Flatten(scope))
		output.Outline = b.String()
		return nil, output, nil
	}

	var all []navItem
	collectItems(scope, parent, 0, input.MaxDepth, &all)
	output.Total = len(all)

	matched := all
	if input.Type != "" {
		matched = nil
		for _, it := range all {
			if strings.EqualFold(it.Type, input.Type) {
				matched = append(matched, it)
			}
		}
	}
	output.Matched = len(matched)

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(it navItem) []string {
			if strings.EqualFold(input.GroupBy, "parent") {
				return []string{it.Parent}
			}
			return []string{it.Type}
		})
		return nil, output, nil
	}

	returned := paginate(matched, input.Offset, input.Limit)
	output.Returned = len(returned)
	output.Items = returned
	return nil, output, nil
}

// scope returns the entries below root (or the whole document tree) and
// the id their depth is counted from.
func (l *loaded) scope(root string) ([]*navigation.Entry, string, error) {
	if root == "" {
		return l.entries, "", nil
	}
	e := navigation.Find(l.entries, root)
	if e == nil {
		return nil, "", fmt.Errorf("unknown navigation id %q", root)
	}
	return e.Children, e.ID, nil
}

// collectItems appends entries depth-first. maxDepth counts levels below
// the starting depth; 0 means unlimited.
func collectItems(entries []*navigation.Entry, parent string, depth, maxDepth int, out *[]navItem) {
	for _, e := range entries {
		*out = append(*out, newNavItem(e, parent, depth))
		if maxDepth <= 0 || depth+1 < maxDepth {
			collectItems(e.Children, e.ID, depth+1, maxDepth, out)
		}
	}
}

func newNavItem(e *navigation.Entry, parent string, depth int) navItem {
	return navItem{
		ID:         e.ID,
		Title:      e.Title,
		Type:       string(e.Type),
		Depth:      depth,
		Parent:     parent,
		Children:   len(e.Children),
		Method:     strings.ToUpper(e.Method),
		Path:       e.Path,
		Name:       e.Name,
		Ref:        e.Ref,
		Deprecated: e.IsDeprecated,
		Group:      e.IsGroup,
	}
}
