package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasnav/oasnav/navigation"
)

type titlesInput struct {
	Spec    specInput  `json:"spec"              jsonschema:"The OAS document to traverse"`
	Options navOptions `json:"options,omitempty" jsonschema:"Traversal options (defaults from OASNAV_* env vars)"`
	Prefix  string     `json:"prefix,omitempty"  jsonschema:"Only ids starting with this prefix"`
	Limit   int        `json:"limit,omitempty"   jsonschema:"Maximum number of titles to return (default 100)"`
	Offset  int        `json:"offset,omitempty"  jsonschema:"Skip the first N titles (for pagination)"`
}

type titleItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type titlesOutput struct {
	Total    int         `json:"total"`
	Matched  int         `json:"matched"`
	Returned int         `json:"returned"`
	Titles   []titleItem `json:"titles,omitempty"`
}

func handleTitles(_ context.Context, _ *mcp.CallToolRequest, input titlesInput) (*mcp.CallToolResult, any, error) {
	l, err := input.Spec.resolve(input.Options)
	if err != nil {
		return errResult(err), nil, nil
	}

	all := navigation.Flatten(l.entries)
	var matched []titleItem
	for _, e := range all {
		if input.Prefix != "" && !strings.HasPrefix(e.ID, input.Prefix) {
			continue
		}
		matched = append(matched, titleItem{ID: e.ID, Title: e.Title})
	}

	returned := paginate(matched, input.Offset, input.Limit)
	return nil, titlesOutput{
		Total:    len(all),
		Matched:  len(matched),
		Returned: len(returned),
		Titles:   returned,
	}, nil
}
