package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasnav/oasnav/search"
)

type searchInput struct {
	Spec    specInput  `json:"spec"              jsonschema:"The OAS document to search"`
	Options navOptions `json:"options,omitempty" jsonschema:"Traversal options (defaults from OASNAV_* env vars)"`
	Query   string     `json:"query"             jsonschema:"Fuzzy search query"`
	Type    string     `json:"type,omitempty"    jsonschema:"Filter by result type (heading\\, tag\\, operation\\, webhook\\, model)"`
	Limit   int        `json:"limit,omitempty"   jsonschema:"Maximum number of results to return (default 100)"`
}

type searchOutput struct {
	Query    string          `json:"query"`
	Indexed  int             `json:"indexed"`
	Matched  int             `json:"matched"`
	Returned int             `json:"returned"`
	Results  []search.Result `json:"results,omitempty"`
}

func handleSearch(_ context.Context, _ *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, any, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return errResult(fmt.Errorf("query is required")), nil, nil
	}
	l, err := input.Spec.resolve(input.Options)
	if err != nil {
		return errResult(err), nil, nil
	}

	matched := l.index.Search(query, 0)
	if input.Type != "" {
		filtered := matched[:0:0]
		for _, r := range matched {
			if strings.EqualFold(r.Type, input.Type) {
				filtered = append(filtered, r)
			}
		}
		matched = filtered
	}

	returned := paginate(matched, 0, input.Limit)
	return nil, searchOutput{
		Query:    query,
		Indexed:  l.index.Len(),
		Matched:  len(matched),
		Returned: len(returned),
		Results:  returned,
	}, nil
}
