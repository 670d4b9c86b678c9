// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasnav navigation over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasnav/oasnav"
	"github.com/oasnav/oasnav/document"
)

const serverInstructions = `oasnav MCP server: builds the navigation tree of an OpenAPI document (headings, tags, operations, webhooks, models) and answers questions about it.

Every tool takes a spec object with exactly one of file or content. Ids are prefixed with the document slug (spec.name, default: the file base name or "api").

Configuration: All defaults are configurable via OASNAV_* environment variables set in your MCP client config.

Key settings:
- OASNAV_CACHE_ENABLED (default: true): disable result caching entirely
- OASNAV_CACHE_FILE_TTL (default: 15m): cache TTL for file input
- OASNAV_CACHE_CONTENT_TTL (default: 15m): cache TTL for inline content
- OASNAV_MAX_INPUT_SIZE (default: 10MiB): largest accepted document
- OASNAV_LIST_LIMIT (default: 100): default page size for navigation and titles
- OASNAV_HIDE_MODELS, OASNAV_EXAMPLES, OASNAV_OPERATIONS_SORTER, OASNAV_TAGS_SORTER: traversal defaults

Caching: Results are cached per session, keyed by the SHA-256 of the document bytes and the traversal options. A background sweeper removes expired entries every 60s.`

// logger is the server-wide logger, replaced by Run.
var logger document.Logger = document.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	logger = document.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	if cfg.CacheEnabled {
		navCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasnav", Version: oasnav.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	logger.Info("mcpserver: serving on stdio", "version", oasnav.Version())
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "navigation",
		Description: "Build the sidebar navigation of an OpenAPI document. Returns entries depth-first with id, title, type, depth and parent: description headings, tags and tag groups with their operations and webhooks, then the Webhooks and Models sections. Use root to list only the subtree under one id, max_depth to limit nesting, and offset/limit to paginate. Set outline=true for an indented text rendering.",
	}, handleNavigation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "titles",
		Description: "List every navigation id with its display title, in traversal order. Use offset/limit to paginate.",
	}, handleTitles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup",
		Description: "Look up one navigation id. Returns the entry, its ancestors (nearest first), its direct children, and the route it navigates to (document slug, path, method, webhook name, example name).",
	}, handleLookup)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Fuzzy-search headings, tags, operations, webhooks and models by title, path, method, operationId and description. Results are ranked best first.",
	}, handleSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select",
		Description: "Compute sidebar selection. Give path+method (and optionally example) or webhook+method to sync to a route, or item to simulate a click on an id. Returns the selection chain (leaf first), the expanded ids, and for clicks the route the sidebar would navigate to. An unknown example falls back to the operation; an unknown operation falls back to the document.",
	}, handleSelect)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with outline.
func validateGroupBy(groupBy string, outline bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if outline {
		return fmt.Errorf("cannot use both group_by and outline")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}
