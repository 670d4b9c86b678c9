package main

import (
	"fmt"
	"os"

	"github.com/oasnav/oasnav"
	"github.com/oasnav/oasnav/cmd/oasnav/commands"
)

// commandNames lists every command main dispatches, for suggestions.
var commandNames = []string{"nav", "titles", "search", "select", "watch", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasnav v%s\n", oasnav.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "nav":
		err = commands.HandleNav(args)
	case "titles":
		err = commands.HandleTitles(args)
	case "search":
		err = commands.HandleSearch(args)
	case "select":
		err = commands.HandleSelect(args)
	case "watch":
		err = commands.HandleWatch(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `oasnav - OpenAPI sidebar navigation

Usage:
  oasnav <command> [flags] [args]

Commands:
  nav       Print the navigation tree of one or more documents
  titles    List every navigation id with its title
  search    Fuzzy-search navigation items
  select    Compute the sidebar selection for a route or clicks
  watch     Reprint the navigation whenever a file changes
  mcp       Start the MCP server on stdio
  version   Print the version
  help      Show this help

Run 'oasnav <command> --help' for command flags.

Examples:
  oasnav nav openapi.yaml
  oasnav titles --prefix openapi/tag/ openapi.yaml
  oasnav search "list pets" openapi.yaml
  oasnav select --path /pets --method get openapi.yaml
  cat openapi.yaml | oasnav nav -
`)
}
