// Package search provides fuzzy search over workspace navigation.
//
// Build flattens each document's navigation into Entry values (headings,
// tags, tag groups, operations, webhooks and models) enriched with the
// operation id and description from the source document, and ranks them
// with github.com/sahilm/fuzzy.
//
//	ix, err := search.Build(store)
//	if err != nil {
//		return err
//	}
//	for _, r := range ix.Search("list pets", 10) {
//		fmt.Println(r.Title, r.ID)
//	}
package search
