// Package navigation turns a parsed OpenAPI document into the tree a
// reference sidebar renders.
//
// # Overview
//
// TraverseDocument walks a *document.Document and produces a Result: an
// ordered tree of Entry values plus a Titles index mapping every entry id to
// its display title. Top-level entries appear in this order:
//
//   - description headings, nested by markdown level
//   - tags (or x-tagGroups groups containing tags), each holding operations
//     and webhooks, then the schemas that name the tag in x-tags
//   - a "Webhooks" section for webhooks that could not be filed under a tag
//   - a "Models" section holding the components.schemas without x-tags
//
// Operations without tags are filed under the "default" tag. Operations,
// webhooks, tags and schemas carrying x-internal: true or
// x-scalar-ignore: true are left out.
//
// # Ids
//
// Every entry gets an id from an IDStrategy. The default strategy derives
// ids from structure (tag name, method, path, schema name), so ids are
// stable across re-traversals of an edited document. DocumentIDStrategy
// prefixes ids with a document slug for multi-document workspaces. When
// two entries compute the same id the later one is suffixed "-2", "-3"
// and so on; WithStrictIDs turns the first collision into an error.
//
// # Ordering
//
// Tags are sorted with a TagsSorter and the children of each tag with an
// OperationsSorter. Both default to a case-insensitive alphabetical order by
// title; source order, method order and custom comparators are available.
//
// # Example
//
//	parsed, err := document.Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := navigation.TraverseDocument(parsed.Document,
//		navigation.WithExamples(true),
//		navigation.WithOperationsSorter(navigation.OperationsByMethod()),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	navigation.Walk(result.Entries, func(e, _ *navigation.Entry) navigation.Action {
//		fmt.Println(e.ID, e.Title)
//		return navigation.Continue
//	})
package navigation
