// Package oasnav builds reference-documentation sidebars from OpenAPI
// Specification documents.
//
// oasnav reads OAS 2.0 (Swagger), 3.0.x and 3.1.x documents in YAML or JSON
// and turns them into the navigation tree an API reference renders beside
// its content, together with the selection and expansion state that keeps
// the sidebar in step with the page being viewed.
//
// # Overview
//
// The library consists of these packages:
//
//   - document: Parse OpenAPI documents into an order-preserving model
//   - navigation: Traverse a document into a tree of headings, tags,
//     operations, webhooks, examples and models with stable ids
//   - workspace: Hold several named documents, order them, and reload
//     them when their files change
//   - sidebar: Track which entries are selected and expanded, sync them to
//     a route, and turn clicks into navigation requests
//   - search: Fuzzy-search the navigation entries of a workspace
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/oasnav/oasnav
//
// Install the CLI:
//
//	go install github.com/oasnav/oasnav/cmd/oasnav@latest
//
// # Quick Start
//
// Build the navigation of one document:
//
//	parsed, err := document.Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := navigation.TraverseDocument(parsed.Document)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, e := range navigation.Flatten(result.Entries) {
//		fmt.Println(e.ID, e.Title)
//	}
//
// Drive a sidebar over a workspace:
//
//	store := workspace.New()
//	if err := store.Load("Pet Store", "openapi.yaml"); err != nil {
//		log.Fatal(err)
//	}
//	app, err := sidebar.NewApp(store, sidebar.WithRouter(router))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer app.Close()
//	app.SetRoute(sidebar.Route{DocumentSlug: "pet-store", Path: "/pets", Method: "get"})
//	fmt.Println(app.Selected())
//
// # Command Line
//
// The oasnav command prints navigation trees (nav), id/title listings
// (titles), search results (search) and sidebar selections (select), follows
// files as they change (watch), and serves all of it to MCP clients (mcp).
package oasnav
