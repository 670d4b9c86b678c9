// Package sidebar keeps the selection and expansion state of a navigation
// tree in sync with the current route.
//
// State is the generic part: an index over a navigation tree with a
// selection chain (the selected id and its ancestors, leaf first) and a set
// of expanded ids. App binds a State to a workspace: it rebuilds the tree
// when documents change, maps routes (document slug, path, method, example
// name) to entries, and turns item clicks into Router pushes.
//
//	app, err := sidebar.NewApp(store, sidebar.WithRouter(router))
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//	app.SetRoute(sidebar.Route{DocumentSlug: "pets", Path: "/pets", Method: "get"})
//	fmt.Println(app.Selected())
package sidebar
