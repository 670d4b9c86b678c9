// Package workspace holds a set of named OpenAPI documents and builds their
// combined navigation.
//
// A Store keeps documents in insertion order. The x-scalar-order setting,
// written with Update, lists document names to show first; the rest follow
// in store order. Each document's navigation ids are prefixed with its slug,
// so ids stay unique across the workspace:
//
//	store := workspace.New()
//	if err := store.Load("Pet Store", "petstore.yaml"); err != nil {
//		log.Fatal(err)
//	}
//	store.Update(document.ExtOrder, []string{"Pet Store"})
//	entries, err := store.Navigation()
//
// Subscribers are notified after every change. A Watcher reloads documents
// from disk as their files change and replaces them in the store.
package workspace
