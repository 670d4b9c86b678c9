package sidebar

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/navigation"
	"github.com/oasnav/oasnav/workspace"
)

// Route names pushed to the Router.
const (
	RouteDocumentOverview = "document.overview"
	RouteExample          = "example"
)

// Route parameter names.
const (
	ParamDocumentSlug = "documentSlug"
	ParamPathEncoded  = "pathEncoded"
	ParamMethod       = "method"
	ParamExampleName  = "exampleName"
)

// DefaultExampleName is pushed for operations without examples.
const DefaultExampleName = "default"

// Target is a navigation request sent to the Router.
type Target struct {
	Name   string
	Params map[string]string
}

// Router receives navigation requests from HandleSelectItem.
type Router interface {
	Push(target Target) error
}

// RouterFunc adapts a function to Router.
type RouterFunc func(target Target) error

// Push implements Router.
func (f RouterFunc) Push(target Target) error {
	return f(target)
}

type nopRouter struct{}

func (nopRouter) Push(Target) error { return nil }

// Source supplies document-wrapped navigation and change notifications.
// *workspace.Store implements it.
type Source interface {
	Navigation(opts ...navigation.Option) ([]*navigation.Entry, error)
	Subscribe(fn func(workspace.Event)) (unsubscribe func())
}

var _ Source = (*workspace.Store)(nil)

// Route is the current location of the view. Any field may be empty.
type Route struct {
	DocumentSlug string
	Path         string
	Method       string
	ExampleName  string
	// WebhookName selects a webhook (with Method) instead of an operation.
	WebhookName string
}

// Location is the route an indexed entry resolves to.
type Location struct {
	Type         navigation.EntryType
	DocumentSlug string
	Path         string
	Method       string
	WebhookName  string
	ExampleName  string
}

type locationKey struct {
	doc     string
	webhook bool
	target  string
	method  string
	example string
}

// Option configures an App.
type Option func(*App)

// WithRouter sets the router navigation requests are pushed to.
func WithRouter(r Router) Option {
	return func(a *App) {
		if r != nil {
			a.router = r
		}
	}
}

// WithLogger sets the logger for unknown ids and refresh failures.
func WithLogger(l document.Logger) Option {
	return func(a *App) {
		a.logger = document.OrNop(l)
	}
}

// WithNavigationOptions sets the traversal options used on every refresh.
func WithNavigationOptions(opts ...navigation.Option) Option {
	return func(a *App) {
		a.navOpts = opts
	}
}

// WithStateHooks sets the hooks of the underlying State. Hooks run while
// the App is locked and must not call back into it.
func WithStateHooks(h Hooks) Option {
	return func(a *App) {
		a.hooks = h
	}
}

// App is the sidebar of a workspace view. It keeps a State in sync with a
// Source and a Route, and turns item clicks into router pushes.
//
// App is safe for concurrent use; source changes are applied as they are
// notified.
type App struct {
	mu        sync.Mutex
	source    Source
	router    Router
	logger    document.Logger
	navOpts   []navigation.Option
	hooks     Hooks
	state     *State
	route     Route
	byKey     map[locationKey]string
	locations map[string]Location

	unsubscribe func()
}

// NewApp builds the sidebar from source and subscribes to its changes.
func NewApp(source Source, opts ...Option) (*App, error) {
	a := &App{
		source: source,
		router: nopRouter{},
		logger: document.NopLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.state = NewState(nil, WithHooks(a.hooks))
	if err := a.Refresh(); err != nil {
		return nil, err
	}
	a.unsubscribe = source.Subscribe(func(workspace.Event) {
		_ = a.Refresh()
	})
	return a, nil
}

// Close stops following source changes.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Refresh rebuilds the tree from the source and re-applies the current
// route. On error the previous tree is kept.
func (a *App) Refresh() error {
	entries, err := a.source.Navigation(a.navOpts...)
	if err != nil {
		a.logger.Warn("sidebar: refresh failed", "error", err)
		return fmt.Errorf("sidebar: refresh: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Rebuild(entries)
	a.index(entries)
	a.applyRoute()
	a.logger.Debug("sidebar: refreshed", "documents", len(entries), "items", len(a.locations))
	return nil
}

// index records the location of every entry, keyed both ways.
func (a *App) index(entries []*navigation.Entry) {
	a.byKey = make(map[locationKey]string)
	a.locations = make(map[string]Location)
	for _, doc := range entries {
		slug := doc.Name
		a.byKey[locationKey{doc: slug}] = doc.ID
		a.locations[doc.ID] = Location{Type: doc.Type, DocumentSlug: slug}
		navigation.Walk(doc.Children, func(e, parent *navigation.Entry) navigation.Action {
			loc := Location{Type: e.Type, DocumentSlug: slug}
			var key *locationKey
			switch e.Type {
			case navigation.TypeOperation:
				loc.Path, loc.Method = e.Path, e.Method
				key = &locationKey{doc: slug, target: e.Path, method: e.Method}
			case navigation.TypeWebhook:
				loc.WebhookName, loc.Method = e.Name, e.Method
				key = &locationKey{doc: slug, webhook: true, target: e.Name, method: e.Method}
			case navigation.TypeExample:
				if parent != nil && parent.Type == navigation.TypeOperation {
					loc.Path, loc.Method, loc.ExampleName = parent.Path, parent.Method, e.Name
					key = &locationKey{doc: slug, target: parent.Path, method: parent.Method, example: e.Name}
				}
			}
			a.locations[e.ID] = loc
			if key != nil {
				if _, taken := a.byKey[*key]; !taken {
					a.byKey[*key] = e.ID
				}
			}
			return navigation.Continue
		})
	}
}

// Resolve returns the id of the most specific entry r points at: the
// example, else the operation or webhook, else the document. It returns ""
// when r names no known document.
func (a *App) Resolve(r Route) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resolve(r)
}

func (a *App) resolve(r Route) string {
	if r.DocumentSlug == "" {
		return ""
	}
	leaf, ok := a.byKey[locationKey{doc: r.DocumentSlug}]
	if !ok {
		return ""
	}
	method := strings.ToLower(r.Method)
	if method == "" {
		return leaf
	}
	switch {
	case r.WebhookName != "":
		if id, ok := a.byKey[locationKey{doc: r.DocumentSlug, webhook: true, target: r.WebhookName, method: method}]; ok {
			leaf = id
		}
	case r.Path != "":
		base := locationKey{doc: r.DocumentSlug, target: r.Path, method: method}
		if id, ok := a.byKey[base]; ok {
			leaf = id
			if r.ExampleName != "" {
				base.example = r.ExampleName
				if ex, ok := a.byKey[base]; ok {
					leaf = ex
				}
			}
		}
	}
	return leaf
}

// SetRoute moves the view to r: the resolved entry is selected and
// expanded together with its ancestors. An empty DocumentSlug clears the
// selection.
func (a *App) SetRoute(r Route) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.route = r
	a.applyRoute()
}

func (a *App) applyRoute() {
	leaf := a.resolve(a.route)
	a.state.SetSelected(leaf)
	if leaf != "" {
		a.state.SetExpanded(leaf, true)
	}
}

// HandleSelectItem reacts to a click on id:
//
//	document, text  select, expand, push the document overview
//	operation       first click: select its first example (or itself),
//	                expand, push the example route; later clicks toggle
//	example         select, expand, push the example route
//	tag, model,
//	webhook         toggle expansion
//
// Unknown ids are logged and ignored. The error is the router's.
func (a *App) HandleSelectItem(id string) error {
	target, ok := a.selectItem(id)
	if !ok {
		return nil
	}
	if err := a.router.Push(target); err != nil {
		a.logger.Warn("sidebar: navigation failed", "id", id, "route", target.Name, "error", err)
		return fmt.Errorf("sidebar: push %s: %w", target.Name, err)
	}
	return nil
}

func (a *App) selectItem(id string) (Target, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.state.Get(id)
	if !ok {
		a.logger.Warn("sidebar: unknown item", "id", id)
		return Target{}, false
	}
	loc := a.locations[id]

	switch e.Type {
	case navigation.TypeDocument, navigation.TypeText:
		a.state.SetSelected(id)
		a.state.SetExpanded(id, true)
		a.route = Route{DocumentSlug: loc.DocumentSlug}
		return Target{
			Name:   RouteDocumentOverview,
			Params: map[string]string{ParamDocumentSlug: loc.DocumentSlug},
		}, true

	case navigation.TypeOperation:
		if a.state.IsSelected(id) {
			a.state.Toggle(id)
			return Target{}, false
		}
		leaf, example := id, ""
		if first := firstExample(e); first != nil {
			leaf, example = first.ID, first.Name
		}
		a.state.SetSelected(leaf)
		a.state.SetExpanded(leaf, true)
		a.route = Route{DocumentSlug: loc.DocumentSlug, Path: loc.Path, Method: loc.Method, ExampleName: example}
		if example == "" {
			example = DefaultExampleName
		}
		return exampleTarget(loc.DocumentSlug, loc.Path, loc.Method, example), true

	case navigation.TypeExample:
		a.state.SetSelected(id)
		a.state.SetExpanded(id, true)
		a.route = Route{DocumentSlug: loc.DocumentSlug, Path: loc.Path, Method: loc.Method, ExampleName: loc.ExampleName}
		return exampleTarget(loc.DocumentSlug, loc.Path, loc.Method, loc.ExampleName), true

	default:
		a.state.Toggle(id)
		return Target{}, false
	}
}

func firstExample(op *navigation.Entry) *navigation.Entry {
	for _, c := range op.Children {
		if c.Type == navigation.TypeExample {
			return c
		}
	}
	return nil
}

func exampleTarget(slug, path, method, example string) Target {
	return Target{
		Name: RouteExample,
		Params: map[string]string{
			ParamDocumentSlug: slug,
			ParamPathEncoded:  EncodePath(path),
			ParamMethod:       method,
			ParamExampleName:  example,
		},
	}
}

// componentUnescaper restores the characters a URI component may carry
// literally but url.QueryEscape escapes. Every '%' in QueryEscape output
// starts a triplet, so replacing whole triplets is exact.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodePath encodes path as a single URI component: everything except
// letters, digits and -_.!~*'() is percent-encoded, '/' included.
func EncodePath(path string) string {
	return componentUnescaper.Replace(url.QueryEscape(path))
}

// Route returns the current route.
func (a *App) Route() Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Location returns where id navigates to.
func (a *App) Location(id string) (Location, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	loc, ok := a.locations[id]
	return loc, ok
}

// Entries returns the current tree.
func (a *App) Entries() []*navigation.Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Entries()
}

// Get returns the entry with the given id.
func (a *App) Get(id string) (*navigation.Entry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Get(id)
}

// Selected returns the selection chain, leaf first.
func (a *App) Selected() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Selected()
}

// IsSelected reports whether id is in the selection chain.
func (a *App) IsSelected(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.IsSelected(id)
}

// IsExpanded reports whether id is expanded.
func (a *App) IsExpanded(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.IsExpanded(id)
}

// SelectedItems returns a copy of the selected set.
func (a *App) SelectedItems() map[string]bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.SelectedItems()
}

// ExpandedItems returns a copy of the expanded set.
func (a *App) ExpandedItems() map[string]bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.ExpandedItems()
}

// Ancestors returns id and its ancestors, leaf first.
func (a *App) Ancestors(id string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Ancestors(id)
}
