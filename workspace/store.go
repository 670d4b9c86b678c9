package workspace

import (
	"fmt"
	"slices"
	"sync"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/internal/naming"
	"github.com/oasnav/oasnav/navigation"
	"github.com/oasnav/oasnav/oaserrors"
)

// Document is one named member of a Store. It is replaced wholesale on
// reload and must not be modified after Add.
type Document struct {
	// Name is the store key.
	Name string
	// Slug is naming.Slug(Name), the prefix of every navigation id.
	Slug string
	// SourcePath is the file the document was loaded from, if any.
	SourcePath string
	// Hash is the sha256 of the source bytes, if known.
	Hash string
	// Doc is the parsed document.
	Doc *document.Document
}

// Navigation traverses the document with DocumentIDStrategy(Slug) and
// examples enabled, and wraps the result in a document entry. opts are
// applied after those defaults.
func (d *Document) Navigation(opts ...navigation.Option) (*navigation.Entry, error) {
	all := append([]navigation.Option{
		navigation.WithExamples(true),
		navigation.WithIDStrategy(navigation.DocumentIDStrategy(d.Slug)),
	}, opts...)
	result, err := navigation.TraverseDocument(d.Doc, all...)
	if err != nil {
		return nil, fmt.Errorf("workspace: document %q: %w", d.Name, err)
	}
	title := d.Doc.Title()
	if title == "" {
		title = d.Name
	}
	children := result.Entries
	if children == nil {
		children = []*navigation.Entry{}
	}
	return &navigation.Entry{
		ID:       d.Slug,
		Title:    title,
		Type:     navigation.TypeDocument,
		Name:     d.Slug,
		Children: children,
	}, nil
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used by the store and its watchers.
func WithLogger(l document.Logger) Option {
	return func(s *Store) {
		s.logger = document.OrNop(l)
	}
}

// Store is an ordered, concurrency-safe set of named documents plus
// cross-cutting settings such as x-scalar-order.
type Store struct {
	mu       sync.RWMutex
	names    []string
	docs     map[string]*Document
	settings map[string]any

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int

	logger document.Logger
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		docs:     make(map[string]*Document),
		settings: make(map[string]any),
		subs:     make(map[int]func(Event)),
		logger:   document.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores doc under name, replacing any previous document with that name
// while keeping its position. Two names may not share a slug.
func (s *Store) Add(name string, doc *document.Document) error {
	return s.put(&Document{Name: name, Doc: doc})
}

// Load parses the file at path and stores it under name.
func (s *Store) Load(name, path string, opts ...document.Option) error {
	all := append([]document.Option{document.WithFilePath(path), document.WithLogger(s.logger)}, opts...)
	result, err := document.ParseWithOptions(all...)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		s.logger.Debug("workspace: parse warning", "name", name, "warning", w)
	}
	return s.put(&Document{
		Name:       name,
		SourcePath: path,
		Hash:       result.Hash,
		Doc:        result.Document,
	})
}

func (s *Store) put(d *Document) error {
	if d.Name == "" {
		return &oaserrors.ConfigError{Option: "name", Message: "document name must not be empty"}
	}
	if d.Doc == nil {
		return &oaserrors.ConfigError{Option: "document", Value: d.Name, Message: "document must not be nil"}
	}
	d.Slug = naming.Slug(d.Name)
	if d.Slug == "" {
		return &oaserrors.ConfigError{Option: "name", Value: d.Name, Message: "name has no slug characters"}
	}

	s.mu.Lock()
	for _, other := range s.docs {
		if other.Name != d.Name && other.Slug == d.Slug {
			s.mu.Unlock()
			return &oaserrors.ConfigError{
				Option:  "name",
				Value:   d.Name,
				Message: fmt.Sprintf("slug %q already used by %q", d.Slug, other.Name),
			}
		}
	}
	kind := EventUpdated
	if _, ok := s.docs[d.Name]; !ok {
		kind = EventAdded
		s.names = append(s.names, d.Name)
	}
	s.docs[d.Name] = d
	s.mu.Unlock()

	s.logger.Debug("workspace: document stored", "name", d.Name, "event", kind.String())
	s.notify(Event{Kind: kind, Name: d.Name})
	return nil
}

// Remove deletes the document with the given name.
// It reports whether a document was removed.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	if _, ok := s.docs[name]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.docs, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
	s.mu.Unlock()

	s.notify(Event{Kind: EventRemoved, Name: name})
	return true
}

// Get returns the document stored under name.
func (s *Store) Get(name string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[name]
	return d, ok
}

// GetBySlug returns the document whose slug is slug.
func (s *Store) GetBySlug(slug string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.docs {
		if d.Slug == slug {
			return d, true
		}
	}
	return nil, false
}

// Names returns the document names in store (insertion) order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.names)
}

// Len returns the number of documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Update sets a workspace setting and notifies subscribers. Setting
// document.ExtOrder to a list of names reorders Ordered and Navigation.
func (s *Store) Update(key string, value any) {
	s.mu.Lock()
	s.settings[key] = value
	s.mu.Unlock()
	s.notify(Event{Kind: EventSettings, Key: key})
}

// Settings returns a copy of the workspace settings.
func (s *Store) Settings() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}

// Order returns the x-scalar-order setting, or nil. Non-string elements are
// ignored.
func (s *Store) Order() []string {
	s.mu.RLock()
	raw := s.settings[document.ExtOrder]
	s.mu.RUnlock()

	switch v := raw.(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if name, ok := item.(string); ok {
				out = append(out, name)
			}
		}
		return out
	default:
		return nil
	}
}

// Ordered returns the documents sorted by SortByOrder(Names(), Order()).
func (s *Store) Ordered() []*Document {
	names := SortByOrder(s.Names(), s.Order())
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Document, 0, len(names))
	for _, name := range names {
		if d, ok := s.docs[name]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Navigation returns one document entry per document, in Ordered order.
// The result is recomputed on every call.
func (s *Store) Navigation(opts ...navigation.Option) ([]*navigation.Entry, error) {
	docs := s.Ordered()
	entries := make([]*navigation.Entry, 0, len(docs))
	for _, d := range docs {
		e, err := d.Navigation(opts...)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Subscribe registers fn to be called after every change. Callbacks run
// synchronously on the goroutine making the change, outside the store lock.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(e Event) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// SortByOrder returns names with the ones listed in order first, in the
// listed order, followed by the rest in their original order. Listed names
// not in names and repeated listings are ignored.
func SortByOrder(names, order []string) []string {
	if len(order) == 0 {
		return slices.Clone(names)
	}
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	out := make([]string, 0, len(names))
	placed := make(map[string]bool, len(order))
	for _, n := range order {
		if present[n] && !placed[n] {
			placed[n] = true
			out = append(out, n)
		}
	}
	for _, n := range names {
		if !placed[n] {
			out = append(out, n)
		}
	}
	return out
}
