package sidebar

import (
	"maps"
	"slices"

	"github.com/oasnav/oasnav/navigation"
)

// Hooks are called around selection and expansion changes with the id
// passed to SetSelected or SetExpanded. Any hook may be nil.
type Hooks struct {
	OnBeforeSelect func(id string)
	OnAfterSelect  func(id string)
	OnBeforeExpand func(id string)
	OnAfterExpand  func(id string)
}

// StateOption configures a State.
type StateOption func(*State)

// WithHooks sets the selection and expansion hooks.
func WithHooks(h Hooks) StateOption {
	return func(s *State) {
		s.hooks = h
	}
}

type node struct {
	entry  *navigation.Entry
	parent *node
}

// State tracks which entries of a navigation tree are selected and
// expanded.
//
// Selection is a chain: the selected id and all of its ancestors, leaf
// first. Expansion is a set; expanding an id also expands its ancestors so
// it is visible, while collapsing affects only that id.
//
// A State is not safe for concurrent use.
type State struct {
	entries  []*navigation.Entry
	index    map[string]*node
	chain    []string
	selected map[string]bool
	expanded map[string]bool
	hooks    Hooks
}

// NewState indexes entries and starts with nothing selected or expanded.
func NewState(entries []*navigation.Entry, opts ...StateOption) *State {
	s := &State{
		selected: make(map[string]bool),
		expanded: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.build(entries)
	return s
}

func (s *State) build(entries []*navigation.Entry) {
	s.entries = entries
	s.index = make(map[string]*node)
	var add func(entries []*navigation.Entry, parent *node)
	add = func(entries []*navigation.Entry, parent *node) {
		for _, e := range entries {
			n := &node{entry: e, parent: parent}
			if _, dup := s.index[e.ID]; !dup {
				s.index[e.ID] = n
			}
			add(e.Children, n)
		}
	}
	add(entries, nil)
}

// Entries returns the indexed tree.
func (s *State) Entries() []*navigation.Entry {
	return s.entries
}

// Get returns the entry with the given id.
func (s *State) Get(id string) (*navigation.Entry, bool) {
	n, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return n.entry, true
}

// Parent returns the parent of id, or nil for top-level and unknown ids.
func (s *State) Parent(id string) *navigation.Entry {
	n, ok := s.index[id]
	if !ok || n.parent == nil {
		return nil
	}
	return n.parent.entry
}

// Ancestors returns id followed by each ancestor up to the root, or nil
// for an unknown id.
func (s *State) Ancestors(id string) []string {
	n, ok := s.index[id]
	if !ok {
		return nil
	}
	var chain []string
	for ; n != nil; n = n.parent {
		chain = append(chain, n.entry.ID)
	}
	return chain
}

// SetSelected replaces the selection with id and its ancestors. An empty or
// unknown id clears the selection.
func (s *State) SetSelected(id string) {
	call(s.hooks.OnBeforeSelect, id)
	s.chain = s.Ancestors(id)
	clear(s.selected)
	for _, sid := range s.chain {
		s.selected[sid] = true
	}
	call(s.hooks.OnAfterSelect, id)
}

// SetExpanded opens or closes id. Opening also opens every ancestor.
// Unknown ids are ignored.
func (s *State) SetExpanded(id string, open bool) {
	n, ok := s.index[id]
	if !ok {
		return
	}
	call(s.hooks.OnBeforeExpand, id)
	if open {
		for ; n != nil; n = n.parent {
			s.expanded[n.entry.ID] = true
		}
	} else {
		delete(s.expanded, id)
	}
	call(s.hooks.OnAfterExpand, id)
}

// Toggle flips the expansion of id.
func (s *State) Toggle(id string) {
	s.SetExpanded(id, !s.expanded[id])
}

// IsSelected reports whether id is in the selection chain.
func (s *State) IsSelected(id string) bool {
	return s.selected[id]
}

// IsExpanded reports whether id is expanded.
func (s *State) IsExpanded(id string) bool {
	return s.expanded[id]
}

// Selected returns the selection chain, leaf first.
func (s *State) Selected() []string {
	return slices.Clone(s.chain)
}

// SelectedItems returns a copy of the selected set.
func (s *State) SelectedItems() map[string]bool {
	return maps.Clone(s.selected)
}

// ExpandedItems returns a copy of the expanded set.
func (s *State) ExpandedItems() map[string]bool {
	return maps.Clone(s.expanded)
}

// Reset clears selection and expansion.
func (s *State) Reset() {
	s.chain = nil
	clear(s.selected)
	clear(s.expanded)
}

// Rebuild re-indexes a new tree for the same view. Expanded ids that still
// exist stay expanded; the selection is recomputed from the same leaf, or
// cleared if the leaf is gone.
func (s *State) Rebuild(entries []*navigation.Entry) {
	leaf := ""
	if len(s.chain) > 0 {
		leaf = s.chain[0]
	}
	s.build(entries)
	maps.DeleteFunc(s.expanded, func(id string, _ bool) bool {
		_, ok := s.index[id]
		return !ok
	})
	s.chain = s.Ancestors(leaf)
	clear(s.selected)
	for _, id := range s.chain {
		s.selected[id] = true
	}
}

func call(fn func(string), id string) {
	if fn != nil {
		fn(id)
	}
}
