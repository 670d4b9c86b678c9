package navigation

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/internal/httputil"
	"github.com/oasnav/oasnav/oaserrors"
)

// Sorter names accepted by ParseTagsSorter and ParseOperationsSorter.
const (
	SorterAlpha  = "alpha"
	SorterMethod = "method"
	SorterNone   = "none"
)

// DefaultMethodOrder is the verb rank used by OperationsByMethod.
// Verbs not listed sort after all listed ones.
var DefaultMethodOrder = slices.Clone(httputil.Methods)

// OperationSortKey is what an operations comparator sees for each child of
// a tag. Webhooks have Name set and Path empty.
type OperationSortKey struct {
	Type   EntryType
	Method string
	Path   string
	Name   string
	Ref    string
	Title  string
}

// OperationsSorter orders the operations and webhooks inside a tag.
// The zero value keeps source order.
type OperationsSorter struct {
	name string
	less func(c *collate.Collator) func(a, b OperationSortKey) int
}

// OperationsAlpha sorts by title, then path, then method rank.
func OperationsAlpha() OperationsSorter {
	rank := methodRank(DefaultMethodOrder)
	return OperationsSorter{
		name: SorterAlpha,
		less: func(c *collate.Collator) func(a, b OperationSortKey) int {
			return func(a, b OperationSortKey) int {
				if n := c.CompareString(a.Title, b.Title); n != 0 {
					return n
				}
				if n := strings.Compare(a.Path, b.Path); n != 0 {
					return n
				}
				return cmp.Compare(rank(a.Method), rank(b.Method))
			}
		},
	}
}

// OperationsByMethod groups by DefaultMethodOrder, then sorts by title.
func OperationsByMethod() OperationsSorter {
	return OperationsByMethodOrder(DefaultMethodOrder...)
}

// OperationsByMethodOrder groups by the given verb rank, then sorts by title
// and path within each verb.
func OperationsByMethodOrder(order ...string) OperationsSorter {
	rank := methodRank(order)
	return OperationsSorter{
		name: SorterMethod,
		less: func(c *collate.Collator) func(a, b OperationSortKey) int {
			return func(a, b OperationSortKey) int {
				if n := cmp.Compare(rank(a.Method), rank(b.Method)); n != 0 {
					return n
				}
				if n := c.CompareString(a.Title, b.Title); n != 0 {
					return n
				}
				return strings.Compare(a.Path, b.Path)
			}
		},
	}
}

// OperationsInSourceOrder keeps path-then-method source order.
func OperationsInSourceOrder() OperationsSorter {
	return OperationsSorter{name: SorterNone}
}

// OperationsFunc sorts with a caller-supplied comparator.
// The sort is stable, so entries comparing equal keep source order.
func OperationsFunc(compare func(a, b OperationSortKey) int) OperationsSorter {
	return OperationsSorter{
		name: "func",
		less: func(*collate.Collator) func(a, b OperationSortKey) int { return compare },
	}
}

// Name returns "alpha", "method", "none" or "func".
func (s OperationsSorter) Name() string {
	if s.name == "" {
		return SorterNone
	}
	return s.name
}

func (s OperationsSorter) sort(entries []*Entry) {
	if s.less == nil || len(entries) < 2 {
		return
	}
	compare := s.less(newCollator())
	slices.SortStableFunc(entries, func(a, b *Entry) int {
		return compare(sortKey(a), sortKey(b))
	})
}

func sortKey(e *Entry) OperationSortKey {
	return OperationSortKey{
		Type:   e.Type,
		Method: e.Method,
		Path:   e.Path,
		Name:   e.Name,
		Ref:    e.Ref,
		Title:  e.Title,
	}
}

// TagsSorter orders top-level tags and tag groups. Groups are presented to
// the comparator as a Tag carrying only the group name.
// The zero value keeps source order.
type TagsSorter struct {
	name string
	less func(c *collate.Collator) func(a, b *document.Tag) int
}

// TagsAlpha sorts by display title.
func TagsAlpha() TagsSorter {
	return TagsSorter{
		name: SorterAlpha,
		less: func(c *collate.Collator) func(a, b *document.Tag) int {
			return func(a, b *document.Tag) int {
				return c.CompareString(a.Title(), b.Title())
			}
		},
	}
}

// TagsInSourceOrder keeps declared tags first, then discovered tags in the
// order operations reference them.
func TagsInSourceOrder() TagsSorter {
	return TagsSorter{name: SorterNone}
}

// TagsFunc sorts with a caller-supplied comparator over tag objects.
func TagsFunc(compare func(a, b *document.Tag) int) TagsSorter {
	return TagsSorter{
		name: "func",
		less: func(*collate.Collator) func(a, b *document.Tag) int { return compare },
	}
}

// Name returns "alpha", "none" or "func".
func (s TagsSorter) Name() string {
	if s.name == "" {
		return SorterNone
	}
	return s.name
}

// taggedEntry pairs a top-level entry with the tag object it sorts by.
type taggedEntry struct {
	tag   *document.Tag
	entry *Entry
}

func (s TagsSorter) sort(items []taggedEntry) {
	if s.less == nil || len(items) < 2 {
		return
	}
	compare := s.less(newCollator())
	slices.SortStableFunc(items, func(a, b taggedEntry) int {
		return compare(a.tag, b.tag)
	})
}

// ParseOperationsSorter maps a sorter name to an OperationsSorter.
// An empty name selects the default, alpha.
func ParseOperationsSorter(name string) (OperationsSorter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SorterAlpha:
		return OperationsAlpha(), nil
	case SorterMethod:
		return OperationsByMethod(), nil
	case SorterNone:
		return OperationsInSourceOrder(), nil
	default:
		return OperationsSorter{}, &oaserrors.ConfigError{
			Option:  "operations_sorter",
			Value:   name,
			Message: "must be one of alpha, method, none",
		}
	}
}

// ParseTagsSorter maps a sorter name to a TagsSorter.
// An empty name selects the default, alpha.
func ParseTagsSorter(name string) (TagsSorter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SorterAlpha:
		return TagsAlpha(), nil
	case SorterNone:
		return TagsInSourceOrder(), nil
	default:
		return TagsSorter{}, &oaserrors.ConfigError{
			Option:  "tags_sorter",
			Value:   name,
			Message: "must be one of alpha, none",
		}
	}
}

// methodRank returns a lookup giving each verb its index in order.
func methodRank(order []string) func(method string) int {
	ranks := make(map[string]int, len(order))
	for i, m := range order {
		ranks[strings.ToLower(m)] = i
	}
	return func(method string) int {
		if r, ok := ranks[strings.ToLower(method)]; ok {
			return r
		}
		return len(order)
	}
}

// newCollator returns a root-locale collator. Collators keep internal
// buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}
