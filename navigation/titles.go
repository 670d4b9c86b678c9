package navigation

import (
	"iter"
	"strconv"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/oaserrors"
)

// Titles is the id → title side index built during traversal.
//
// Every entry reachable from Result.Entries has exactly one key here. When
// an id strategy produces an id that is already taken, the later entry is
// given the first free "<id>-N" (N from 2) and a warning is logged, so no
// title is ever overwritten. In strict mode the first collision is also
// reported as a *oaserrors.DuplicateIDError.
type Titles struct {
	ids    []string
	titles map[string]string

	strict bool
	logger document.Logger
	err    error
}

func newTitles(strict bool, logger document.Logger) *Titles {
	return &Titles{
		titles: make(map[string]string),
		strict: strict,
		logger: logger,
	}
}

// add records title under id and returns the id actually used.
func (t *Titles) add(id, title string) string {
	existing, taken := t.titles[id]
	if !taken {
		t.ids = append(t.ids, id)
		t.titles[id] = title
		return id
	}

	unique := id
	for n := 2; ; n++ {
		unique = id + "-" + strconv.Itoa(n)
		if _, used := t.titles[unique]; !used {
			break
		}
	}
	t.logger.Warn("navigation: duplicate id", "id", id, "existing", existing, "title", title, "using", unique)
	if t.strict && t.err == nil {
		t.err = &oaserrors.DuplicateIDError{ID: id, Existing: existing, Title: title}
	}
	t.ids = append(t.ids, unique)
	t.titles[unique] = title
	return unique
}

// Get returns the title recorded for id.
func (t *Titles) Get(id string) (string, bool) {
	title, ok := t.titles[id]
	return title, ok
}

// Len returns the number of recorded ids.
func (t *Titles) Len() int {
	return len(t.ids)
}

// IDs returns the recorded ids in registration order.
func (t *Titles) IDs() []string {
	return append([]string(nil), t.ids...)
}

// All iterates id, title pairs in registration order.
func (t *Titles) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, id := range t.ids {
			if !yield(id, t.titles[id]) {
				return
			}
		}
	}
}

// Map returns a copy of the index as a plain map.
func (t *Titles) Map() map[string]string {
	out := make(map[string]string, len(t.titles))
	for id, title := range t.titles {
		out[id] = title
	}
	return out
}
