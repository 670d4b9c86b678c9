package navigation

import (
	"github.com/oasnav/oasnav/document"
)

// tags builds tag entries from the buckets, nests them into x-tagGroups and
// orders the top level with the tags sorter.
func (t *traversal) tags(doc *document.Document, tags *tagIndex) []*Entry {
	built := make(map[string]*Entry, len(tags.order))
	var visible []taggedEntry
	for _, name := range tags.order {
		b := tags.buckets[name]
		if b.tag.Hidden() {
			continue
		}
		// Keep a tag with nothing under it only if it was declared with a
		// description to show.
		if len(b.entries)+len(b.models) == 0 && (!b.declared || b.tag.Description == "") {
			continue
		}
		t.cfg.opsSorter.sort(b.entries)
		children := make([]*Entry, 0, len(b.entries)+len(b.models))
		children = append(children, b.entries...)
		children = append(children, b.models...)
		e := &Entry{
			Type:        TypeTag,
			Title:       b.tag.Title(),
			Name:        name,
			Description: b.tag.Description,
			Children:    children,
		}
		e.ID = t.titles.add(t.ids.Tag(b.tag), e.Title)
		built[name] = e
		visible = append(visible, taggedEntry{tag: b.tag, entry: e})
	}

	top := visible
	if len(doc.TagGroups) > 0 {
		top = t.groups(doc.TagGroups, built, visible)
	}
	t.cfg.tagsSorter.sort(top)

	entries := make([]*Entry, len(top))
	for i, item := range top {
		entries[i] = item.entry
	}
	return entries
}

// groups nests member tags under group entries in the order each group lists
// them. A tag belongs to the first group naming it; unknown or dropped names
// are skipped. Tags no group claims stay at the top level.
func (t *traversal) groups(groups []*document.TagGroup, built map[string]*Entry, visible []taggedEntry) []taggedEntry {
	claimed := make(map[string]bool)
	top := make([]taggedEntry, 0, len(groups)+len(visible))
	for _, g := range groups {
		children := []*Entry{}
		for _, member := range g.Tags {
			e, ok := built[member]
			if !ok || claimed[member] {
				continue
			}
			claimed[member] = true
			children = append(children, e)
		}
		tag := &document.Tag{Name: g.Name}
		e := &Entry{
			Type:     TypeTag,
			Title:    g.Name,
			Name:     g.Name,
			IsGroup:  true,
			Children: children,
		}
		e.ID = t.titles.add(t.ids.TagGroup(g), g.Name)
		top = append(top, taggedEntry{tag: tag, entry: e})
	}
	for _, item := range visible {
		if !claimed[item.entry.Name] {
			top = append(top, item)
		}
	}
	return top
}
