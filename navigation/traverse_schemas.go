package navigation

import (
	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/internal/pathutil"
)

// models emits one entry per visible schema in source order. A schema with
// x-tags is filed under each of those tags instead and is not returned; the
// returned entries are the untagged ones that make up the Models section.
func (t *traversal) models(doc *document.Document, tags *tagIndex) []*Entry {
	schemas := doc.Schemas()
	if schemas.Len() == 0 {
		return nil
	}
	var untagged []*Entry
	for name, schema := range schemas.All() {
		if schema.Hidden() {
			continue
		}
		if len(schema.Tags) == 0 {
			untagged = append(untagged, t.model(name, schema, nil))
			continue
		}
		for _, tagName := range targetTags(schema.Tags) {
			b := tags.ensure(tagName)
			if b.tag.Hidden() {
				continue
			}
			b.models = append(b.models, t.model(name, schema, b.tag))
		}
	}
	return untagged
}

func (t *traversal) model(name string, schema *document.Schema, tag *document.Tag) *Entry {
	e := &Entry{
		Type:         TypeModel,
		Title:        name,
		Ref:          pathutil.ModelRef(name),
		Name:         name,
		IsDeprecated: schema.Deprecated,
	}
	e.ID = t.titles.add(t.ids.Model(ModelContext{Name: name, Schema: schema, Tag: tag}), name)
	return e
}
