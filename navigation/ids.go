package navigation

import (
	"strings"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/internal/naming"
)

// HeadingContext describes a description heading.
type HeadingContext struct {
	// Depth is the markdown heading level (1-6).
	Depth int
	// Value is the heading's plain text.
	Value string
	// Slug is naming.Slug(Value).
	Slug string
}

// OperationContext is an operation together with where it lives.
type OperationContext struct {
	Operation *document.Operation
	Path      string
	// Method is the lowercase HTTP verb.
	Method string
}

// WebhookContext is a webhook method together with its name.
type WebhookContext struct {
	Webhook *document.Operation
	Name    string
	Method  string
}

// ModelContext identifies a schema and where it is listed.
type ModelContext struct {
	Name   string
	Schema *document.Schema
	// Tag is the x-tags bucket the model is filed under, or nil for the
	// Models section.
	Tag *document.Tag
}

// ExampleContext identifies an example under an operation.
type ExampleContext struct {
	Name      string
	Operation OperationContext
}

// IDStrategy holds the id-generation functions used during traversal.
// Functions must be pure: the same input must always yield the same id, or
// selection and expansion state will not survive a re-traversal. A nil
// function falls back to the DefaultIDStrategy one.
type IDStrategy struct {
	Heading   func(h HeadingContext) string
	Operation func(op OperationContext, parent *document.Tag) string
	Webhook   func(wh WebhookContext, parent *document.Tag) string
	Model     func(m ModelContext) string
	Tag       func(tag *document.Tag) string
	TagGroup  func(g *document.TagGroup) string
	Example   func(ex ExampleContext, operationID string) string
	// Section names the synthetic "Webhooks" and "Models" entries; it
	// receives the section title.
	Section func(title string) string
}

// DefaultIDStrategy returns ids without a document prefix:
//
//	heading    description/<slug>
//	tag        tag/<slug>
//	tag group  tag-group/<slug>
//	operation  tag/<slug>/GET/pets/{id}
//	example    tag/<slug>/GET/pets/{id}/example/<slug>
//	webhook    [tag/<slug>/]webhook/POST/<slug>
//	model      [tag/<slug>/]model/<slug>
//	section    webhooks, models
func DefaultIDStrategy() IDStrategy {
	return DocumentIDStrategy("")
}

// DocumentIDStrategy returns the default scheme with every id prefixed by
// the document slug, e.g. "pets/tag/pets/GET/pets".
func DocumentIDStrategy(slug string) IDStrategy {
	tagID := func(tag *document.Tag) string {
		return join(slug, "tag", naming.Slug(tag.Name))
	}
	parentID := func(parent *document.Tag) string {
		if parent == nil {
			return slug
		}
		return tagID(parent)
	}
	return IDStrategy{
		Heading: func(h HeadingContext) string {
			return join(slug, "description", h.Slug)
		},
		Operation: func(op OperationContext, parent *document.Tag) string {
			return join(parentID(parent), strings.ToUpper(op.Method)+op.Path)
		},
		Webhook: func(wh WebhookContext, parent *document.Tag) string {
			return join(parentID(parent), "webhook", strings.ToUpper(wh.Method), naming.Slug(wh.Name))
		},
		Model: func(m ModelContext) string {
			return join(parentID(m.Tag), "model", naming.Slug(m.Name))
		},
		Tag: tagID,
		TagGroup: func(g *document.TagGroup) string {
			return join(slug, "tag-group", naming.Slug(g.Name))
		},
		Example: func(ex ExampleContext, operationID string) string {
			return join(operationID, "example", naming.Slug(ex.Name))
		},
		Section: func(title string) string {
			return join(slug, naming.Slug(title))
		},
	}
}

// withDefaults fills nil functions from DefaultIDStrategy.
func (s IDStrategy) withDefaults() IDStrategy {
	def := DefaultIDStrategy()
	if s.Heading == nil {
		s.Heading = def.Heading
	}
	if s.Operation == nil {
		s.Operation = def.Operation
	}
	if s.Webhook == nil {
		s.Webhook = def.Webhook
	}
	if s.Model == nil {
		s.Model = def.Model
	}
	if s.Tag == nil {
		s.Tag = def.Tag
	}
	if s.TagGroup == nil {
		s.TagGroup = def.TagGroup
	}
	if s.Section == nil {
		s.Section = def.Section
	}
	if s.Example == nil {
		s.Example = def.Example
	}
	return s
}

// join concatenates non-empty segments with "/".
func join(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString(p)
	}
	return b.String()
}
