package navigation

import (
	"strings"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/internal/httputil"
	"github.com/oasnav/oasnav/internal/pathutil"
)

// IsHTTPMethod reports whether key names an operation (case-insensitive).
func IsHTTPMethod(key string) bool {
	return httputil.IsMethod(key)
}

// tagBucket collects the entries filed under a tag. Operations and webhooks
// are sorted by the operations sorter; models follow them in schema order.
type tagBucket struct {
	tag      *document.Tag
	declared bool
	entries  []*Entry
	models   []*Entry
}

// tagIndex holds buckets in first-seen order: declared tags first, then tags
// discovered on operations and webhooks.
type tagIndex struct {
	order   []string
	buckets map[string]*tagBucket
}

// newTagIndex seeds the index with the declared tags. A tag declared twice
// keeps its first position and its last definition.
func newTagIndex(declared []*document.Tag) *tagIndex {
	ix := &tagIndex{buckets: make(map[string]*tagBucket)}
	for _, tag := range declared {
		if b, ok := ix.buckets[tag.Name]; ok {
			b.tag = tag
			continue
		}
		ix.order = append(ix.order, tag.Name)
		ix.buckets[tag.Name] = &tagBucket{tag: tag, declared: true}
	}
	return ix
}

func (ix *tagIndex) get(name string) *tagBucket {
	return ix.buckets[name]
}

// ensure returns the bucket for name, synthesizing an undeclared tag.
func (ix *tagIndex) ensure(name string) *tagBucket {
	if b, ok := ix.buckets[name]; ok {
		return b
	}
	b := &tagBucket{tag: &document.Tag{Name: name}}
	ix.order = append(ix.order, name)
	ix.buckets[name] = b
	return b
}

// targetTags returns the distinct tag names of an operation, or nil.
func targetTags(tags []string) []string {
	if len(tags) < 2 {
		return tags
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, name := range tags {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// paths files every visible operation under each of its tags, or under the
// default tag when it has none. Operations are appended in path-then-method
// source order; the tag assembler sorts them later.
func (t *traversal) paths(doc *document.Document, tags *tagIndex) {
	for path, item := range doc.Paths.All() {
		for key, op := range item.Operations.All() {
			if !IsHTTPMethod(key) || op.Hidden() {
				continue
			}
			ctx := OperationContext{Operation: op, Path: path, Method: strings.ToLower(key)}
			names := targetTags(op.Tags)
			if len(names) == 0 {
				names = []string{DefaultTag}
			}
			for _, name := range names {
				b := tags.ensure(name)
				if b.tag.Hidden() {
					continue
				}
				b.entries = append(b.entries, t.operation(ctx, key, b.tag))
			}
		}
	}
}

func (t *traversal) operation(ctx OperationContext, key string, parent *document.Tag) *Entry {
	title := strings.TrimSpace(ctx.Operation.Summary)
	if title == "" {
		title = ctx.Path
	}
	e := &Entry{
		Type:         TypeOperation,
		Title:        title,
		Ref:          pathutil.OperationRef(ctx.Path, key),
		Method:       ctx.Method,
		Path:         ctx.Path,
		IsDeprecated: ctx.Operation.Deprecated,
	}
	e.ID = t.titles.add(t.ids.Operation(ctx, parent), title)
	if t.cfg.examples {
		e.Children = t.examples(ctx, e.ID)
	}
	return e
}

// examples lists the operation's named examples as children.
func (t *traversal) examples(ctx OperationContext, operationID string) []*Entry {
	names := ctx.Operation.ExampleNames()
	if len(names) == 0 {
		return nil
	}
	entries := make([]*Entry, 0, len(names))
	for _, name := range names {
		e := &Entry{Type: TypeExample, Title: name, Name: name}
		e.ID = t.titles.add(t.ids.Example(ExampleContext{Name: name, Operation: ctx}, operationID), name)
		entries = append(entries, e)
	}
	return entries
}

// webhooks files webhooks like operations. An untagged webhook joins the
// default tag only when that tag already exists (declared, or created by an
// operation); otherwise it is returned for the root Webhooks section.
func (t *traversal) webhooks(doc *document.Document, tags *tagIndex) []*Entry {
	hasDefault := tags.get(DefaultTag) != nil
	var untagged []*Entry
	for name, item := range doc.Webhooks.All() {
		for key, op := range item.Operations.All() {
			if !IsHTTPMethod(key) || op.Hidden() {
				continue
			}
			ctx := WebhookContext{Webhook: op, Name: name, Method: strings.ToLower(key)}
			names := targetTags(op.Tags)
			if len(names) == 0 {
				if !hasDefault {
					untagged = append(untagged, t.webhook(ctx, key, nil))
					continue
				}
				names = []string{DefaultTag}
			}
			for _, tagName := range names {
				b := tags.ensure(tagName)
				if b.tag.Hidden() {
					continue
				}
				b.entries = append(b.entries, t.webhook(ctx, key, b.tag))
			}
		}
	}
	return untagged
}

func (t *traversal) webhook(ctx WebhookContext, key string, parent *document.Tag) *Entry {
	title := strings.TrimSpace(ctx.Webhook.Summary)
	if title == "" {
		title = ctx.Name
	}
	e := &Entry{
		Type:         TypeWebhook,
		Title:        title,
		Ref:          pathutil.WebhookRef(ctx.Name, key),
		Method:       ctx.Method,
		Name:         ctx.Name,
		IsDeprecated: ctx.Webhook.Deprecated,
	}
	e.ID = t.titles.add(t.ids.Webhook(ctx, parent), title)
	return e
}
