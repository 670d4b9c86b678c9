package document

import (
	"iter"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasnav/oasnav/internal/pathutil"
	"github.com/oasnav/oasnav/oaserrors"
)

// pathItemFields are path-item keys that never hold an operation.
var pathItemFields = map[string]bool{
	"$ref":        true,
	"summary":     true,
	"description": true,
	"servers":     true,
	"parameters":  true,
}

// decoder builds the typed views from a yaml.Node tree. Local $refs on
// path items, parameters, request bodies, examples and schemas are followed
// against root; everything else is read as-is.
type decoder struct {
	root     *yaml.Node
	logger   Logger
	maxDepth int
	ptr      *pathutil.Pointer
	warnings []string
}

func newDecoder(root *yaml.Node, logger Logger, maxDepth int) *decoder {
	return &decoder{
		root:     root,
		logger:   logger,
		maxDepth: maxDepth,
		ptr:      pathutil.Acquire(),
	}
}

func (d *decoder) release() {
	d.ptr.Release()
	d.ptr = nil
}

func (d *decoder) warn(err error) {
	at := d.ptr.String()
	d.warnings = append(d.warnings, at+": "+err.Error())
	d.logger.Warn("document: skipped reference", "at", at, "error", err)
}

func (d *decoder) document() *Document {
	root := d.root
	doc := &Document{
		OpenAPI:    str(field(root, "openapi")),
		Swagger:    str(field(root, "swagger")),
		Extensions: extensions(root),
	}
	if info := field(root, "info"); info != nil {
		doc.Info = &Info{
			Title:       str(field(info, "title")),
			Version:     str(field(info, "version")),
			Description: str(field(info, "description")),
			Extensions:  extensions(info),
		}
	}

	d.ptr.Push("paths")
	doc.Paths = d.pathItems(field(root, "paths"))
	d.ptr.Pop()

	d.ptr.Push("webhooks")
	doc.Webhooks = d.pathItems(field(root, "webhooks"))
	d.ptr.Pop()

	schemas := field(field(root, "components"), "schemas")
	section := []string{"components", "schemas"}
	if schemas == nil && doc.Swagger != "" {
		schemas = field(root, "definitions")
		section = []string{"definitions"}
	}
	if schemas != nil {
		for _, seg := range section {
			d.ptr.Push(seg)
		}
		doc.Components = &Components{Schemas: d.schemas(schemas)}
		for range section {
			d.ptr.Pop()
		}
	}

	doc.Tags = d.tags(field(root, "tags"))
	doc.TagGroups = tagGroups(field(root, ExtTagGroups))
	return doc
}

func (d *decoder) pathItems(n *yaml.Node) *OrderedMap[*PathItem] {
	if !isMapping(n) {
		return nil
	}
	items := NewOrderedMap[*PathItem]()
	for key, val := range pairs(n) {
		d.ptr.Push(key)
		items.Set(key, d.pathItem(val))
		d.ptr.Pop()
	}
	return items
}

func (d *decoder) pathItem(n *yaml.Node) *PathItem {
	item := &PathItem{Operations: NewOrderedMap[*Operation]()}
	n = d.deref(n)
	if n == nil {
		return item
	}
	item.Summary = str(field(n, "summary"))
	item.Description = str(field(n, "description"))
	item.Extensions = extensions(n)
	for key, val := range pairs(n) {
		if pathItemFields[key] || strings.HasPrefix(key, "x-") || !isMapping(val) {
			continue
		}
		d.ptr.Push(key)
		item.Operations.Set(key, d.operation(val))
		d.ptr.Pop()
	}
	return item
}

func (d *decoder) operation(n *yaml.Node) *Operation {
	op := &Operation{
		Summary:     str(field(n, "summary")),
		Description: str(field(n, "description")),
		OperationID: str(field(n, "operationId")),
		Tags:        strs(field(n, "tags")),
		Deprecated:  boolean(field(n, "deprecated")),
		Extensions:  extensions(n),
	}

	if params := resolveAlias(field(n, "parameters")); params != nil && params.Kind == yaml.SequenceNode {
		d.ptr.Push("parameters")
		for i, p := range params.Content {
			d.ptr.PushIndex(i)
			if param := d.parameter(p); param != nil {
				op.Parameters = append(op.Parameters, param)
			}
			d.ptr.Pop()
		}
		d.ptr.Pop()
	}

	if body := field(n, "requestBody"); body != nil {
		d.ptr.Push("requestBody")
		if body = d.deref(body); body != nil {
			op.RequestBody = &RequestBody{
				Description: str(field(body, "description")),
				Content:     d.content(field(body, "content")),
			}
		}
		d.ptr.Pop()
	}

	op.Responses = d.responses(field(n, "responses"))
	return op
}

func (d *decoder) responses(n *yaml.Node) *OrderedMap[*Response] {
	if !isMapping(n) {
		return nil
	}
	responses := NewOrderedMap[*Response]()
	d.ptr.Push("responses")
	for code, val := range pairs(n) {
		d.ptr.Push(code)
		if val = d.deref(val); val != nil {
			responses.Set(code, &Response{
				Description: str(field(val, "description")),
				Content:     d.content(field(val, "content")),
			})
		}
		d.ptr.Pop()
	}
	d.ptr.Pop()
	return responses
}

func (d *decoder) parameter(n *yaml.Node) *Parameter {
	n = d.deref(n)
	if n == nil {
		return nil
	}
	return &Parameter{
		Name:     str(field(n, "name")),
		In:       str(field(n, "in")),
		Examples: d.examples(field(n, "examples")),
		Content:  d.content(field(n, "content")),
	}
}

func (d *decoder) content(n *yaml.Node) *OrderedMap[*MediaType] {
	if !isMapping(n) {
		return nil
	}
	content := NewOrderedMap[*MediaType]()
	d.ptr.Push("content")
	for mediaType, val := range pairs(n) {
		d.ptr.Push(mediaType)
		content.Set(mediaType, &MediaType{Examples: d.examples(field(val, "examples"))})
		d.ptr.Pop()
	}
	d.ptr.Pop()
	return content
}

func (d *decoder) examples(n *yaml.Node) *OrderedMap[*Example] {
	if !isMapping(n) {
		return nil
	}
	examples := NewOrderedMap[*Example]()
	d.ptr.Push("examples")
	for name, val := range pairs(n) {
		d.ptr.Push(name)
		ex := &Example{}
		// An unresolvable example keeps its name; only its body is lost.
		if val = d.deref(val); val != nil {
			ex.Summary = str(field(val, "summary"))
			ex.Description = str(field(val, "description"))
			ex.ExternalValue = str(field(val, "externalValue"))
			if v := field(val, "value"); v != nil {
				_ = v.Decode(&ex.Value)
			}
		}
		examples.Set(name, ex)
		d.ptr.Pop()
	}
	d.ptr.Pop()
	return examples
}

func (d *decoder) schemas(n *yaml.Node) *OrderedMap[*Schema] {
	if !isMapping(n) {
		return nil
	}
	schemas := NewOrderedMap[*Schema]()
	for name, val := range pairs(n) {
		d.ptr.Push(name)
		target := d.deref(val)
		if target == nil {
			target = val
		}
		schemas.Set(name, &Schema{
			Title:       str(field(target, "title")),
			Type:        schemaType(field(target, "type")),
			Description: str(field(target, "description")),
			Deprecated:  boolean(field(target, "deprecated")),
			Tags:        strs(field(target, "x-tags")),
			Extensions:  extensions(target),
		})
		d.ptr.Pop()
	}
	return schemas
}

func (d *decoder) tags(n *yaml.Node) []*Tag {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	var tags []*Tag
	for _, t := range n.Content {
		name := str(field(t, "name"))
		if name == "" {
			continue
		}
		ext := extensions(t)
		tags = append(tags, &Tag{
			Name:        name,
			Summary:     str(field(t, "summary")),
			Description: str(field(t, "description")),
			DisplayName: ext.Text(ExtDisplayName),
			Extensions:  ext,
		})
	}
	return tags
}

func tagGroups(n *yaml.Node) []*TagGroup {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	var groups []*TagGroup
	for _, g := range n.Content {
		if !isMapping(g) {
			continue
		}
		groups = append(groups, &TagGroup{
			Name: str(field(g, "name")),
			Tags: strs(field(g, "tags")),
		})
	}
	return groups
}

// deref follows local $ref chains from n. It returns n itself when n has no
// $ref, and nil (after recording a warning) when the chain cannot be followed.
func (d *decoder) deref(n *yaml.Node) *yaml.Node {
	n = resolveAlias(n)
	seen := make(map[string]bool)
	for depth := 0; ; depth++ {
		ref := str(field(n, "$ref"))
		if ref == "" {
			return n
		}
		switch {
		case !pathutil.IsLocal(ref):
			d.warn(&oaserrors.ReferenceError{Ref: ref, Remote: true, Message: "not followed"})
			return nil
		case seen[ref]:
			d.warn(&oaserrors.ReferenceError{Ref: ref, IsCircular: true})
			return nil
		case depth >= d.maxDepth:
			d.warn(&oaserrors.ResourceLimitError{ResourceType: "ref_depth", Limit: int64(d.maxDepth), Message: ref})
			return nil
		}
		seen[ref] = true
		target := d.lookup(ref)
		if target == nil {
			d.warn(&oaserrors.ReferenceError{Ref: ref, Message: "target not found"})
			return nil
		}
		n = target
	}
}

// lookup resolves a local JSON pointer against the document root.
func (d *decoder) lookup(ref string) *yaml.Node {
	tokens, ok := pathutil.Split(ref)
	if !ok {
		return nil
	}
	n := d.root
	for _, tok := range tokens {
		n = resolveAlias(n)
		if n == nil {
			return nil
		}
		switch n.Kind {
		case yaml.MappingNode:
			n = field(n, tok)
		case yaml.SequenceNode:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(n.Content) {
				return nil
			}
			n = n.Content[i]
		default:
			return nil
		}
	}
	return resolveAlias(n)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isMapping(n *yaml.Node) bool {
	n = resolveAlias(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// pairs iterates a mapping node's key-value pairs in source order.
func pairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		n = resolveAlias(n)
		if n == nil || n.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			if !yield(n.Content[i].Value, resolveAlias(n.Content[i+1])) {
				return
			}
		}
	}
}

func field(n *yaml.Node, key string) *yaml.Node {
	for k, v := range pairs(n) {
		if k == key {
			return v
		}
	}
	return nil
}

func str(n *yaml.Node) string {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func boolean(n *yaml.Node) bool {
	b, err := strconv.ParseBool(str(n))
	return err == nil && b
}

func strs(n *yaml.Node) []string {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if s := str(c); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// schemaType accepts both "type: string" and the 3.1 list form, returning
// the first non-null type.
func schemaType(n *yaml.Node) string {
	n = resolveAlias(n)
	if n == nil {
		return ""
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	for _, t := range strs(n) {
		if t != "null" {
			return t
		}
	}
	return ""
}

func extensions(n *yaml.Node) Extensions {
	var ext Extensions
	for key, val := range pairs(n) {
		if !strings.HasPrefix(key, "x-") {
			continue
		}
		var v any
		if err := val.Decode(&v); err != nil {
			continue
		}
		if ext == nil {
			ext = make(Extensions)
		}
		ext[key] = v
	}
	return ext
}
