package document

// Document is a typed view over the subset of an OpenAPI 3.x (or Swagger
// 2.0) document that navigation reads. Map-valued sections keep source key
// order; every section may be nil or empty.
type Document struct {
	// OpenAPI is the "openapi" version field (3.x documents)
	OpenAPI string
	// Swagger is the "swagger" version field (2.0 documents)
	Swagger string

	Info       *Info
	Paths      *OrderedMap[*PathItem]
	Webhooks   *OrderedMap[*PathItem]
	Components *Components
	Tags       []*Tag
	// TagGroups is decoded from the top-level x-tagGroups extension.
	TagGroups []*TagGroup

	Extensions
}

// Version returns the declared OpenAPI or Swagger version.
func (d *Document) Version() string {
	if d.OpenAPI != "" {
		return d.OpenAPI
	}
	return d.Swagger
}

// Title returns info.title, or "" when there is no info object.
func (d *Document) Title() string {
	if d == nil || d.Info == nil {
		return ""
	}
	return d.Info.Title
}

// Description returns info.description, or "".
func (d *Document) Description() string {
	if d == nil || d.Info == nil {
		return ""
	}
	return d.Info.Description
}

// Schemas returns components.schemas, which may be nil.
func (d *Document) Schemas() *OrderedMap[*Schema] {
	if d == nil || d.Components == nil {
		return nil
	}
	return d.Components.Schemas
}

// Info is the document's info object.
type Info struct {
	Title       string
	Version     string
	Description string
	Extensions
}

// Tag is one entry in the top-level tags array, or a tag synthesized from an
// operation's tag list.
type Tag struct {
	Name        string
	Summary     string
	Description string
	// DisplayName is the x-displayName extension.
	DisplayName string
	Extensions
}

// Title is the text shown for the tag: x-displayName, then summary, then name.
func (t *Tag) Title() string {
	switch {
	case t.DisplayName != "":
		return t.DisplayName
	case t.Summary != "":
		return t.Summary
	default:
		return t.Name
	}
}

// TagGroup is one element of x-tagGroups.
type TagGroup struct {
	Name string
	Tags []string
}

// PathItem is a path (or webhook) item. Operations holds every mapping-valued
// key other than the fixed path-item fields, in source order; callers decide
// which keys are HTTP methods.
type PathItem struct {
	Summary     string
	Description string
	Operations  *OrderedMap[*Operation]
	Extensions
}

// Operation is a single operation object.
type Operation struct {
	Summary     string
	Description string
	OperationID string
	Tags        []string
	Deprecated  bool
	Parameters  []*Parameter
	RequestBody *RequestBody
	// Responses is keyed by status code in source order.
	Responses *OrderedMap[*Response]
	Extensions
}

// Response is a response object; only its content is kept.
type Response struct {
	Description string
	Content     *OrderedMap[*MediaType]
}

// ExampleNames returns the names of the examples declared on the request
// body media types, the parameters, the parameter media types and the
// response media types, in that order, without duplicates.
func (o *Operation) ExampleNames() []string {
	var names []string
	seen := make(map[string]struct{})
	add := func(examples *OrderedMap[*Example]) {
		for name := range examples.All() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	if o.RequestBody != nil {
		for _, mt := range o.RequestBody.Content.All() {
			add(mt.Examples)
		}
	}
	for _, p := range o.Parameters {
		add(p.Examples)
		for _, mt := range p.Content.All() {
			add(mt.Examples)
		}
	}
	for _, r := range o.Responses.All() {
		for _, mt := range r.Content.All() {
			add(mt.Examples)
		}
	}
	return names
}

// Parameter is an operation parameter.
type Parameter struct {
	Name     string
	In       string
	Examples *OrderedMap[*Example]
	Content  *OrderedMap[*MediaType]
}

// RequestBody is an operation request body.
type RequestBody struct {
	Description string
	Content     *OrderedMap[*MediaType]
}

// MediaType is one entry of a content map.
type MediaType struct {
	Examples *OrderedMap[*Example]
}

// Example is a named example object.
type Example struct {
	Summary       string
	Description   string
	Value         any
	ExternalValue string
}

// Components holds the components section. Only schemas are navigable.
type Components struct {
	Schemas *OrderedMap[*Schema]
}

// Schema is the part of a schema object navigation needs.
type Schema struct {
	Title       string
	Type        string
	Description string
	Deprecated  bool
	// Tags is decoded from x-tags.
	Tags []string
	Extensions
}
