package navigation

import "fmt"

// EntryType discriminates the kinds of navigation entries.
type EntryType string

const (
	// TypeText is a description heading or a synthetic section ("Webhooks", "Models").
	TypeText EntryType = "text"
	// TypeOperation is one HTTP operation under a path.
	TypeOperation EntryType = "operation"
	// TypeModel is one named schema under components.schemas.
	TypeModel EntryType = "model"
	// TypeTag is a tag, or a tag group when IsGroup is set.
	TypeTag EntryType = "tag"
	// TypeWebhook is one webhook method.
	TypeWebhook EntryType = "webhook"
	// TypeDocument wraps one document's entries in a workspace.
	TypeDocument EntryType = "document"
	// TypeExample is a named example under an operation.
	TypeExample EntryType = "example"
)

// Entry is one node of the navigation tree.
//
// Which optional fields are set depends on Type:
//
//	text       ID, Title, Children
//	operation  ID, Title, Ref, Method, Path, IsDeprecated, Children (examples)
//	model      ID, Title, Ref, Name, IsDeprecated
//	tag        ID, Title, Name, Description, Children, IsGroup
//	webhook    ID, Title, Ref, Method, Name, IsDeprecated
//	document   ID, Title, Name (document slug), Children
//	example    ID, Title, Name
type Entry struct {
	ID    string    `json:"id" yaml:"id"`
	Title string    `json:"title" yaml:"title"`
	Type  EntryType `json:"type" yaml:"type"`

	Ref         string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Method      string `json:"method,omitempty" yaml:"method,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	IsGroup      bool `json:"isGroup,omitempty" yaml:"isGroup,omitempty"`
	IsDeprecated bool `json:"isDeprecated,omitempty" yaml:"isDeprecated,omitempty"`

	Children []*Entry `json:"children,omitempty" yaml:"children,omitempty"`
}

// String returns a short description of the entry for logs and errors.
func (e *Entry) String() string {
	switch e.Type {
	case TypeOperation:
		return fmt.Sprintf("%s %s %s", e.Type, e.Method, e.Path)
	case TypeWebhook:
		return fmt.Sprintf("%s %s %s", e.Type, e.Method, e.Name)
	default:
		return fmt.Sprintf("%s %q", e.Type, e.Title)
	}
}

// Action controls Walk after visiting an entry.
type Action int

const (
	// Continue visits the entry's children and then its siblings.
	Continue Action = iota

	// SkipChildren skips the entry's children but continues with siblings.
	SkipChildren

	// Stop ends the walk immediately.
	Stop
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Visitor is called for each entry with its parent (nil at the top level).
type Visitor func(e, parent *Entry) Action

// Walk visits entries depth-first in display order.
func Walk(entries []*Entry, visit Visitor) {
	walk(entries, nil, visit)
}

func walk(entries []*Entry, parent *Entry, visit Visitor) bool {
	for _, e := range entries {
		switch visit(e, parent) {
		case Stop:
			return false
		case SkipChildren:
			continue
		}
		if !walk(e.Children, e, visit) {
			return false
		}
	}
	return true
}

// Find returns the entry with the given id, or nil.
func Find(entries []*Entry, id string) *Entry {
	var found *Entry
	Walk(entries, func(e, _ *Entry) Action {
		if e.ID == id {
			found = e
			return Stop
		}
		return Continue
	})
	return found
}

// Flatten returns every entry in depth-first display order.
func Flatten(entries []*Entry) []*Entry {
	var out []*Entry
	Walk(entries, func(e, _ *Entry) Action {
		out = append(out, e)
		return Continue
	})
	return out
}
