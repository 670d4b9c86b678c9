package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasnav/oasnav/navigation"
)

func sampleTree() []*navigation.Entry {
	return []*navigation.Entry{
		{ID: "doc", Type: navigation.TypeDocument, Children: []*navigation.Entry{
			{ID: "tag", Type: navigation.TypeTag, Children: []*navigation.Entry{
				{ID: "op", Type: navigation.TypeOperation, Method: "get", Path: "/a", Children: []*navigation.Entry{
					{ID: "ex", Type: navigation.TypeExample, Name: "one"},
				}},
				{ID: "op2", Type: navigation.TypeOperation, Method: "post", Path: "/a"},
			}},
			{ID: "models", Type: navigation.TypeText, Children: []*navigation.Entry{
				{ID: "model", Type: navigation.TypeModel},
			}},
		}},
	}
}

func TestState_SetSelectedChain(t *testing.T) {
	s := NewState(sampleTree())

	s.SetSelected("ex")

	assert.Equal(t, []string{"ex", "op", "tag", "doc"}, s.Selected())
	assert.True(t, s.IsSelected("tag"))
	assert.False(t, s.IsSelected("models"))
	assert.Equal(t, map[string]bool{"ex": true, "op": true, "tag": true, "doc": true}, s.SelectedItems())
}

func TestState_SetSelectedReplaces(t *testing.T) {
	s := NewState(sampleTree())
	s.SetSelected("ex")

	s.SetSelected("model")

	assert.Equal(t, []string{"model", "models", "doc"}, s.Selected())
	assert.False(t, s.IsSelected("op"))
}

func TestState_SetSelectedUnknownClears(t *testing.T) {
	s := NewState(sampleTree())
	s.SetSelected("ex")

	s.SetSelected("nope")
	assert.Empty(t, s.Selected())
	assert.Empty(t, s.SelectedItems())

	s.SetSelected("ex")
	s.SetSelected("")
	assert.Empty(t, s.Selected())
}

func TestState_SetExpanded(t *testing.T) {
	s := NewState(sampleTree())

	s.SetExpanded("op", true)
	assert.Equal(t, map[string]bool{"op": true, "tag": true, "doc": true}, s.ExpandedItems())

	s.SetExpanded("tag", false)
	assert.False(t, s.IsExpanded("tag"))
	assert.True(t, s.IsExpanded("op"), "collapsing does not touch descendants")
	assert.True(t, s.IsExpanded("doc"), "collapsing does not touch ancestors")

	s.SetExpanded("nope", true)
	assert.Len(t, s.ExpandedItems(), 2)
}

func TestState_ExpandDoesNotCollapseOthers(t *testing.T) {
	s := NewState(sampleTree())

	s.SetExpanded("model", true)
	s.SetExpanded("ex", true)

	assert.True(t, s.IsExpanded("models"))
	assert.True(t, s.IsExpanded("op"))
}

func TestState_Toggle(t *testing.T) {
	s := NewState(sampleTree())

	s.Toggle("op2")
	assert.True(t, s.IsExpanded("op2"))
	assert.True(t, s.IsExpanded("tag"))

	s.Toggle("op2")
	assert.False(t, s.IsExpanded("op2"))
	assert.True(t, s.IsExpanded("tag"))
}

func TestState_Reset(t *testing.T) {
	s := NewState(sampleTree())
	s.SetSelected("ex")
	s.SetExpanded("ex", true)

	s.Reset()

	assert.Empty(t, s.Selected())
	assert.Empty(t, s.ExpandedItems())
}

func TestState_Rebuild(t *testing.T) {
	s := NewState(sampleTree())
	s.SetSelected("ex")
	s.SetExpanded("ex", true)
	s.SetExpanded("model", true)

	// The model moves under the tag and the models section disappears.
	next := []*navigation.Entry{
		{ID: "doc", Type: navigation.TypeDocument, Children: []*navigation.Entry{
			{ID: "tag", Type: navigation.TypeTag, Children: []*navigation.Entry{
				{ID: "op", Type: navigation.TypeOperation, Children: []*navigation.Entry{
					{ID: "ex", Type: navigation.TypeExample},
				}},
				{ID: "model", Type: navigation.TypeModel},
			}},
		}},
	}
	s.Rebuild(next)

	assert.Equal(t, []string{"ex", "op", "tag", "doc"}, s.Selected())
	assert.False(t, s.IsExpanded("models"))
	assert.True(t, s.IsExpanded("model"))
	assert.Equal(t, "tag", s.Parent("model").ID)
}

func TestState_RebuildDropsMissingSelection(t *testing.T) {
	s := NewState(sampleTree())
	s.SetSelected("ex")

	s.Rebuild([]*navigation.Entry{{ID: "doc", Type: navigation.TypeDocument}})

	assert.Empty(t, s.Selected())
	assert.False(t, s.IsSelected("doc"))
}

func TestState_Hooks(t *testing.T) {
	var calls []string
	record := func(name string) func(string) {
		return func(id string) { calls = append(calls, name+":"+id) }
	}
	s := NewState(sampleTree(), WithHooks(Hooks{
		OnBeforeSelect: record("beforeSelect"),
		OnAfterSelect:  record("afterSelect"),
		OnBeforeExpand: record("beforeExpand"),
		OnAfterExpand:  record("afterExpand"),
	}))

	s.SetSelected("op")
	s.SetExpanded("op", true)
	s.SetExpanded("missing", true)

	assert.Equal(t, []string{
		"beforeSelect:op", "afterSelect:op",
		"beforeExpand:op", "afterExpand:op",
	}, calls)
}

func TestState_AfterSelectSeesNewSelection(t *testing.T) {
	var s *State
	var seen []string
	s = NewState(sampleTree(), WithHooks(Hooks{
		OnAfterSelect: func(string) { seen = s.Selected() },
	}))

	s.SetSelected("op")
	assert.Equal(t, []string{"op", "tag", "doc"}, seen)
}

func TestState_Lookups(t *testing.T) {
	s := NewState(sampleTree())

	e, ok := s.Get("op")
	assert.True(t, ok)
	assert.Equal(t, "/a", e.Path)
	_, ok = s.Get("missing")
	assert.False(t, ok)

	assert.Nil(t, s.Parent("doc"))
	assert.Nil(t, s.Parent("missing"))
	assert.Nil(t, s.Ancestors("missing"))
	assert.Len(t, s.Entries(), 1)
}
