package navigation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree() []*Entry {
	return []*Entry{
		{ID: "a", Title: "A", Type: TypeTag, Children: []*Entry{
			{ID: "a1", Title: "A1", Type: TypeOperation, Method: "get", Path: "/a1"},
			{ID: "a2", Title: "A2", Type: TypeOperation, Method: "post", Path: "/a2"},
		}},
		{ID: "b", Title: "B", Type: TypeText, Children: []*Entry{
			{ID: "b1", Title: "B1", Type: TypeModel},
		}},
	}
}

func TestWalk_Order(t *testing.T) {
	var visited []string
	var parents []string
	Walk(tree(), func(e, parent *Entry) Action {
		visited = append(visited, e.ID)
		if parent != nil {
			parents = append(parents, parent.ID)
		}
		return Continue
	})
	assert.Equal(t, []string{"a", "a1", "a2", "b", "b1"}, visited)
	assert.Equal(t, []string{"a", "a", "b"}, parents)
}

func TestWalk_SkipChildren(t *testing.T) {
	var visited []string
	Walk(tree(), func(e, _ *Entry) Action {
		visited = append(visited, e.ID)
		if e.ID == "a" {
			return SkipChildren
		}
		return Continue
	})
	assert.Equal(t, []string{"a", "b", "b1"}, visited)
}

func TestWalk_Stop(t *testing.T) {
	var visited []string
	Walk(tree(), func(e, _ *Entry) Action {
		visited = append(visited, e.ID)
		if e.ID == "a1" {
			return Stop
		}
		return Continue
	})
	assert.Equal(t, []string{"a", "a1"}, visited)
}

func TestFind(t *testing.T) {
	entries := tree()
	found := Find(entries, "b1")
	require.NotNil(t, found)
	assert.Same(t, entries[1].Children[0], found)
	assert.Nil(t, Find(entries, "missing"))
}

func TestFlatten(t *testing.T) {
	assert.Len(t, Flatten(tree()), 5)
	assert.Empty(t, Flatten(nil))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "Continue", Continue.String())
	assert.Equal(t, "SkipChildren", SkipChildren.String())
	assert.Equal(t, "Stop", Stop.String())
	assert.Equal(t, "Action(9)", Action(9).String())
}

func TestEntry_String(t *testing.T) {
	entries := tree()
	assert.Equal(t, "operation get /a1", entries[0].Children[0].String())
	assert.Equal(t, `tag "A"`, entries[0].String())
	assert.Equal(t, "webhook post ping", (&Entry{Type: TypeWebhook, Method: "post", Name: "ping"}).String())
}

func TestEntry_JSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Entry{ID: "x", Title: "X", Type: TypeModel, Ref: "#/r"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","title":"X","type":"model","ref":"#/r"}`, string(data))
}
