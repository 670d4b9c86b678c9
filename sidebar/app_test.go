package sidebar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnav/oasnav/document"
	"github.com/oasnav/oasnav/internal/testutil"
	"github.com/oasnav/oasnav/navigation"
	"github.com/oasnav/oasnav/workspace"
)

const (
	docID     = "pet-store"
	petsTag   = "pet-store/tag/pets"
	shopGroup = "pet-store/tag-group/shop"
	createOp  = "pet-store/tag/pets/POST/pets"
	dogEx     = "pet-store/tag/pets/POST/pets/example/dog"
	catEx     = "pet-store/tag/pets/POST/pets/example/cat"
	getOp     = "pet-store/tag/pets/GET/pets/{id}"
)

type recordingRouter struct {
	targets []Target
	err     error
}

func (r *recordingRouter) Push(t Target) error {
	r.targets = append(r.targets, t)
	return r.err
}

type warnLogger struct {
	document.NopLogger
	warns []string
}

func (l *warnLogger) Warn(msg string, _ ...any) { l.warns = append(l.warns, msg) }

func newApp(t *testing.T, opts ...Option) (*App, *workspace.Store, *recordingRouter) {
	t.Helper()
	store := workspace.New()
	require.NoError(t, store.Add("Pet Store", testutil.ParseDocument(t, testutil.PetStoreYAML)))
	require.NoError(t, store.Add("minimal", testutil.ParseDocument(t, testutil.MinimalYAML)))
	router := &recordingRouter{}
	app, err := NewApp(store, append([]Option{WithRouter(router)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app, store, router
}

func TestApp_SetRouteDocumentOnly(t *testing.T) {
	app, _, _ := newApp(t)

	app.SetRoute(Route{DocumentSlug: docID})

	assert.Equal(t, []string{docID}, app.Selected())
	assert.True(t, app.IsExpanded(docID))
}

func TestApp_SetRouteOperation(t *testing.T) {
	app, _, _ := newApp(t)

	app.SetRoute(Route{DocumentSlug: docID, Path: "/pets/{id}", Method: "GET"})

	assert.Equal(t, []string{getOp, petsTag, shopGroup, docID}, app.Selected())
	for _, id := range app.Selected() {
		assert.True(t, app.IsExpanded(id), id)
	}
}

func TestApp_SetRouteExample(t *testing.T) {
	app, _, _ := newApp(t)

	app.SetRoute(Route{DocumentSlug: docID, Path: "/pets", Method: "post", ExampleName: "cat"})

	assert.Equal(t, []string{catEx, createOp, petsTag, shopGroup, docID}, app.Selected())
	assert.True(t, app.IsExpanded(catEx))
}

func TestApp_SetRouteUnknownExampleFallsBack(t *testing.T) {
	app, _, _ := newApp(t)

	app.SetRoute(Route{DocumentSlug: docID, Path: "/pets", Method: "post", ExampleName: "parrot"})

	assert.Equal(t, []string{createOp, petsTag, shopGroup, docID}, app.Selected())
}

func TestApp_SetRouteUnknownOperationFallsBack(t *testing.T) {
	app, _, _ := newApp(t)

	app.SetRoute(Route{DocumentSlug: docID, Path: "/nowhere", Method: "get"})

	assert.Equal(t, []string{docID}, app.Selected())
}

func TestApp_SetRouteWebhook(t *testing.T) {
	app, _, _ := newApp(t)

	app.SetRoute(Route{DocumentSlug: docID, WebhookName: "petAdopted", Method: "post"})

	assert.Equal(t, []string{"pet-store/tag/pets/webhook/POST/petadopted", petsTag, shopGroup, docID}, app.Selected())
}

func TestApp_SetRouteClears(t *testing.T) {
	app, _, _ := newApp(t)
	app.SetRoute(Route{DocumentSlug: docID, Path: "/pets", Method: "post"})
	expanded := app.ExpandedItems()

	app.SetRoute(Route{})
	assert.Empty(t, app.Selected())
	assert.Equal(t, expanded, app.ExpandedItems(), "clearing the route keeps expansion")

	app.SetRoute(Route{DocumentSlug: "unknown"})
	assert.Empty(t, app.Selected())
}

func TestApp_SetRouteKeepsOtherBranchesExpanded(t *testing.T) {
	app, _, _ := newApp(t)
	app.SetRoute(Route{DocumentSlug: "minimal", Path: "/ping", Method: "get"})

	app.SetRoute(Route{DocumentSlug: docID, Path: "/pets", Method: "post"})

	assert.True(t, app.IsExpanded("minimal/tag/default/GET/ping"))
	assert.False(t, app.IsSelected("minimal"))
}

func TestApp_HandleSelectUnknown(t *testing.T) {
	logger := &warnLogger{}
	app, _, router := newApp(t, WithLogger(logger))
	app.SetRoute(Route{DocumentSlug: docID})
	before := app.ExpandedItems()

	require.NoError(t, app.HandleSelectItem("missing"))

	assert.Equal(t, []string{"sidebar: unknown item"}, logger.warns)
	assert.Empty(t, router.targets)
	assert.Equal(t, []string{docID}, app.Selected())
	assert.Equal(t, before, app.ExpandedItems())
}

func TestApp_HandleSelectDocument(t *testing.T) {
	app, _, router := newApp(t)

	require.NoError(t, app.HandleSelectItem("minimal"))

	assert.Equal(t, []string{"minimal"}, app.Selected())
	assert.True(t, app.IsExpanded("minimal"))
	require.Len(t, router.targets, 1)
	assert.Equal(t, Target{Name: RouteDocumentOverview, Params: map[string]string{ParamDocumentSlug: "minimal"}}, router.targets[0])
	assert.Equal(t, Route{DocumentSlug: "minimal"}, app.Route())
}

func TestApp_HandleSelectHeading(t *testing.T) {
	app, _, router := newApp(t)
	heading := "pet-store/description/authentication"

	require.NoError(t, app.HandleSelectItem(heading))

	assert.Equal(t, []string{heading, "pet-store/description/introduction", docID}, app.Selected())
	require.Len(t, router.targets, 1)
	assert.Equal(t, RouteDocumentOverview, router.targets[0].Name)
	assert.Equal(t, docID, router.targets[0].Params[ParamDocumentSlug])
}

func TestApp_HandleSelectOperation(t *testing.T) {
	app, _, router := newApp(t)

	require.NoError(t, app.HandleSelectItem(createOp))

	assert.Equal(t, []string{dogEx, createOp, petsTag, shopGroup, docID}, app.Selected(), "first example is selected")
	assert.True(t, app.IsExpanded(dogEx), "the selected example is expanded")
	for _, id := range []string{createOp, petsTag, shopGroup, docID} {
		assert.True(t, app.IsExpanded(id), id)
	}
	require.Len(t, router.targets, 1)
	assert.Equal(t, Target{
		Name: RouteExample,
		Params: map[string]string{
			ParamDocumentSlug: docID,
			ParamPathEncoded:  "%2Fpets",
			ParamMethod:       "post",
			ParamExampleName:  "dog",
		},
	}, router.targets[0])
	assert.Equal(t, Route{DocumentSlug: docID, Path: "/pets", Method: "post", ExampleName: "dog"}, app.Route())
}

func TestApp_HandleSelectOperationWithoutExamples(t *testing.T) {
	app, _, router := newApp(t)

	require.NoError(t, app.HandleSelectItem(getOp))

	assert.Equal(t, getOp, app.Selected()[0])
	require.Len(t, router.targets, 1)
	assert.Equal(t, DefaultExampleName, router.targets[0].Params[ParamExampleName])
	assert.Equal(t, "%2Fpets%2F%7Bid%7D", router.targets[0].Params[ParamPathEncoded])
}

func TestApp_HandleSelectSelectedOperationToggles(t *testing.T) {
	app, _, router := newApp(t)
	require.NoError(t, app.HandleSelectItem(createOp))
	require.True(t, app.IsExpanded(createOp))

	require.NoError(t, app.HandleSelectItem(createOp))
	assert.False(t, app.IsExpanded(createOp))
	assert.Equal(t, dogEx, app.Selected()[0], "selection is kept")

	require.NoError(t, app.HandleSelectItem(createOp))
	assert.True(t, app.IsExpanded(createOp))
	assert.Len(t, router.targets, 1, "toggling does not navigate")
}

func TestApp_HandleSelectExample(t *testing.T) {
	app, _, router := newApp(t)

	require.NoError(t, app.HandleSelectItem(catEx))

	assert.Equal(t, []string{catEx, createOp, petsTag, shopGroup, docID}, app.Selected())
	assert.True(t, app.IsExpanded(catEx))
	require.Len(t, router.targets, 1)
	assert.Equal(t, "cat", router.targets[0].Params[ParamExampleName])
	assert.Equal(t, RouteExample, router.targets[0].Name)
}

func TestApp_HandleSelectTagToggles(t *testing.T) {
	app, _, router := newApp(t)

	require.NoError(t, app.HandleSelectItem(petsTag))
	assert.True(t, app.IsExpanded(petsTag))
	assert.Empty(t, app.Selected())

	require.NoError(t, app.HandleSelectItem(petsTag))
	assert.False(t, app.IsExpanded(petsTag))

	require.NoError(t, app.HandleSelectItem("pet-store/model/pet"))
	assert.True(t, app.IsExpanded("pet-store/model/pet"))
	assert.Empty(t, router.targets)
}

func TestApp_HandleSelectRouterError(t *testing.T) {
	app, _, router := newApp(t)
	router.err = errors.New("blocked")

	err := app.HandleSelectItem(docID)
	require.Error(t, err)
	assert.ErrorIs(t, err, router.err)
	assert.Equal(t, []string{docID}, app.Selected())
}

func TestApp_RefreshOnStoreChange(t *testing.T) {
	app, store, _ := newApp(t)
	app.SetRoute(Route{DocumentSlug: "minimal", Path: "/pong", Method: "get"})
	require.Equal(t, []string{"minimal"}, app.Selected())

	require.NoError(t, store.Add("minimal", testutil.ParseDocument(t, testutil.MinimalYAML+`  /pong:
    get:
      summary: Pong
`)))

	assert.Equal(t, []string{"minimal/tag/default/GET/pong", "minimal/tag/default", "minimal"}, app.Selected())
}

func TestApp_RefreshFollowsOrder(t *testing.T) {
	app, store, _ := newApp(t)

	store.Update(document.ExtOrder, []string{"minimal"})

	entries := app.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "minimal", entries[0].ID)
	assert.Equal(t, docID, entries[1].ID)
}

func TestApp_CloseStopsFollowing(t *testing.T) {
	app, store, _ := newApp(t)
	app.Close()

	store.Remove("minimal")

	_, ok := app.Get("minimal")
	assert.True(t, ok)
}

func TestApp_Location(t *testing.T) {
	app, _, _ := newApp(t)

	loc, ok := app.Location(catEx)
	require.True(t, ok)
	assert.Equal(t, Location{
		Type:         navigation.TypeExample,
		DocumentSlug: docID,
		Path:         "/pets",
		Method:       "post",
		ExampleName:  "cat",
	}, loc)

	assert.Equal(t, catEx, app.Resolve(Route{DocumentSlug: docID, Path: "/pets", Method: "post", ExampleName: "cat"}))
	assert.Equal(t, "", app.Resolve(Route{}))
}

func TestApp_NavigationOptions(t *testing.T) {
	app, _, _ := newApp(t, WithNavigationOptions(navigation.WithHideModels(true)))

	_, ok := app.Get("pet-store/models")
	assert.False(t, ok)
}

func TestApp_StateHooks(t *testing.T) {
	var selected []string
	app, _, _ := newApp(t, WithStateHooks(Hooks{
		OnAfterSelect: func(id string) { selected = append(selected, id) },
	}))
	selected = nil

	app.SetRoute(Route{DocumentSlug: docID})
	assert.Equal(t, []string{docID}, selected)
}

func TestEncodePath(t *testing.T) {
	assert.Equal(t, "%2Fpets%2F%7Bid%7D", EncodePath("/pets/{id}"))
	assert.Equal(t, "%2Fa%20b", EncodePath("/a b"))
	assert.Equal(t, "%2Fpets(legacy)%2F*!~'_.-", EncodePath("/pets(legacy)/*!~'_.-"))
	assert.Equal(t, "%2Fa%2Bb%3Fq%3D1%26r%2521", EncodePath("/a+b?q=1&r%21"))
	assert.Equal(t, "%2Fcaf%C3%A9", EncodePath("/café"))
}

func TestRouterFunc(t *testing.T) {
	var got Target
	r := RouterFunc(func(t Target) error { got = t; return nil })
	require.NoError(t, r.Push(Target{Name: RouteExample}))
	assert.Equal(t, RouteExample, got.Name)
}
