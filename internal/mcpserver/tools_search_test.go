package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnav/oasnav/search"
)

func callSearch(t *testing.T, input searchInput) searchOutput {
	t.Helper()
	res, out, err := handleSearch(context.Background(), nil, input)
	require.NoError(t, err)
	require.Nil(t, res, "unexpected error result")
	output, ok := out.(searchOutput)
	require.True(t, ok, "expected searchOutput, got %T", out)
	return output
}

func TestHandleSearch(t *testing.T) {
	out := callSearch(t, searchInput{Spec: petStoreSpec(), Query: "adopted"})

	assert.Equal(t, "adopted", out.Query)
	assert.Positive(t, out.Indexed)
	require.NotEmpty(t, out.Results)
	assert.Equal(t, "pet-store/tag/pets/webhook/POST/petadopted", out.Results[0].ID)
	assert.Equal(t, search.TypeWebhook, out.Results[0].Type)
}

func TestHandleSearch_TypeFilter(t *testing.T) {
	out := callSearch(t, searchInput{Spec: petStoreSpec(), Query: "pet", Type: "model"})

	require.NotEmpty(t, out.Results)
	for _, r := range out.Results {
		assert.Equal(t, search.TypeModel, r.Type)
	}
	assert.Equal(t, len(out.Results), out.Matched)
}

func TestHandleSearch_Limit(t *testing.T) {
	all := callSearch(t, searchInput{Spec: petStoreSpec(), Query: "pet"})
	require.Greater(t, all.Matched, 2)

	out := callSearch(t, searchInput{Spec: petStoreSpec(), Query: "pet", Limit: 2})
	assert.Equal(t, 2, out.Returned)
	assert.Equal(t, all.Matched, out.Matched)
	assert.Equal(t, all.Results[:2], out.Results)
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	res, out, err := handleSearch(context.Background(), nil, searchInput{Spec: petStoreSpec(), Query: "  "})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
	assert.Nil(t, out)
}
