package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnav/oasnav/oaserrors"
)

const orderedSpec = `openapi: 3.1.0
info:
  title: Zoo
  version: 1.0.0
  description: |
    # Welcome
tags:
  - name: animals
    description: All animals
    x-displayName: Animals
  - name: staff
x-tagGroups:
  - name: Park
    tags: [animals, staff]
paths:
  /zebra:
    summary: Zebra things
    parameters:
      - name: shared
        in: query
    post:
      summary: Add zebra
      tags: [animals]
    get:
      summary: List zebras
      deprecated: true
      x-internal: true
    x-extra:
      ignored: true
  /apple:
    get:
      operationId: getApple
webhooks:
  newAnimal:
    post:
      summary: New animal
components:
  schemas:
    Zebra:
      type: object
      description: A zebra
    Apple:
      type: [string, "null"]
      x-scalar-ignore: true
`

func TestParseBytes_PreservesOrder(t *testing.T) {
	result, err := ParseBytes([]byte(orderedSpec))
	require.NoError(t, err)
	doc := result.Document

	assert.Equal(t, "3.1.0", result.Version)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "ParseBytes.yaml", result.SourcePath)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, "Zoo", doc.Title())
	assert.Equal(t, "# Welcome\n", doc.Description())
	assert.Equal(t, []string{"/zebra", "/apple"}, doc.Paths.Keys())

	zebra, ok := doc.Paths.Get("/zebra")
	require.True(t, ok)
	assert.Equal(t, "Zebra things", zebra.Summary)
	assert.Equal(t, []string{"post", "get"}, zebra.Operations.Keys(), "fixed fields and extensions are not operations")

	get, _ := zebra.Operations.Get("get")
	assert.True(t, get.Deprecated)
	assert.True(t, get.Hidden())
	post, _ := zebra.Operations.Get("post")
	assert.Equal(t, []string{"animals"}, post.Tags)

	apple, _ := doc.Paths.Get("/apple")
	appleGet, _ := apple.Operations.Get("get")
	assert.Equal(t, "getApple", appleGet.OperationID)

	assert.Equal(t, []string{"newAnimal"}, doc.Webhooks.Keys())

	require.NotNil(t, doc.Schemas())
	assert.Equal(t, []string{"Zebra", "Apple"}, doc.Schemas().Keys())
	z, _ := doc.Schemas().Get("Zebra")
	assert.Equal(t, "object", z.Type)
	assert.Equal(t, "A zebra", z.Description)
	a, _ := doc.Schemas().Get("Apple")
	assert.Equal(t, "string", a.Type)
	assert.True(t, a.Hidden())

	require.Len(t, doc.Tags, 2)
	assert.Equal(t, "Animals", doc.Tags[0].Title())
	assert.Equal(t, "All animals", doc.Tags[0].Description)
	require.Len(t, doc.TagGroups, 1)
	assert.Equal(t, "Park", doc.TagGroups[0].Name)
	assert.Equal(t, []string{"animals", "staff"}, doc.TagGroups[0].Tags)
}

func TestParseBytes_JSON(t *testing.T) {
	data := []byte(`{"openapi":"3.0.3","info":{"title":"J","version":"1"},"paths":{"/b":{"get":{}},"/a":{"put":{}}}}`)
	result, err := ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "ParseBytes.json", result.SourcePath)
	assert.Equal(t, []string{"/b", "/a"}, result.Document.Paths.Keys())

	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), result.Hash)
	assert.Equal(t, int64(len(data)), result.SourceSize)
}

func TestParseWithOptions_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zoo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orderedSpec), 0o600))

	result, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)

	named, err := ParseWithOptions(WithFilePath(path), WithSourceName("zoo"))
	require.NoError(t, err)
	assert.Equal(t, "zoo", named.SourcePath)
	assert.Equal(t, result.Hash, named.Hash)

	_, err = Parse(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseWithOptions_Reader(t *testing.T) {
	result, err := ParseWithOptions(WithReader(strings.NewReader(orderedSpec)))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.yaml", result.SourcePath)
	assert.Equal(t, 2, result.Document.Paths.Len())
}

func TestParseWithOptions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		target error
	}{
		{name: "no source", opts: nil, target: oaserrors.ErrConfig},
		{name: "two sources", opts: []Option{WithBytes([]byte("a: 1")), WithFilePath("x.yaml")}, target: oaserrors.ErrConfig},
		{name: "nil reader", opts: []Option{WithReader(nil)}, target: oaserrors.ErrConfig},
		{name: "nil bytes", opts: []Option{WithBytes(nil)}, target: oaserrors.ErrConfig},
		{name: "bad max size", opts: []Option{WithBytes([]byte("a: 1")), WithMaxSize(0)}, target: oaserrors.ErrConfig},
		{name: "invalid yaml", opts: []Option{WithBytes([]byte("paths: [unclosed"))}, target: oaserrors.ErrParse},
		{name: "scalar root", opts: []Option{WithBytes([]byte("just a string"))}, target: oaserrors.ErrParse},
		{name: "empty", opts: []Option{WithBytes([]byte(""))}, target: oaserrors.ErrParse},
		{name: "too large bytes", opts: []Option{WithBytes([]byte("a: 1234")), WithMaxSize(3)}, target: oaserrors.ErrResourceLimit},
		{name: "too large reader", opts: []Option{WithReader(bytes.NewReader([]byte("a: 1234"))), WithMaxSize(3)}, target: oaserrors.ErrResourceLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseBytes_RootMustBeMapping(t *testing.T) {
	_, err := ParseBytes([]byte("- a\n- b\n"))
	var parseErr *oaserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "ParseBytes.yaml", parseErr.Path)
	assert.Equal(t, 1, parseErr.Line)
	assert.Contains(t, parseErr.Message, "mapping")
}

func TestParseBytes_MissingVersionWarns(t *testing.T) {
	result, err := ParseBytes([]byte("paths: {}\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Version)
	assert.Contains(t, result.Warnings, "no openapi or swagger version field")
}

func TestParseBytes_SwaggerDefinitions(t *testing.T) {
	result, err := ParseBytes([]byte(`swagger: "2.0"
info: {title: Old, version: "1"}
paths:
  /pets:
    get:
      summary: List
definitions:
  Pet:
    type: object
  Error:
    type: object
`))
	require.NoError(t, err)
	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, []string{"Pet", "Error"}, result.Document.Schemas().Keys())
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, SourceFormatJSON, detectFormatFromPath("a.json"))
	assert.Equal(t, SourceFormatYAML, detectFormatFromPath("a.yml"))
	assert.Equal(t, SourceFormatUnknown, detectFormatFromPath("a.txt"))
	assert.Equal(t, SourceFormatJSON, detectFormatFromContent([]byte("  \n{}")))
	assert.Equal(t, SourceFormatYAML, detectFormatFromContent([]byte("openapi: 3.1.0")))
	assert.Equal(t, SourceFormatUnknown, detectFormatFromContent([]byte("   ")))
}
