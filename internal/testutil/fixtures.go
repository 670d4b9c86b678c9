// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/oasnav/oasnav/document"
)

// PetStoreYAML is a small OAS 3.1 document that touches every kind of
// navigation entry: description headings, declared and discovered tags, a
// tag group, an untagged operation, examples, a tagged and an untagged
// webhook, and schemas including a hidden one.
const PetStoreYAML = `openapi: 3.1.0
info:
  title: Pet Store
  version: 1.0.0
  description: |
    # Introduction
    Welcome.
    ## Authentication
    Use a key.
    # Errors
tags:
  - name: pets
    x-displayName: Pets
    description: Everything about pets
  - name: store
    description: Orders
  - name: secret
    x-internal: true
x-tagGroups:
  - name: Shop
    tags: [store, pets]
paths:
  /pets:
    get:
      summary: List pets
      tags: [pets]
      parameters:
        - name: limit
          in: query
          examples:
            small:
              value: 1
    post:
      summary: Create pet
      tags: [pets]
      requestBody:
        content:
          application/json:
            examples:
              dog:
                value: {name: Rex}
              cat:
                value: {name: Tom}
  /pets/{id}:
    delete:
      summary: Delete pet
      tags: [pets, secret]
    get:
      summary: Get pet
      tags: [pets]
      deprecated: true
  /orders:
    post:
      summary: Place order
      tags: [store]
  /health:
    get:
      summary: Health check
  /internal:
    get:
      summary: Internal
      x-internal: true
webhooks:
  petAdopted:
    post:
      summary: Pet adopted
      tags: [pets]
  orderShipped:
    post:
      description: An order shipped
components:
  schemas:
    Pet:
      type: object
      description: A pet
    Order:
      type: object
      deprecated: true
    Secret:
      type: object
      x-scalar-ignore: true
`

// MinimalYAML is a document with only an info block and one path.
const MinimalYAML = `openapi: 3.0.3
info:
  title: Minimal
  version: 0.1.0
paths:
  /ping:
    get:
      summary: Ping
`

// ParseDocument parses src and fails the test on error.
func ParseDocument(t *testing.T, src string) *document.Document {
	t.Helper()

	result, err := document.ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}
	return result.Document
}

// WriteTempFile writes content to name inside a fresh temp directory and
// returns the file path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}

// WriteTempYAML marshals doc to YAML and writes it to a temporary file.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals doc to indented JSON and writes it to a temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", string(data))
}
