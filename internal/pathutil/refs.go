package pathutil

import "strings"

// Local component prefixes followed when dereferencing.
const (
	RefPrefixSchemas       = "#/components/schemas/"
	RefPrefixParameters    = "#/components/parameters/"
	RefPrefixRequestBodies = "#/components/requestBodies/"
	RefPrefixExamples      = "#/components/examples/"
	RefPrefixPathItems     = "#/components/pathItems/"
)

// ModelRefPrefix is the prefix navigation model entries point through.
const ModelRefPrefix = "#/content/components/schemas/"

// OperationRef builds "#/paths/{escaped path}/{method key}".
// The method key is used as written in the document.
func OperationRef(path, methodKey string) string {
	return Join("paths", path, methodKey)
}

// WebhookRef builds "#/webhooks/{escaped name}/{method key}".
func WebhookRef(name, methodKey string) string {
	return Join("webhooks", name, methodKey)
}

// ModelRef builds "#/content/components/schemas/{name}".
func ModelRef(name string) string {
	return ModelRefPrefix + name
}

// IsLocal reports whether ref points into the current document.
func IsLocal(ref string) bool {
	return strings.HasPrefix(ref, "#")
}
