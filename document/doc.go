// Package document decodes OpenAPI documents into ordered, typed views.
//
// Navigation depends on source key order (paths, webhooks, schemas and
// examples are listed in the order an author wrote them), which a plain
// map[string]any loses. The decoder therefore walks the yaml.Node tree
// produced by go.yaml.in/yaml/v4 and builds [OrderedMap] sections instead.
// JSON input is decoded through the same path.
//
// Only the fields navigation reads are kept: info, paths and webhooks with
// their operations (summary, tags, deprecated, parameters and request body
// examples), tags, x-tagGroups and components.schemas (or Swagger 2.0
// definitions). Local $refs on path items, parameters, request bodies,
// examples and schemas are followed; unresolvable, circular or remote refs
// degrade to empty views and are reported in [ParseResult.Warnings].
//
// # Quick Start
//
//	result, err := document.ParseWithOptions(document.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for path, item := range result.Document.Paths.All() {
//		fmt.Println(path, item.Operations.Keys())
//	}
//
// # Logging
//
// Pass a [Logger] with [WithLogger]; [NewSlogAdapter] wraps a *slog.Logger.
// The same interface is accepted by the navigation, workspace and sidebar
// packages.
package document
