// Package pathutil builds and splits JSON Pointer references (RFC 6901) into
// OpenAPI documents.
//
// [Pointer] uses push/pop semantics so recursive decoders can track where
// they are without allocating a string per step; the pointer is only
// materialized when String() is called:
//
//	p := pathutil.Acquire("paths")
//	defer p.Release()
//
//	p.Push("/pets/{id}")
//	p.Push("get")
//	p.String() // "#/paths/~1pets~1{id}/get"
//
// The ref helpers build the pointers that navigation entries carry:
//
//	pathutil.OperationRef("/pets", "get") // "#/paths/~1pets/get"
//	pathutil.WebhookRef("newPet", "post")  // "#/webhooks/newPet/post"
//	pathutil.ModelRef("Pet")               // "#/content/components/schemas/Pet"
package pathutil
