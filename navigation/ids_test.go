package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasnav/oasnav/document"
)

func TestDefaultIDStrategy(t *testing.T) {
	ids := DefaultIDStrategy()
	pets := &document.Tag{Name: "Pet Owners"}
	op := OperationContext{Path: "/pets/{id}", Method: "get"}

	assert.Equal(t, "description/getting-started", ids.Heading(HeadingContext{Depth: 1, Value: "Getting Started", Slug: "getting-started"}))
	assert.Equal(t, "tag/pet-owners", ids.Tag(pets))
	assert.Equal(t, "tag/pet-owners/GET/pets/{id}", ids.Operation(op, pets))
	assert.Equal(t, "GET/pets/{id}", ids.Operation(op, nil))
	assert.Equal(t, "tag/pet-owners/webhook/POST/newpet", ids.Webhook(WebhookContext{Name: "newPet", Method: "post"}, pets))
	assert.Equal(t, "webhook/POST/newpet", ids.Webhook(WebhookContext{Name: "newPet", Method: "post"}, nil))
	assert.Equal(t, "model/pet", ids.Model(ModelContext{Name: "Pet"}))
	assert.Equal(t, "tag/pet-owners/model/pet", ids.Model(ModelContext{Name: "Pet", Tag: pets}))
	assert.Equal(t, "tag-group/pet-owners", ids.TagGroup(&document.TagGroup{Name: "Pet Owners"}))
	assert.Equal(t, "webhooks", ids.Section(WebhooksTitle))
	assert.Equal(t, "models", ids.Section(ModelsTitle))
	assert.Equal(t, "x/example/big-dog", ids.Example(ExampleContext{Name: "Big Dog"}, "x"))
}

func TestDocumentIDStrategy(t *testing.T) {
	ids := DocumentIDStrategy("store")
	tag := &document.Tag{Name: "pets"}

	assert.Equal(t, "store/tag/pets", ids.Tag(tag))
	assert.Equal(t, "store/tag/pets/POST/pets", ids.Operation(OperationContext{Path: "/pets", Method: "post"}, tag))
	assert.Equal(t, "store/DELETE/pets", ids.Operation(OperationContext{Path: "/pets", Method: "delete"}, nil))
	assert.Equal(t, "store/webhooks", ids.Section(WebhooksTitle))
	assert.Equal(t, "store/webhook/POST/ping", ids.Webhook(WebhookContext{Name: "ping", Method: "post"}, nil))
	assert.Equal(t, "store/models", ids.Section(ModelsTitle))
	assert.Equal(t, "store/model/pet", ids.Model(ModelContext{Name: "Pet"}))
	assert.Equal(t, "store/tag/pets/model/pet", ids.Model(ModelContext{Name: "Pet", Tag: tag}))
	assert.Equal(t, "store/tag-group/pets", ids.TagGroup(&document.TagGroup{Name: "pets"}))
	assert.Equal(t, "store/description/intro", ids.Heading(HeadingContext{Slug: "intro"}))
}

func TestIDStrategy_WithDefaults(t *testing.T) {
	custom := IDStrategy{Tag: func(tag *document.Tag) string { return "t:" + tag.Name }}.withDefaults()

	assert.Equal(t, "t:x", custom.Tag(&document.Tag{Name: "x"}))
	assert.Equal(t, "model/a", custom.Model(ModelContext{Name: "a"}))
	assert.NotNil(t, custom.Heading)
	assert.NotNil(t, custom.Example)
	assert.NotNil(t, custom.TagGroup)
	assert.Equal(t, "models", custom.Section(ModelsTitle))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a/b", join("", "a", "", "b"))
	assert.Equal(t, "", join("", ""))
}
