package navigation

import "github.com/oasnav/oasnav/document"

// Option configures a traversal.
type Option func(*config)

type config struct {
	hideModels bool
	examples   bool
	strict     bool

	tagsSorter TagsSorter
	opsSorter  OperationsSorter
	ids        IDStrategy
	logger     document.Logger
}

func applyOptions(opts ...Option) *config {
	cfg := &config{
		tagsSorter: TagsAlpha(),
		opsSorter:  OperationsAlpha(),
		ids:        DefaultIDStrategy(),
		logger:     document.NopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.ids = cfg.ids.withDefaults()
	return cfg
}

// WithHideModels suppresses the "Models" section
// Default: false
func WithHideModels(hide bool) Option {
	return func(cfg *config) {
		cfg.hideModels = hide
	}
}

// WithExamples attaches example entries to operations
// Default: false
func WithExamples(enabled bool) Option {
	return func(cfg *config) {
		cfg.examples = enabled
	}
}

// WithStrictIDs makes TraverseDocument fail with a
// *oaserrors.DuplicateIDError when two entries compute the same id.
// Collisions are always disambiguated and logged; strict mode only adds the error.
// Default: false
func WithStrictIDs(strict bool) Option {
	return func(cfg *config) {
		cfg.strict = strict
	}
}

// WithTagsSorter sets the top-level tag order
// Default: TagsAlpha()
func WithTagsSorter(s TagsSorter) Option {
	return func(cfg *config) {
		cfg.tagsSorter = s
	}
}

// WithOperationsSorter sets the order of operations and webhooks in a tag
// Default: OperationsAlpha()
func WithOperationsSorter(s OperationsSorter) Option {
	return func(cfg *config) {
		cfg.opsSorter = s
	}
}

// WithIDStrategy replaces the id functions. Nil functions keep the default.
// Default: DefaultIDStrategy()
func WithIDStrategy(s IDStrategy) Option {
	return func(cfg *config) {
		cfg.ids = s
	}
}

// WithHeadingID overrides only the heading id function.
func WithHeadingID(fn func(h HeadingContext) string) Option {
	return func(cfg *config) {
		cfg.ids.Heading = fn
	}
}

// WithOperationID overrides only the operation id function.
func WithOperationID(fn func(op OperationContext, parent *document.Tag) string) Option {
	return func(cfg *config) {
		cfg.ids.Operation = fn
	}
}

// WithWebhookID overrides only the webhook id function.
func WithWebhookID(fn func(wh WebhookContext, parent *document.Tag) string) Option {
	return func(cfg *config) {
		cfg.ids.Webhook = fn
	}
}

// WithModelID overrides only the model id function.
func WithModelID(fn func(m ModelContext) string) Option {
	return func(cfg *config) {
		cfg.ids.Model = fn
	}
}

// WithTagID overrides only the tag id function.
func WithTagID(fn func(tag *document.Tag) string) Option {
	return func(cfg *config) {
		cfg.ids.Tag = fn
	}
}

// WithTagGroupID overrides only the x-tagGroups id function.
func WithTagGroupID(fn func(g *document.TagGroup) string) Option {
	return func(cfg *config) {
		cfg.ids.TagGroup = fn
	}
}

// WithSectionID overrides only the id function of the Webhooks and Models
// sections.
func WithSectionID(fn func(title string) string) Option {
	return func(cfg *config) {
		cfg.ids.Section = fn
	}
}

// WithExampleID overrides only the example id function.
func WithExampleID(fn func(ex ExampleContext, operationID string) string) Option {
	return func(cfg *config) {
		cfg.ids.Example = fn
	}
}

// WithLogger sets the logger for collision warnings and debug summaries
// Default: document.NopLogger
func WithLogger(l document.Logger) Option {
	return func(cfg *config) {
		cfg.logger = document.OrNop(l)
	}
}
