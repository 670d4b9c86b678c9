package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/oasnav/oasnav/internal/options"
	"github.com/oasnav/oasnav/oaserrors"
)

// Default resource limits.
const (
	// DefaultMaxSize is the largest input accepted, in bytes.
	DefaultMaxSize int64 = 100 << 20
	// DefaultMaxRefDepth bounds how many $ref hops are followed from one node.
	DefaultMaxRefDepth = 32
)

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the decoded document and metadata about its source.
//
// Callers should treat the result as read-only: navigation results and caches
// are keyed on Hash and assume the document does not change underneath them.
type ParseResult struct {
	// Document is the typed, order-preserving view of the input.
	Document *Document
	// SourcePath is the file path, or a synthetic name ("ParseBytes.yaml")
	// for in-memory input, or the WithSourceName override.
	SourcePath string
	// SourceFormat is the detected input format.
	SourceFormat SourceFormat
	// Version is the declared openapi/swagger version ("" if absent).
	Version string
	// Hash is the hex sha256 of the raw input bytes.
	Hash string
	// SourceSize is the input size in bytes.
	SourceSize int64
	// LoadTime is the time spent reading the input (zero for WithBytes).
	LoadTime time.Duration
	// Warnings lists tolerated problems: missing version, unresolved refs.
	Warnings []string
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	sourceName  *string
	logger      Logger
	maxSize     int64
	maxRefDepth int
}

// Parse decodes the document at path.
func Parse(path string) (*ParseResult, error) {
	return ParseWithOptions(WithFilePath(path))
}

// ParseBytes decodes an in-memory document.
func ParseBytes(data []byte) (*ParseResult, error) {
	return ParseWithOptions(WithBytes(data))
}

// ParseWithOptions decodes an OpenAPI document using functional options.
//
// Example:
//
//	result, err := document.ParseWithOptions(
//	    document.WithFilePath("openapi.yaml"),
//	    document.WithLogger(document.NewSlogAdapter(slog.Default())),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("document: invalid options: %w", err)
	}

	var (
		data       []byte
		sourcePath string
		format     SourceFormat
		loadTime   time.Duration
	)
	switch {
	case cfg.filePath != nil:
		sourcePath = *cfg.filePath
		start := time.Now()
		data, err = readFile(sourcePath, cfg.maxSize)
		loadTime = time.Since(start)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(sourcePath)
		if format == SourceFormatUnknown {
			format = detectFormatFromContent(data)
		}
	case cfg.reader != nil:
		start := time.Now()
		data, err = readLimited(cfg.reader, cfg.maxSize)
		loadTime = time.Since(start)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromContent(data)
		sourcePath = syntheticName("ParseReader", format)
	default:
		data = cfg.bytes
		if int64(len(data)) > cfg.maxSize {
			return nil, &oaserrors.ResourceLimitError{ResourceType: "input_size", Limit: cfg.maxSize, Actual: int64(len(data))}
		}
		format = detectFormatFromContent(data)
		sourcePath = syntheticName("ParseBytes", format)
	}
	if cfg.sourceName != nil {
		sourcePath = *cfg.sourceName
	}

	result, err := decode(data, sourcePath, cfg)
	if err != nil {
		return nil, err
	}
	result.SourceFormat = format
	result.LoadTime = loadTime
	cfg.logger.Debug("document: parsed",
		"source", sourcePath,
		"format", string(format),
		"version", result.Version,
		"bytes", result.SourceSize,
		"paths", result.Document.Paths.Len(),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

func decode(data []byte, sourcePath string, cfg *parseConfig) (*ParseResult, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "invalid YAML or JSON", Cause: err}
	}
	root := resolveAlias(&node)
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, &oaserrors.ParseError{Path: sourcePath, Message: "empty document"}
		}
		root = resolveAlias(root.Content[0])
	}
	if root == nil || root.Kind == 0 {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "empty document"}
	}
	if root.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Line:    root.Line,
			Column:  root.Column,
			Message: "document root must be a mapping",
		}
	}

	d := newDecoder(root, cfg.logger, cfg.maxRefDepth)
	defer d.release()
	doc := d.document()

	sum := sha256.Sum256(data)
	result := &ParseResult{
		Document:   doc,
		SourcePath: sourcePath,
		Version:    doc.Version(),
		Hash:       hex.EncodeToString(sum[:]),
		SourceSize: int64(len(data)),
		Warnings:   d.warnings,
	}
	if result.Version == "" {
		result.Warnings = append(result.Warnings, "no openapi or swagger version field")
	}
	return result, nil
}

func readFile(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file: %w", err)
	}
	if info.Size() > maxSize {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "input_size", Limit: maxSize, Actual: info.Size(), Message: path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file: %w", err)
	}
	return data, nil
}

func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("document: failed to read input: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "input_size", Limit: maxSize}
	}
	return data, nil
}

func syntheticName(method string, format SourceFormat) string {
	if format == SourceFormatJSON {
		return method + ".json"
	}
	return method + ".yaml"
}

// detectFormatFromPath detects the format from the file extension
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent treats input starting with '{' or '[' as JSON
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		logger:      NopLogger{},
		maxSize:     DefaultMaxSize,
		maxRefDepth: DefaultMaxRefDepth,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := options.ValidateSingleInputSource("document",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "bytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithSourceName overrides ParseResult.SourcePath.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithLogger sets the logger for parse diagnostics
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = OrNop(l)
		return nil
	}
}

// WithMaxSize limits the input size in bytes
// Default: DefaultMaxSize
func WithMaxSize(n int64) Option {
	return func(cfg *parseConfig) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "max_size", Value: n, Message: "must be positive"}
		}
		cfg.maxSize = n
		return nil
	}
}

// WithMaxRefDepth limits how many $ref hops are followed from one node
// Default: DefaultMaxRefDepth
func WithMaxRefDepth(n int) Option {
	return func(cfg *parseConfig) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "max_ref_depth", Value: n, Message: "must be positive"}
		}
		cfg.maxRefDepth = n
		return nil
	}
}
