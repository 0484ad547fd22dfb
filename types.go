package lingopack

import "context"

// LanguageCode is a two-letter ISO 639-1 language identifier, plus the
// sentinel CodeAuto. Codes outside the catalog are accepted structurally;
// they simply fail to resolve upstream.
type LanguageCode string

// CodeAuto asks the facade to detect the source language from the text.
const CodeAuto LanguageCode = "auto"

// LanguagePair identifies a directed translation model. Pairs compare by
// field value; (it,en) and (en,it) are distinct packages upstream.
type LanguagePair struct {
	Source LanguageCode
	Target LanguageCode
}

func (p LanguagePair) String() string {
	return string(p.Source) + "-" + string(p.Target)
}

// Availability is the outcome of a package availability query.
type Availability string

const (
	// AvailabilityReady means a working translation path exists for the pair.
	AvailabilityReady Availability = "ready"

	// AvailabilityUnavailable means the pair does not exist upstream, or the
	// download/install attempt failed.
	AvailabilityUnavailable Availability = "unavailable"

	// AvailabilityBusy means another caller owns an in-flight download for
	// the pair. The caller gets the signal immediately and may re-poll later.
	AvailabilityBusy Availability = "busy"
)

// Engine is the boundary to the translation engine: installed-language
// introspection, package index access, download/install and translation.
type Engine interface {
	// InstalledLanguages returns handles for every locally installed language.
	InstalledLanguages(ctx context.Context) ([]Language, error)

	// UpdateIndex refreshes the upstream package index.
	UpdateIndex(ctx context.Context) error

	// AvailablePackages lists the packages known to the index.
	AvailablePackages(ctx context.Context) ([]Package, error)

	// InstallFromPath installs a previously downloaded package artifact.
	InstallFromPath(ctx context.Context, path string) error
}

// Language is a handle for one installed language.
type Language interface {
	Code() LanguageCode

	// TranslationTo returns the translation capability toward target if a
	// model connecting the two languages is installed.
	TranslationTo(target Language) (Translation, bool)
}

// Translation translates text for one installed language pair.
type Translation interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Package is one entry of the upstream package index.
type Package interface {
	FromCode() LanguageCode
	ToCode() LanguageCode
	Size() int64
	Installed() bool

	// Download fetches the package artifact and returns its local path.
	Download(ctx context.Context) (string, error)
}

// TranslationCache is the interface for caching translated text, keyed by
// text hash and language pair (see CacheKey).
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if
	// not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}

// TextNode represents a translatable unit of structured content.
type TextNode struct {
	ID       string            // Unique identifier within the document
	Text     string            // Original text content (trimmed)
	Hash     string            // SHA-256 hash of Text
	NodeType string            // Content type: "html_text", etc.
	Metadata map[string]string // Additional info (parent tag, etc.)
}

// ContentProcessor extracts translatable nodes from structured content and
// applies translations back.
type ContentProcessor interface {
	Extract(content string) (interface{}, []TextNode, error)
	Apply(parsed interface{}, nodes []TextNode, translations map[string]string) (string, error)
	ContentType() string
}

// IgnoredTags contains HTML tags whose content should not be translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}
