package lingopack

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Translator orchestrates language detection, package availability and the
// engine translation call.
//
// The facade is total: text in, text out. Every internal failure (missing
// package, contended download, engine fault) degrades to returning the input
// unchanged. Translation is a best-effort enhancement of the host pipeline,
// never a reason to abort it.
type Translator struct {
	engine     Engine
	packages   *PackageCache
	cache      TranslationCache
	detector   func(string) LanguageCode
	logger     *zap.Logger
	processors map[string]ContentProcessor
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translated-text cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithLogger sets the logger for the facade and, unless WithPackageCache is
// also given, for the package cache it constructs.
func WithLogger(logger *zap.Logger) TranslatorOption {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithPackageCache injects a shared package availability cache. Use this when
// several translators must honor a single one-download-per-pair registry.
func WithPackageCache(pc *PackageCache) TranslatorOption {
	return func(t *Translator) {
		t.packages = pc
	}
}

// WithDetector overrides the language detector used for "auto" sources.
func WithDetector(fn func(string) LanguageCode) TranslatorOption {
	return func(t *Translator) {
		if fn != nil {
			t.detector = fn
		}
	}
}

// WithProcessor registers a content processor for Process.
func WithProcessor(processor ContentProcessor) TranslatorOption {
	return func(t *Translator) {
		t.processors[processor.ContentType()] = processor
	}
}

// NewTranslator creates a Translator over the given engine.
func NewTranslator(engine Engine, opts ...TranslatorOption) *Translator {
	t := &Translator{
		engine:     engine,
		detector:   DetectLanguage,
		logger:     zap.NewNop(),
		processors: make(map[string]ContentProcessor),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.packages == nil {
		t.packages = NewPackageCache(engine, WithPackageCacheLogger(t.logger))
	}
	return t
}

// Packages returns the package availability cache backing this translator.
func (t *Translator) Packages() *PackageCache {
	return t.packages
}

// Translate translates text between the languages named by the host-facing
// display strings ("<code> - <label>"). Empty or whitespace-only input is
// returned verbatim; so is the input on any internal failure.
func (t *Translator) Translate(ctx context.Context, text, sourceDisplay, targetDisplay string) string {
	return t.TranslateCodes(ctx, text, ParseDisplay(sourceDisplay), ParseDisplay(targetDisplay))
}

// TranslateCodes is Translate past the display-string boundary. CodeAuto as
// source is resolved through the detector before the availability check.
func (t *Translator) TranslateCodes(ctx context.Context, text string, source, target LanguageCode) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if source == CodeAuto {
		source = t.detector(text)
		t.logger.Debug("auto-detected source language",
			zap.String("code", string(source)))
	}
	if source == target {
		return text
	}

	key := CacheKey(HashText(text), source, target)
	if t.cache != nil {
		if cached, ok := t.cache.Get(key); ok {
			return cached
		}
	}

	if avail := t.packages.EnsureAvailable(ctx, source, target); avail != AvailabilityReady {
		t.logger.Info("translation pair not ready, passing text through",
			zap.String("source", string(source)),
			zap.String("target", string(target)),
			zap.String("availability", string(avail)))
		return text
	}

	translation, ok := t.translationHandle(ctx, source, target)
	if !ok {
		return text
	}

	out, err := translation.Translate(ctx, text)
	if err != nil {
		t.logger.Warn("engine translation failed, passing text through",
			zap.String("source", string(source)),
			zap.String("target", string(target)),
			zap.Error(err))
		return text
	}

	if t.cache != nil {
		// Cache faults never affect the result.
		_ = t.cache.Set(key, out)
	}
	return out
}

// translationHandle resolves engine handles for both codes and the model
// between them. Handles can be absent even after a Ready availability result
// when the engine's language list is stale; callers degrade to the original
// text.
func (t *Translator) translationHandle(ctx context.Context, source, target LanguageCode) (Translation, bool) {
	langs, err := t.engine.InstalledLanguages(ctx)
	if err != nil {
		t.logger.Warn("listing installed languages failed", zap.Error(err))
		return nil, false
	}

	var src, tgt Language
	for _, lang := range langs {
		switch lang.Code() {
		case source:
			src = lang
		case target:
			tgt = lang
		}
	}
	if src == nil || tgt == nil {
		t.logger.Warn("language handle missing after package check",
			zap.String("source", string(source)),
			zap.String("target", string(target)))
		return nil, false
	}

	translation, ok := src.TranslationTo(tgt)
	if !ok {
		t.logger.Warn("no translation model between installed languages",
			zap.String("source", string(source)),
			zap.String("target", string(target)))
		return nil, false
	}
	return translation, true
}

// Process translates structured content through a registered processor. Like
// Translate it is total: on any extraction or apply failure the input content
// is returned unchanged.
func (t *Translator) Process(ctx context.Context, content, contentType, sourceDisplay, targetDisplay string) string {
	processor, ok := t.processors[contentType]
	if !ok {
		t.logger.Warn("no processor registered for content type",
			zap.String("contentType", contentType))
		return content
	}

	parsed, nodes, err := processor.Extract(content)
	if err != nil {
		t.logger.Warn("content extraction failed",
			zap.String("contentType", contentType), zap.Error(err))
		return content
	}
	if len(nodes) == 0 {
		return content
	}

	source := ParseDisplay(sourceDisplay)
	target := ParseDisplay(targetDisplay)

	translations := make(map[string]string, len(nodes))
	for _, node := range nodes {
		out := t.TranslateCodes(ctx, node.Text, source, target)
		if out != node.Text {
			translations[node.Hash] = out
		}
	}

	result, err := processor.Apply(parsed, nodes, translations)
	if err != nil {
		t.logger.Warn("applying translations failed",
			zap.String("contentType", contentType), zap.Error(err))
		return content
	}

	if contentType == "html" {
		result = setHTMLAttributes(result, target)
	}
	return result
}

// ProcessHTML is a convenience method for processing HTML content.
func (t *Translator) ProcessHTML(ctx context.Context, html, sourceDisplay, targetDisplay string) string {
	return t.Process(ctx, html, "html", sourceDisplay, targetDisplay)
}

// PackageStatus reports the install state of a pair as an operator-readable
// status string instead of a structured error.
func (t *Translator) PackageStatus(ctx context.Context, sourceDisplay, targetDisplay string) string {
	source := ParseDisplay(sourceDisplay)
	target := ParseDisplay(targetDisplay)
	pair := LanguagePair{Source: source, Target: target}

	if source == target {
		return fmt.Sprintf("Pair %s needs no translation model", pair)
	}

	langs, err := t.engine.InstalledLanguages(ctx)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	var src, tgt Language
	for _, lang := range langs {
		switch lang.Code() {
		case source:
			src = lang
		case target:
			tgt = lang
		}
	}
	if src == nil || tgt == nil {
		return fmt.Sprintf("Package %s is NOT installed", pair)
	}
	if _, ok := src.TranslationTo(tgt); ok {
		return fmt.Sprintf("Package %s is installed and ready", pair)
	}
	return fmt.Sprintf("Languages installed but no translation model for %s", pair)
}

// InstallPackage installs the pair's package if needed and reports the
// outcome as a status string.
func (t *Translator) InstallPackage(ctx context.Context, sourceDisplay, targetDisplay string) string {
	source := ParseDisplay(sourceDisplay)
	target := ParseDisplay(targetDisplay)
	pair := LanguagePair{Source: source, Target: target}

	switch t.packages.EnsureAvailable(ctx, source, target) {
	case AvailabilityReady:
		return fmt.Sprintf("Package %s is installed and ready", pair)
	case AvailabilityBusy:
		return fmt.Sprintf("Package %s is already being downloaded", pair)
	default:
		return fmt.Sprintf("Failed to install package %s", pair)
	}
}

// setHTMLAttributes sets lang and dir attributes on the <html> tag.
func setHTMLAttributes(html string, target LanguageCode) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", string(target))
		htmlTag.SetAttr("dir", GetDirection(target))
	}

	result, err := doc.Html()
	if err != nil {
		return html
	}
	return result
}
