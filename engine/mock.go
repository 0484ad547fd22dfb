package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ZaguanLabs/lingopack"
)

// MockEngine is an in-memory Engine for tests, examples and dry runs.
//
// Pairs marked installed translate immediately; pairs added to the index go
// through the full download/install cycle with configurable latency and
// failures. Unknown texts translate to the bracketed original.
type MockEngine struct {
	mu        sync.Mutex
	installed map[lingopack.LanguagePair]bool
	index     []*MockPackage
	pending   map[string]lingopack.LanguagePair

	// Translations maps source text to its translation for installed pairs.
	Translations map[string]string

	// TranslateErr, when set, makes every translation call fail.
	TranslateErr error

	// UpdateIndexErr, when set, makes index refreshes fail.
	UpdateIndexErr error

	// DownloadDelay is applied to every package download.
	DownloadDelay time.Duration

	// Counters for assertions.
	UpdateIndexCalls   int
	InstalledListCalls int
}

// NewMockEngine creates an empty mock engine.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		installed: make(map[lingopack.LanguagePair]bool),
		pending:   make(map[string]lingopack.LanguagePair),
		Translations: map[string]string{
			"Hello":       "Hola",
			"World":       "Mundo",
			"Hello World": "Hola Mundo",
		},
	}
}

// AddInstalledPair marks a pair as already installed.
func (e *MockEngine) AddInstalledPair(source, target lingopack.LanguageCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.installed[lingopack.LanguagePair{Source: source, Target: target}] = true
}

// AddPackage adds an index entry for a pair and returns it for further
// configuration (download failures, etc.).
func (e *MockEngine) AddPackage(source, target lingopack.LanguageCode, size int64) *MockPackage {
	e.mu.Lock()
	defer e.mu.Unlock()
	pkg := &MockPackage{
		engine: e,
		pair:   lingopack.LanguagePair{Source: source, Target: target},
		size:   size,
	}
	e.index = append(e.index, pkg)
	return pkg
}

// PairInstalled reports whether the pair currently has a working model.
func (e *MockEngine) PairInstalled(source, target lingopack.LanguageCode) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.installed[lingopack.LanguagePair{Source: source, Target: target}]
}

// InstalledLanguages implements Engine.
func (e *MockEngine) InstalledLanguages(ctx context.Context) ([]Language, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.InstalledListCalls++

	seen := make(map[lingopack.LanguageCode]bool)
	var langs []Language
	for pair := range e.installed {
		for _, code := range []lingopack.LanguageCode{pair.Source, pair.Target} {
			if !seen[code] {
				seen[code] = true
				langs = append(langs, &mockLanguage{engine: e, code: code})
			}
		}
	}
	return langs, nil
}

// UpdateIndex implements Engine.
func (e *MockEngine) UpdateIndex(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.UpdateIndexCalls++
	return e.UpdateIndexErr
}

// AvailablePackages implements Engine.
func (e *MockEngine) AvailablePackages(ctx context.Context) ([]Package, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	packages := make([]Package, len(e.index))
	for i, pkg := range e.index {
		packages[i] = pkg
	}
	return packages, nil
}

// InstallFromPath implements Engine. The path must come from a MockPackage
// download.
func (e *MockEngine) InstallFromPath(ctx context.Context, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	pair, ok := e.pending[path]
	if !ok {
		return &lingopack.EngineError{Message: "unknown artifact path " + path}
	}
	delete(e.pending, path)
	e.installed[pair] = true
	return nil
}

// mockLanguage is an installed-language handle of the mock engine.
type mockLanguage struct {
	engine *MockEngine
	code   lingopack.LanguageCode
}

func (l *mockLanguage) Code() lingopack.LanguageCode {
	return l.code
}

func (l *mockLanguage) TranslationTo(target Language) (Translation, bool) {
	pair := lingopack.LanguagePair{Source: l.code, Target: target.Code()}
	l.engine.mu.Lock()
	ok := l.engine.installed[pair]
	l.engine.mu.Unlock()
	if !ok {
		return nil, false
	}
	return &mockTranslation{engine: l.engine, pair: pair}, true
}

// mockTranslation translates via the engine's Translations table.
type mockTranslation struct {
	engine *MockEngine
	pair   lingopack.LanguagePair
}

func (t *mockTranslation) Translate(ctx context.Context, text string) (string, error) {
	t.engine.mu.Lock()
	err := t.engine.TranslateErr
	translated, ok := t.engine.Translations[text]
	t.engine.mu.Unlock()

	if err != nil {
		return "", err
	}
	if ok {
		return translated, nil
	}
	return fmt.Sprintf("[%s]", text), nil
}

// MockPackage is an index entry of the mock engine.
type MockPackage struct {
	engine *MockEngine
	pair   lingopack.LanguagePair
	size   int64

	// InstalledFlag makes the index report the package as already installed
	// (a stale-index scenario when the installed map disagrees).
	InstalledFlag bool

	// DownloadErr, when set, fails the download.
	DownloadErr error

	// DownloadStarted, when non-nil, receives a signal as the download
	// begins; DownloadRelease, when non-nil, blocks it until closed.
	DownloadStarted chan struct{}
	DownloadRelease chan struct{}

	// DownloadCalls counts download attempts.
	DownloadCalls int
}

func (p *MockPackage) FromCode() lingopack.LanguageCode { return p.pair.Source }
func (p *MockPackage) ToCode() lingopack.LanguageCode   { return p.pair.Target }
func (p *MockPackage) Size() int64                      { return p.size }

func (p *MockPackage) Installed() bool {
	return p.InstalledFlag
}

// Download implements Package. It returns a synthetic artifact path the
// engine accepts in InstallFromPath.
func (p *MockPackage) Download(ctx context.Context) (string, error) {
	p.engine.mu.Lock()
	p.DownloadCalls++
	started := p.DownloadStarted
	release := p.DownloadRelease
	p.engine.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if p.engine.DownloadDelay > 0 {
		time.Sleep(p.engine.DownloadDelay)
	}
	if p.DownloadErr != nil {
		return "", p.DownloadErr
	}

	path := "mock://" + p.pair.String()
	p.engine.mu.Lock()
	p.engine.pending[path] = p.pair
	p.engine.mu.Unlock()
	return path, nil
}

// Verify interface compliance
var (
	_ Engine  = (*MockEngine)(nil)
	_ Package = (*MockPackage)(nil)
)
