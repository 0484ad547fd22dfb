package engine

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZaguanLabs/lingopack"
	"go.uber.org/zap"
)

// RemoteEngine implements Engine against a JSON package index served over
// HTTP and a LibreTranslate-compatible translate endpoint backed by the
// locally installed models.
//
// Model packages are zip artifacts carrying a metadata.json with the pair
// codes; installing one extracts it into DataDir/<from>-<to>. The presence of
// that directory is the installed-pair state the availability cache reads.
type RemoteEngine struct {
	indexURL     string
	translateURL string
	dataDir      string
	client       *http.Client
	logger       *zap.Logger

	mu          sync.Mutex
	index       []indexEntry
	indexLoaded bool
}

// RemoteConfig holds configuration for the remote engine.
type RemoteConfig struct {
	IndexURL     string        // Package index URL (JSON array of packages)
	TranslateURL string        // Translate endpoint (POST, LibreTranslate payload)
	DataDir      string        // Directory holding installed model packages
	Timeout      time.Duration // HTTP timeout (default: 30s)
	Logger       *zap.Logger
	HTTPClient   *http.Client // Overrides Timeout when set
}

// indexEntry is one package of the upstream index.
type indexEntry struct {
	FromCode string `json:"from_code"`
	ToCode   string `json:"to_code"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// packageMetadata is the metadata.json carried inside a model artifact.
type packageMetadata struct {
	FromCode string `json:"from_code"`
	ToCode   string `json:"to_code"`
}

// NewRemoteEngine creates a remote engine. The data directory is created on
// first install.
func NewRemoteEngine(cfg RemoteConfig) *RemoteEngine {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteEngine{
		indexURL:     cfg.IndexURL,
		translateURL: cfg.TranslateURL,
		dataDir:      cfg.DataDir,
		client:       client,
		logger:       logger,
	}
}

// pairDir returns the install directory for a pair.
func (e *RemoteEngine) pairDir(pair lingopack.LanguagePair) string {
	return filepath.Join(e.dataDir, pair.String())
}

// pairInstalled reports whether the pair's model directory exists.
func (e *RemoteEngine) pairInstalled(pair lingopack.LanguagePair) bool {
	info, err := os.Stat(e.pairDir(pair))
	return err == nil && info.IsDir()
}

// installedPairs lists the pairs with a model directory on disk.
func (e *RemoteEngine) installedPairs() ([]lingopack.LanguagePair, error) {
	entries, err := os.ReadDir(e.dataDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &lingopack.EngineError{Message: "reading data dir", Cause: err}
	}

	var pairs []lingopack.LanguagePair
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		from, to, ok := strings.Cut(entry.Name(), "-")
		if !ok || from == "" || to == "" {
			continue
		}
		pairs = append(pairs, lingopack.LanguagePair{
			Source: lingopack.LanguageCode(from),
			Target: lingopack.LanguageCode(to),
		})
	}
	return pairs, nil
}

// InstalledLanguages implements Engine.
func (e *RemoteEngine) InstalledLanguages(ctx context.Context) ([]Language, error) {
	pairs, err := e.installedPairs()
	if err != nil {
		return nil, err
	}

	seen := make(map[lingopack.LanguageCode]bool)
	var langs []Language
	for _, pair := range pairs {
		for _, code := range []lingopack.LanguageCode{pair.Source, pair.Target} {
			if !seen[code] {
				seen[code] = true
				langs = append(langs, &remoteLanguage{engine: e, code: code})
			}
		}
	}
	return langs, nil
}

// UpdateIndex implements Engine.
func (e *RemoteEngine) UpdateIndex(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.indexURL, nil)
	if err != nil {
		return &lingopack.EngineError{Message: "building index request", Cause: err}
	}
	req.Header.Set("User-Agent", lingopack.UserAgent())

	resp, err := e.client.Do(req)
	if err != nil {
		return &lingopack.EngineError{Message: "fetching package index", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &lingopack.EngineError{
			Message: fmt.Sprintf("package index returned HTTP %d", resp.StatusCode),
		}
	}

	var index []indexEntry
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return &lingopack.EngineError{Message: "decoding package index", Cause: err}
	}

	e.mu.Lock()
	e.index = index
	e.indexLoaded = true
	e.mu.Unlock()

	e.logger.Debug("package index refreshed", zap.Int("packages", len(index)))
	return nil
}

// AvailablePackages implements Engine. The index is fetched lazily if it was
// never refreshed.
func (e *RemoteEngine) AvailablePackages(ctx context.Context) ([]Package, error) {
	e.mu.Lock()
	loaded := e.indexLoaded
	e.mu.Unlock()

	if !loaded {
		if err := e.UpdateIndex(ctx); err != nil {
			return nil, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	packages := make([]Package, 0, len(e.index))
	for _, entry := range e.index {
		packages = append(packages, &remotePackage{engine: e, entry: entry})
	}
	return packages, nil
}

// InstallFromPath implements Engine. The artifact is a zip archive carrying a
// metadata.json with the pair codes; it is extracted into the pair's
// directory under the data dir.
func (e *RemoteEngine) InstallFromPath(ctx context.Context, path string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return &lingopack.EngineError{Message: "opening package artifact", Cause: err}
	}
	defer reader.Close()

	meta, err := readPackageMetadata(&reader.Reader)
	if err != nil {
		return err
	}
	pair := lingopack.LanguagePair{
		Source: lingopack.LanguageCode(meta.FromCode),
		Target: lingopack.LanguageCode(meta.ToCode),
	}

	dir := e.pairDir(pair)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &lingopack.PackageError{Pair: pair, Message: "creating model dir", Cause: err}
	}

	for _, file := range reader.File {
		if err := extractFile(file, dir); err != nil {
			return &lingopack.PackageError{Pair: pair, Message: "extracting artifact", Cause: err}
		}
	}

	e.logger.Info("model package installed", zap.Stringer("pair", pair))
	return nil
}

// readPackageMetadata finds and decodes metadata.json inside the artifact.
func readPackageMetadata(reader *zip.Reader) (*packageMetadata, error) {
	for _, file := range reader.File {
		if filepath.Base(file.Name) != "metadata.json" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, &lingopack.EngineError{Message: "opening package metadata", Cause: err}
		}
		defer rc.Close()

		var meta packageMetadata
		if err := json.NewDecoder(rc).Decode(&meta); err != nil {
			return nil, &lingopack.EngineError{Message: "decoding package metadata", Cause: err}
		}
		if meta.FromCode == "" || meta.ToCode == "" {
			return nil, &lingopack.EngineError{Message: "package metadata missing pair codes"}
		}
		return &meta, nil
	}
	return nil, &lingopack.EngineError{Message: "package artifact has no metadata.json"}
}

// extractFile writes one archive entry under dir, rejecting path traversal.
func extractFile(file *zip.File, dir string) error {
	name := filepath.Clean(file.Name)
	if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
		return fmt.Errorf("unsafe archive path %q", file.Name)
	}
	dest := filepath.Join(dir, name)

	if file.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

// remoteLanguage is an installed-language handle of the remote engine.
type remoteLanguage struct {
	engine *RemoteEngine
	code   lingopack.LanguageCode
}

func (l *remoteLanguage) Code() lingopack.LanguageCode {
	return l.code
}

func (l *remoteLanguage) TranslationTo(target Language) (Translation, bool) {
	pair := lingopack.LanguagePair{Source: l.code, Target: target.Code()}
	if !l.engine.pairInstalled(pair) {
		return nil, false
	}
	return &remoteTranslation{engine: l.engine, pair: pair}, true
}

// remoteTranslation posts text to the translate endpoint.
type remoteTranslation struct {
	engine *RemoteEngine
	pair   lingopack.LanguagePair
}

func (t *remoteTranslation) Translate(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": string(t.pair.Source),
		"target": string(t.pair.Target),
		"format": "text",
	})
	if err != nil {
		return "", &lingopack.EngineError{Message: "encoding translate request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.engine.translateURL, bytes.NewReader(payload))
	if err != nil {
		return "", &lingopack.EngineError{Message: "building translate request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", lingopack.UserAgent())

	resp, err := t.engine.client.Do(req)
	if err != nil {
		return "", &lingopack.EngineError{Message: "translate request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &lingopack.EngineError{
			Message: fmt.Sprintf("translate endpoint returned HTTP %d", resp.StatusCode),
		}
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &lingopack.EngineError{Message: "decoding translate response", Cause: err}
	}
	return result.TranslatedText, nil
}

// remotePackage is an index entry exposed as a Package.
type remotePackage struct {
	engine *RemoteEngine
	entry  indexEntry
}

func (p *remotePackage) FromCode() lingopack.LanguageCode {
	return lingopack.LanguageCode(p.entry.FromCode)
}

func (p *remotePackage) ToCode() lingopack.LanguageCode {
	return lingopack.LanguageCode(p.entry.ToCode)
}

func (p *remotePackage) Size() int64 {
	return p.entry.Size
}

func (p *remotePackage) Installed() bool {
	return p.engine.pairInstalled(lingopack.LanguagePair{
		Source: p.FromCode(),
		Target: p.ToCode(),
	})
}

// Download fetches the package artifact into a temporary file and returns
// its path.
func (p *remotePackage) Download(ctx context.Context) (string, error) {
	pair := lingopack.LanguagePair{Source: p.FromCode(), Target: p.ToCode()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.entry.URL, nil)
	if err != nil {
		return "", &lingopack.PackageError{Pair: pair, Message: "building download request", Cause: err}
	}
	req.Header.Set("User-Agent", lingopack.UserAgent())

	resp, err := p.engine.client.Do(req)
	if err != nil {
		return "", &lingopack.PackageError{Pair: pair, Message: "download failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &lingopack.PackageError{
			Pair:    pair,
			Message: fmt.Sprintf("download returned HTTP %d", resp.StatusCode),
		}
	}

	tmp, err := os.CreateTemp("", "lingopack-"+pair.String()+"-*.zip")
	if err != nil {
		return "", &lingopack.PackageError{Pair: pair, Message: "creating artifact file", Cause: err}
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", &lingopack.PackageError{Pair: pair, Message: "writing artifact file", Cause: err}
	}
	return tmp.Name(), nil
}

// Verify interface compliance
var (
	_ Engine  = (*RemoteEngine)(nil)
	_ Package = (*remotePackage)(nil)
)
