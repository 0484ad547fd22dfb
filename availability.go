package lingopack

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// PackageCache decides whether a translation model for a language pair is
// usable and, when it is not, coordinates at most one download/install
// attempt per pair across concurrent callers.
//
// Construct one PackageCache per process and share it: the single-flight
// guarantee only holds among callers of the same instance.
type PackageCache struct {
	engine Engine
	logger *zap.Logger

	mu       sync.Mutex
	inFlight map[LanguagePair]struct{}
}

// PackageCacheOption is a functional option for configuring the PackageCache.
type PackageCacheOption func(*PackageCache)

// WithPackageCacheLogger sets the logger used for swallowed faults.
func WithPackageCacheLogger(logger *zap.Logger) PackageCacheOption {
	return func(c *PackageCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewPackageCache creates a PackageCache over the given engine.
func NewPackageCache(engine Engine, opts ...PackageCacheOption) *PackageCache {
	c := &PackageCache{
		engine:   engine,
		logger:   zap.NewNop(),
		inFlight: make(map[LanguagePair]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureAvailable reports whether a translation model for (source, target) is
// ready, installing it on demand.
//
// A caller that finds another download in flight for the same pair gets
// AvailabilityBusy immediately; it does not wait for the winner to finish.
// Re-polling after a Busy result is the caller's decision.
//
// Faults during download or install are logged and reported as
// AvailabilityUnavailable, never propagated. There is no internal retry; a
// later call simply attempts the install again.
func (c *PackageCache) EnsureAvailable(ctx context.Context, source, target LanguageCode) Availability {
	if source == target {
		// Identity pair needs no model.
		return AvailabilityReady
	}
	if source == CodeAuto {
		// Cannot pre-resolve a package for an undetected source; callers
		// resolve auto through DetectLanguage first.
		return AvailabilityReady
	}

	pair := LanguagePair{Source: source, Target: target}
	if !c.acquire(pair) {
		c.logger.Debug("package download already in flight",
			zap.Stringer("pair", pair))
		return AvailabilityBusy
	}
	defer c.release(pair)

	if c.pairInstalled(ctx, pair) {
		return AvailabilityReady
	}
	return c.install(ctx, pair)
}

// acquire atomically claims the registry slot for pair. The lock covers only
// the check-and-insert, never the download itself, so unrelated pairs
// download concurrently.
func (c *PackageCache) acquire(pair LanguagePair) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inFlight[pair]; ok {
		return false
	}
	c.inFlight[pair] = struct{}{}
	return true
}

func (c *PackageCache) release(pair LanguagePair) {
	c.mu.Lock()
	delete(c.inFlight, pair)
	c.mu.Unlock()
}

// InFlight returns the pairs whose availability check or download is
// currently owned by some caller.
func (c *PackageCache) InFlight() []LanguagePair {
	c.mu.Lock()
	defer c.mu.Unlock()
	pairs := make([]LanguagePair, 0, len(c.inFlight))
	for pair := range c.inFlight {
		pairs = append(pairs, pair)
	}
	return pairs
}

// pairInstalled reports whether a working translation path already exists
// between two installed languages.
func (c *PackageCache) pairInstalled(ctx context.Context, pair LanguagePair) bool {
	source, target, err := c.languageHandles(ctx, pair)
	if err != nil {
		c.logger.Warn("listing installed languages failed",
			zap.Stringer("pair", pair), zap.Error(err))
		return false
	}
	if source == nil || target == nil {
		return false
	}
	_, ok := source.TranslationTo(target)
	return ok
}

// install refreshes the package index and downloads the pair's model.
// Called with the registry slot held.
func (c *PackageCache) install(ctx context.Context, pair LanguagePair) Availability {
	if err := c.engine.UpdateIndex(ctx); err != nil {
		c.logger.Warn("package index refresh failed",
			zap.Stringer("pair", pair), zap.Error(err))
		return AvailabilityUnavailable
	}

	packages, err := c.engine.AvailablePackages(ctx)
	if err != nil {
		c.logger.Warn("listing available packages failed",
			zap.Stringer("pair", pair), zap.Error(err))
		return AvailabilityUnavailable
	}

	var found Package
	for _, pkg := range packages {
		if pkg.FromCode() == pair.Source && pkg.ToCode() == pair.Target {
			found = pkg
			break
		}
	}
	if found == nil {
		c.logger.Info("no translation package available",
			zap.Stringer("pair", pair))
		return AvailabilityUnavailable
	}
	if found.Installed() {
		// Index was stale relative to the local install.
		return AvailabilityReady
	}

	c.logger.Info("downloading translation package",
		zap.Stringer("pair", pair), zap.Int64("sizeBytes", found.Size()))

	path, err := found.Download(ctx)
	if err != nil {
		c.logger.Warn("package download failed",
			zap.Stringer("pair", pair), zap.Error(err))
		return AvailabilityUnavailable
	}
	if err := c.engine.InstallFromPath(ctx, path); err != nil {
		c.logger.Warn("package install failed",
			zap.Stringer("pair", pair), zap.Error(err))
		return AvailabilityUnavailable
	}

	c.logger.Info("installed translation package", zap.Stringer("pair", pair))
	return AvailabilityReady
}

func (c *PackageCache) languageHandles(ctx context.Context, pair LanguagePair) (Language, Language, error) {
	langs, err := c.engine.InstalledLanguages(ctx)
	if err != nil {
		return nil, nil, err
	}
	var source, target Language
	for _, lang := range langs {
		switch lang.Code() {
		case pair.Source:
			source = lang
		case pair.Target:
			target = lang
		}
	}
	return source, target, nil
}
