// Command lingopack translates text using an offline translation engine
// whose language packs are downloaded on demand.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/lingopack"
	"github.com/ZaguanLabs/lingopack/cache"
	"github.com/ZaguanLabs/lingopack/engine"
	"github.com/ZaguanLabs/lingopack/processor"
	"go.uber.org/zap"
)

// Build-time variables (can be overridden with ldflags)
var (
	version = lingopack.Version
	commit  = lingopack.GitCommit
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lingopack", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	source := fs.String("source", "auto", "Source language code (auto to detect)")
	target := fs.String("target", "en", "Target language code")
	htmlMode := fs.Bool("html", false, "Treat input as HTML")
	engineName := fs.String("engine", "remote", "Engine backend: remote, openai or mock")
	indexURL := fs.String("index-url", "", "Package index URL (remote engine)")
	translateURL := fs.String("translate-url", "", "Translate endpoint URL (remote engine)")
	dataDir := fs.String("data-dir", defaultDataDir(), "Directory for installed language packs")
	apiKey := fs.String("api-key", "", "API key for the openai engine (default: OPENAI_API_KEY env)")
	model := fs.String("model", "gpt-4o-mini", "Model for the openai engine")
	redisURL := fs.String("redis", "", "Redis URL for a shared result cache (default: in-memory)")
	cacheTTL := fs.Int("cache-ttl", 3600, "Result cache TTL in seconds (0 to disable)")
	batch := fs.Bool("batch", false, "Translate each input line independently")
	workers := fs.Int("workers", lingopack.DefaultBatchWorkers, "Concurrent workers for batch mode")
	status := fs.Bool("status", false, "Report install status for the pair and exit")
	install := fs.Bool("install", false, "Install the pair's language pack and exit")
	languages := fs.Bool("languages", false, "List supported languages and exit")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	quiet := fs.Bool("quiet", false, "Suppress log output")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lingopack.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit: %s\n", commit)
		}
		return nil
	}

	if *languages {
		for _, display := range lingopack.LanguageList() {
			fmt.Fprintln(stdout, display)
		}
		return nil
	}

	// Handle -o alias for --output
	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	logger := zap.NewNop()
	if !*quiet {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
			defer logger.Sync()
		}
	}

	eng, err := buildEngine(*engineName, *indexURL, *translateURL, *dataDir, *apiKey, *model, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sourceCode := lingopack.ParseDisplay(*source)

	if *status || *install {
		if sourceCode == lingopack.CodeAuto {
			return fmt.Errorf("--source must be a concrete language for --status/--install")
		}
		translator := lingopack.NewTranslator(eng, lingopack.WithLogger(logger))
		if *install {
			fmt.Fprintln(stdout, translator.InstallPackage(ctx, *source, *target))
		} else {
			fmt.Fprintln(stdout, translator.PackageStatus(ctx, *source, *target))
		}
		return nil
	}

	resultCache, err := buildCache(*redisURL, *cacheTTL)
	if err != nil {
		return err
	}

	opts := []lingopack.TranslatorOption{lingopack.WithLogger(logger)}
	if resultCache != nil {
		opts = append(opts, lingopack.WithCache(resultCache))
	}
	if *htmlMode {
		opts = append(opts, lingopack.WithProcessor(processor.NewHTMLProcessor()))
	}
	translator := lingopack.NewTranslator(eng, opts...)

	input, err := readInput(fs.Args(), stdin)
	if err != nil {
		return err
	}

	var result string
	switch {
	case *htmlMode:
		result = translator.ProcessHTML(ctx, input, *source, *target)
	case *batch:
		lines := strings.Split(input, "\n")
		translated := translator.TranslateAll(ctx, lines, *source, *target, *workers)
		result = strings.Join(translated, "\n")
	default:
		result = translator.Translate(ctx, input, *source, *target)
	}

	return writeOutput(*output, result, stdout)
}

// buildEngine constructs the engine backend named on the command line.
func buildEngine(name, indexURL, translateURL, dataDir, apiKey, model string, logger *zap.Logger) (lingopack.Engine, error) {
	switch name {
	case "remote":
		if indexURL == "" || translateURL == "" {
			return nil, fmt.Errorf("--index-url and --translate-url are required for the remote engine")
		}
		return engine.NewRemoteEngine(engine.RemoteConfig{
			IndexURL:     indexURL,
			TranslateURL: translateURL,
			DataDir:      dataDir,
			Logger:       logger,
		}), nil

	case "openai":
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("API key required: use --api-key or OPENAI_API_KEY")
		}
		return engine.NewOpenAIEngine(engine.OpenAIConfig{
			APIKey: apiKey,
			Model:  model,
		}), nil

	case "mock":
		return buildMockEngine(), nil

	default:
		return nil, fmt.Errorf("unknown engine %q (want remote, openai or mock)", name)
	}
}

// buildMockEngine seeds a mock engine with downloadable packages between
// English and every catalog language, so the full download/install cycle can
// be exercised without a model server.
func buildMockEngine() *engine.MockEngine {
	eng := engine.NewMockEngine()
	for code := range lingopack.LanguageNames {
		if code == lingopack.CodeAuto || code == "en" {
			continue
		}
		eng.AddPackage("en", code, 1<<20)
		eng.AddPackage(code, "en", 1<<20)
	}
	return eng
}

// buildCache constructs the result cache. TTL 0 disables caching.
func buildCache(redisURL string, ttlSeconds int) (lingopack.TranslationCache, error) {
	if redisURL != "" {
		return cache.NewRedisCache(cache.RedisConfig{URL: redisURL, TTL: ttlSeconds})
	}
	if ttlSeconds <= 0 {
		return nil, nil
	}
	return cache.NewInMemoryCache(ttlSeconds), nil
}

// readInput reads from the file argument, or stdin when no file is given.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// writeOutput writes the result to the output file, or stdout.
func writeOutput(path, result string, stdout io.Writer) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, result)
		return err
	}
	if err := os.WriteFile(path, []byte(result), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// defaultDataDir returns the per-user language pack directory.
func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "lingopack")
	}
	return "lingopack-data"
}
