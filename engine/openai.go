package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/lingopack"
	"github.com/sashabaranov/go-openai"
)

// OpenAIEngine adapts an OpenAI-compatible chat API to the Engine boundary.
//
// Every catalog pair is permanently installed: there are no packages to
// download, so the availability cache always takes its fast path. Useful as
// a drop-in engine where running the offline model server is not an option.
type OpenAIEngine struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI engine.
type OpenAIConfig struct {
	APIKey      string  // API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIEngine creates a new OpenAI-backed engine.
func NewOpenAIEngine(cfg OpenAIConfig) *OpenAIEngine {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIEngine{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// InstalledLanguages implements Engine: the whole catalog except auto.
func (e *OpenAIEngine) InstalledLanguages(ctx context.Context) ([]Language, error) {
	var langs []Language
	for code := range lingopack.LanguageNames {
		if code == lingopack.CodeAuto {
			continue
		}
		langs = append(langs, &openaiLanguage{engine: e, code: code})
	}
	return langs, nil
}

// UpdateIndex implements Engine. There is no package index.
func (e *OpenAIEngine) UpdateIndex(ctx context.Context) error {
	return nil
}

// AvailablePackages implements Engine. Nothing is downloadable; pairs outside
// the catalog are simply unavailable.
func (e *OpenAIEngine) AvailablePackages(ctx context.Context) ([]Package, error) {
	return nil, nil
}

// InstallFromPath implements Engine.
func (e *OpenAIEngine) InstallFromPath(ctx context.Context, path string) error {
	return &lingopack.EngineError{Message: "openai engine has no installable packages"}
}

// openaiLanguage is a catalog language handle.
type openaiLanguage struct {
	engine *OpenAIEngine
	code   lingopack.LanguageCode
}

func (l *openaiLanguage) Code() lingopack.LanguageCode {
	return l.code
}

func (l *openaiLanguage) TranslationTo(target Language) (Translation, bool) {
	return &openaiTranslation{
		engine: l.engine,
		pair:   lingopack.LanguagePair{Source: l.code, Target: target.Code()},
	}, true
}

// openaiTranslation translates one pair through a chat completion.
type openaiTranslation struct {
	engine *OpenAIEngine
	pair   lingopack.LanguagePair
}

func (t *openaiTranslation) Translate(ctx context.Context, text string) (string, error) {
	systemPrompt := fmt.Sprintf(
		"You are a translation engine. Translate the user's text from %s to %s. "+
			"Reply with the translation only, no explanations.",
		languageName(t.pair.Source), languageName(t.pair.Target))

	resp, err := t.engine.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.engine.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: t.engine.temperature,
	})
	if err != nil {
		return "", &lingopack.EngineError{Message: "chat completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &lingopack.EngineError{Message: "empty chat completion response"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// languageName resolves the plain English name for the prompt, falling back
// to the code itself.
func languageName(code lingopack.LanguageCode) string {
	name, ok := lingopack.LanguageNames[code]
	if !ok {
		return string(code)
	}
	// Labels carry a native-script suffix ("Italian (Italiano)"); the prompt
	// only needs the English part.
	if idx := strings.Index(name, " ("); idx > 0 {
		return name[:idx]
	}
	return name
}

// Verify interface compliance
var _ Engine = (*OpenAIEngine)(nil)
