package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZaguanLabs/lingopack"
)

func TestOpenAIEngine_InstalledLanguages(t *testing.T) {
	eng := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key"})
	langs, err := eng.InstalledLanguages(context.Background())
	if err != nil {
		t.Fatalf("InstalledLanguages failed: %v", err)
	}

	// Whole catalog minus auto.
	if len(langs) != len(lingopack.LanguageNames)-1 {
		t.Errorf("expected %d languages, got %d", len(lingopack.LanguageNames)-1, len(langs))
	}
	for _, l := range langs {
		if l.Code() == lingopack.CodeAuto {
			t.Error("auto must not appear as an installed language")
		}
	}
}

func TestOpenAIEngine_EveryPairAvailable(t *testing.T) {
	eng := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key"})
	langs, _ := eng.InstalledLanguages(context.Background())
	it := findLanguage(t, langs, "it")
	vi := findLanguage(t, langs, "vi")

	if _, ok := it.TranslationTo(vi); !ok {
		t.Error("every catalog pair should have a translation handle")
	}
}

func TestOpenAIEngine_NoPackages(t *testing.T) {
	eng := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key"})
	ctx := context.Background()

	if err := eng.UpdateIndex(ctx); err != nil {
		t.Errorf("UpdateIndex should be a no-op, got %v", err)
	}
	packages, err := eng.AvailablePackages(ctx)
	if err != nil || len(packages) != 0 {
		t.Errorf("expected empty package list, got %d packages, err %v", len(packages), err)
	}
	if err := eng.InstallFromPath(ctx, "/tmp/whatever.zip"); err == nil {
		t.Error("InstallFromPath should fail")
	}
}

func TestOpenAIEngine_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request payload: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("expected system+user messages, got %d", len(req.Messages))
		}
		if !strings.Contains(req.Messages[0].Content, "Italian") || !strings.Contains(req.Messages[0].Content, "English") {
			t.Errorf("system prompt missing language names: %q", req.Messages[0].Content)
		}
		if req.Messages[1].Content != "ciao" {
			t.Errorf("unexpected user message: %q", req.Messages[1].Content)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hello\n"}},
			},
		})
	}))
	defer srv.Close()

	eng := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})
	langs, _ := eng.InstalledLanguages(context.Background())
	it := findLanguage(t, langs, "it")
	en := findLanguage(t, langs, "en")
	tr, _ := it.TranslationTo(en)

	got, err := tr.Translate(context.Background(), "ciao")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected trimmed hello, got %q", got)
	}
}

func TestOpenAIEngine_TranslateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	eng := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})
	langs, _ := eng.InstalledLanguages(context.Background())
	it := findLanguage(t, langs, "it")
	en := findLanguage(t, langs, "en")
	tr, _ := it.TranslationTo(en)

	if _, err := tr.Translate(context.Background(), "ciao"); err == nil {
		t.Error("expected error for API failure")
	}
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code lingopack.LanguageCode
		want string
	}{
		{"it", "Italian"},
		{"eo", "Esperanto"},
		{"en", "English"},
		{"xx", "xx"},
	}
	for _, tt := range tests {
		if got := languageName(tt.code); got != tt.want {
			t.Errorf("languageName(%s) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
