package engine

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaguanLabs/lingopack"
)

// writeArtifact builds a model package zip on disk and returns its path.
func writeArtifact(t *testing.T, from, to string, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	meta, _ := json.Marshal(map[string]string{"from_code": from, "to_code": to})
	f, err := w.Create("metadata.json")
	if err != nil {
		t.Fatal(err)
	}
	f.Write(meta)

	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		f.Write([]byte(content))
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "package.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRemoteEngine_UpdateIndex(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode([]indexEntry{
			{FromCode: "it", ToCode: "en", Size: 1 << 20, URL: "http://example.com/it-en.zip"},
			{FromCode: "en", ToCode: "it", Size: 1 << 20, URL: "http://example.com/en-it.zip"},
		})
	}))
	defer srv.Close()

	eng := NewRemoteEngine(RemoteConfig{
		IndexURL: srv.URL,
		DataDir:  t.TempDir(),
	})
	ctx := context.Background()

	if err := eng.UpdateIndex(ctx); err != nil {
		t.Fatalf("UpdateIndex failed: %v", err)
	}

	packages, err := eng.AvailablePackages(ctx)
	if err != nil {
		t.Fatalf("AvailablePackages failed: %v", err)
	}
	if len(packages) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(packages))
	}
	if packages[0].FromCode() != "it" || packages[0].ToCode() != "en" {
		t.Errorf("unexpected first package: %s-%s", packages[0].FromCode(), packages[0].ToCode())
	}
	if packages[0].Size() != 1<<20 {
		t.Errorf("unexpected size: %d", packages[0].Size())
	}
	if requests != 1 {
		t.Errorf("expected 1 index fetch, got %d", requests)
	}
}

func TestRemoteEngine_AvailablePackagesLazyFetch(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode([]indexEntry{})
	}))
	defer srv.Close()

	eng := NewRemoteEngine(RemoteConfig{IndexURL: srv.URL, DataDir: t.TempDir()})
	ctx := context.Background()

	// Without an explicit refresh, the first listing fetches the index once.
	eng.AvailablePackages(ctx)
	eng.AvailablePackages(ctx)
	if requests != 1 {
		t.Errorf("expected 1 lazy fetch, got %d", requests)
	}
}

func TestRemoteEngine_UpdateIndexHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	eng := NewRemoteEngine(RemoteConfig{IndexURL: srv.URL, DataDir: t.TempDir()})
	if err := eng.UpdateIndex(context.Background()); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestRemoteEngine_InstallFromPath(t *testing.T) {
	dataDir := t.TempDir()
	eng := NewRemoteEngine(RemoteConfig{DataDir: dataDir})
	artifact := writeArtifact(t, "it", "en", map[string]string{
		"model.bin":      "weights",
		"vocab/sp.model": "tokens",
	})

	if err := eng.InstallFromPath(context.Background(), artifact); err != nil {
		t.Fatalf("InstallFromPath failed: %v", err)
	}

	modelPath := filepath.Join(dataDir, "it-en", "model.bin")
	data, err := os.ReadFile(modelPath)
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(data) != "weights" {
		t.Errorf("unexpected extracted content: %q", data)
	}

	langs, err := eng.InstalledLanguages(context.Background())
	if err != nil {
		t.Fatalf("InstalledLanguages failed: %v", err)
	}
	it := findLanguage(t, langs, "it")
	en := findLanguage(t, langs, "en")
	if _, ok := it.TranslationTo(en); !ok {
		t.Error("installed pair should have a translation handle")
	}
	if _, ok := en.TranslationTo(it); ok {
		t.Error("reverse direction was not installed")
	}
}

func TestRemoteEngine_InstallFromPathNoMetadata(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("model.bin")
	f.Write([]byte("weights"))
	w.Close()

	path := filepath.Join(t.TempDir(), "bad.zip")
	os.WriteFile(path, buf.Bytes(), 0o644)

	eng := NewRemoteEngine(RemoteConfig{DataDir: t.TempDir()})
	if err := eng.InstallFromPath(context.Background(), path); err == nil {
		t.Error("expected error for artifact without metadata.json")
	}
}

func TestRemoteEngine_InstallFromPathRejectsTraversal(t *testing.T) {
	dataDir := t.TempDir()
	eng := NewRemoteEngine(RemoteConfig{DataDir: dataDir})
	artifact := writeArtifact(t, "it", "en", map[string]string{
		"../escape.bin": "evil",
	})

	if err := eng.InstallFromPath(context.Background(), artifact); err == nil {
		t.Error("expected error for path traversal entry")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dataDir), "escape.bin")); err == nil {
		t.Error("traversal entry must not be written outside the data dir")
	}
}

func TestRemotePackage_DownloadAndInstall(t *testing.T) {
	artifactPath := writeArtifact(t, "de", "en", map[string]string{"model.bin": "weights"})
	artifactBytes, _ := os.ReadFile(artifactPath)

	mux := http.NewServeMux()
	mux.HandleFunc("/de-en.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(artifactBytes)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]indexEntry{
			{FromCode: "de", ToCode: "en", Size: int64(len(artifactBytes)), URL: srv.URL + "/de-en.zip"},
		})
	})

	dataDir := t.TempDir()
	eng := NewRemoteEngine(RemoteConfig{IndexURL: srv.URL + "/index.json", DataDir: dataDir})
	ctx := context.Background()

	packages, err := eng.AvailablePackages(ctx)
	if err != nil {
		t.Fatalf("AvailablePackages failed: %v", err)
	}
	if len(packages) != 1 {
		t.Fatalf("expected 1 package, got %d", len(packages))
	}

	path, err := packages[0].Download(ctx)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer os.Remove(path)

	if err := eng.InstallFromPath(ctx, path); err != nil {
		t.Fatalf("InstallFromPath failed: %v", err)
	}
	if !packages[0].Installed() {
		t.Error("package should report installed after the cycle")
	}
}

func TestRemotePackage_DownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	eng := NewRemoteEngine(RemoteConfig{DataDir: t.TempDir()})
	pkg := &remotePackage{engine: eng, entry: indexEntry{FromCode: "it", ToCode: "en", URL: srv.URL}}

	if _, err := pkg.Download(context.Background()); err == nil {
		t.Error("expected error for HTTP 404 download")
	}
}

func TestRemoteTranslation_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		if payload["q"] != "ciao" || payload["source"] != "it" || payload["target"] != "en" || payload["format"] != "text" {
			t.Errorf("unexpected payload: %v", payload)
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "hello"})
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	os.MkdirAll(filepath.Join(dataDir, "it-en"), 0o755)
	eng := NewRemoteEngine(RemoteConfig{TranslateURL: srv.URL, DataDir: dataDir})

	langs, err := eng.InstalledLanguages(context.Background())
	if err != nil {
		t.Fatalf("InstalledLanguages failed: %v", err)
	}
	it := findLanguage(t, langs, "it")
	en := findLanguage(t, langs, "en")
	tr, ok := it.TranslationTo(en)
	if !ok {
		t.Fatal("expected translation handle for installed pair")
	}

	got, err := tr.Translate(context.Background(), "ciao")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestRemoteTranslation_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	eng := NewRemoteEngine(RemoteConfig{TranslateURL: srv.URL, DataDir: t.TempDir()})
	tr := &remoteTranslation{engine: eng, pair: lingopack.LanguagePair{Source: "it", Target: "en"}}

	if _, err := tr.Translate(context.Background(), "ciao"); err == nil {
		t.Error("expected error for HTTP 502")
	}
}

func TestRemoteEngine_InstalledLanguagesEmptyDataDir(t *testing.T) {
	eng := NewRemoteEngine(RemoteConfig{DataDir: filepath.Join(t.TempDir(), "nonexistent")})
	langs, err := eng.InstalledLanguages(context.Background())
	if err != nil {
		t.Fatalf("missing data dir should read as empty, got %v", err)
	}
	if len(langs) != 0 {
		t.Errorf("expected no languages, got %d", len(langs))
	}
}
