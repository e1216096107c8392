package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points HOME at a temp dir and runs the test from an empty working
// directory so no real .env or config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want 0", cfg.RequestTimeout)
	}
	if cfg.StatusPoll != defaultStatusPoll {
		t.Fatalf("StatusPoll = %v, want %v", cfg.StatusPoll, defaultStatusPoll)
	}
	if cfg.DefaultChunkSize() != "1000" || cfg.DefaultChunkCount() != "5" {
		t.Fatalf("chunk defaults = %q/%q, want 1000/5", cfg.DefaultChunkSize(), cfg.DefaultChunkCount())
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
}

func TestLoad_ParsesAndTrimsTOML(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  http://10.0.0.5:9999  "
log_file = "  ~/logs/desk.log  "
log_level = "DEBUG"
request_timeout = 30
status_poll = 3
chunk_size = 400
chunk_count = 8
page_size = 25
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:9999" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.LogFile != filepath.Join(home, "logs/desk.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.StatusPoll != 3*time.Second {
		t.Fatalf("durations = %v/%v", cfg.RequestTimeout, cfg.StatusPoll)
	}
	if cfg.ChunkSize != 400 || cfg.ChunkCount != 8 || cfg.PageSize != 25 {
		t.Fatalf("sizes = %d/%d/%d", cfg.ChunkSize, cfg.ChunkCount, cfg.PageSize)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: rag.local:8080\nchunk_count: 2\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "rag.local:8080" {
		t.Fatalf("APIURL = %q, want rag.local:8080", cfg.APIURL)
	}
	if cfg.ChunkCount != 2 {
		t.Fatalf("ChunkCount = %d, want 2", cfg.ChunkCount)
	}
	if cfg.ChunkSize != defaultChunkSize {
		t.Fatalf("ChunkSize = %d, want default", cfg.ChunkSize)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "file:1"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvAPIURL, "env:2")
	t.Setenv(EnvLogLevel, "WARN")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "env:2" {
		t.Fatalf("APIURL = %q, want env:2", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_DotEnvInWorkingDirectory(t *testing.T) {
	isolate(t)
	// t.Setenv above registered cleanup for the variable; unset it so
	// godotenv is allowed to fill it.
	os.Unsetenv(EnvAPIURL)

	if err := os.WriteFile(".env", []byte(EnvAPIURL+"=dotenv:3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "dotenv:3" {
		t.Fatalf("APIURL = %q, want dotenv:3", cfg.APIURL)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
log_file = ""
chunk_size = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.ChunkSize != defaultChunkSize {
		t.Fatalf("ChunkSize = %d, want %d", cfg.ChunkSize, defaultChunkSize)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
