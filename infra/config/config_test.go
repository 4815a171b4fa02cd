package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MEMEVERSE_API", "")
	t.Setenv("MEMEVERSE_DATA", "")
	t.Setenv("MEMEVERSE_LOG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://api.imgflip.com" {
		t.Fatalf("unexpected API base: %q", cfg.APIBaseURL)
	}
	if cfg.DataDir == "" {
		t.Fatalf("expected default data dir")
	}
	if cfg.LogPath != filepath.Join(cfg.DataDir, "memeverse.log") {
		t.Fatalf("log path should default under data dir, got %q", cfg.LogPath)
	}
}

func TestLoad_TrailingSlashTrimmed(t *testing.T) {
	t.Setenv("MEMEVERSE_API", "https://example.com/")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
}

func TestLoad_RejectsNonHTTPSchemes(t *testing.T) {
	for _, bad := range []string{"ftp://example.com", "not a url", "relative/path"} {
		t.Setenv("MEMEVERSE_API", bad)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestLoad_ExplicitPaths(t *testing.T) {
	t.Setenv("MEMEVERSE_API", "http://localhost:8080")
	t.Setenv("MEMEVERSE_DATA", "/tmp/mv-data")
	t.Setenv("MEMEVERSE_LOG", "/tmp/mv.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "/tmp/mv-data" || cfg.LogPath != "/tmp/mv.log" {
		t.Fatalf("explicit paths not honored: %+v", cfg)
	}
}
