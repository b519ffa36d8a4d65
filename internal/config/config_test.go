package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"arrtag/internal/config"
)

func TestLoadDefaultConfigUsesEnvKeysAndExpandsPaths(t *testing.T) {
	t.Setenv("SONARR_API_KEY", "sonarr-env")
	t.Setenv("RADARR_API_KEY", "radarr-env")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "arrtag", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Series.APIKey != "sonarr-env" || cfg.Movies.APIKey != "radarr-env" {
		t.Fatalf("expected api keys from env, got %q / %q", cfg.Series.APIKey, cfg.Movies.APIKey)
	}
	if want := filepath.Join(tempHome, ".local", "share", "arrtag", "logs"); cfg.Logging.Dir != want {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Logging.Dir, want)
	}
	if !cfg.Series.Enabled || !cfg.Movies.Enabled {
		t.Fatal("expected both backends enabled by default")
	}
	if cfg.Run.WorkLimit != 10 {
		t.Fatalf("unexpected default work limit: %d", cfg.Run.WorkLimit)
	}
	if cfg.Run.DryRun {
		t.Fatal("expected dry run disabled by default")
	}
	if cfg.Logging.MaxSizeMB != 1 || cfg.Logging.MaxBackups != 5 {
		t.Fatalf("unexpected rotation defaults: %+v", cfg.Logging)
	}
	if cfg.RequestTimeout() != 0 {
		t.Fatalf("expected no request timeout by default, got %s", cfg.RequestTimeout())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Logging.Dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("SONARR_API_KEY", "")
	t.Setenv("RADARR_API_KEY", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "arrtag.toml")

	type payload struct {
		Series struct {
			URL    string `toml:"url"`
			APIKey string `toml:"api_key"`
		} `toml:"series"`
		Movies struct {
			Enabled bool `toml:"enabled"`
		} `toml:"movies"`
		Run struct {
			WorkLimit int  `toml:"work_limit"`
			DryRun    bool `toml:"dry_run"`
		} `toml:"run"`
		Logging struct {
			Dir string `toml:"dir"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Series.URL = "  http://sonarr.lan:8989/ "
	custom.Series.APIKey = " abc123 "
	custom.Movies.Enabled = false
	custom.Run.WorkLimit = 0
	custom.Run.DryRun = true
	custom.Logging.Dir = filepath.Join(tempDir, "logs")

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Series.URL != "http://sonarr.lan:8989" {
		t.Fatalf("expected trimmed url, got %q", cfg.Series.URL)
	}
	if cfg.Series.APIKey != "abc123" {
		t.Fatalf("expected trimmed api key, got %q", cfg.Series.APIKey)
	}
	if cfg.Movies.Enabled {
		t.Fatal("expected movies disabled")
	}
	if cfg.Movies.APIKey != "" {
		t.Fatalf("expected empty movies api key, got %q", cfg.Movies.APIKey)
	}
	if cfg.Run.WorkLimit != 0 || !cfg.Run.DryRun {
		t.Fatalf("unexpected run settings: %+v", cfg.Run)
	}
	if cfg.LockPath() != filepath.Join(tempDir, "logs", "arrtag.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "negative work limit", content: "[run]\nwork_limit = -1\n", wantErr: "run.work_limit"},
		{name: "bad scheme", content: "[series]\nurl = \"ftp://host\"\n", wantErr: "series.url must use http"},
		{name: "missing movies url", content: "[movies]\nurl = \"\"\n", wantErr: "movies.url must be set"},
		{name: "bad level", content: "[logging]\nlevel = \"loud\"\n", wantErr: "logging.level"},
		{name: "bad ntfy topic", content: "[notifications]\nntfy_topic = \"arrtag\"\n", wantErr: "notifications.ntfy_topic"},
		{name: "malformed toml", content: "[run\n", wantErr: "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDisabledBackendSkipsURLValidation(t *testing.T) {
	cfg := config.Default()
	cfg.Movies.Enabled = false
	cfg.Movies.URL = "not a url"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("SONARR_API_KEY", "")
	t.Setenv("RADARR_API_KEY", "")
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Series.APIKey != "" || cfg.Movies.APIKey != "" {
		t.Fatal("expected sample to carry placeholder (empty) api keys")
	}
	def := config.Default()
	if cfg.Run.WorkLimit != def.Run.WorkLimit || cfg.Series.URL != def.Series.URL || cfg.Movies.URL != def.Movies.URL {
		t.Fatalf("sample diverges from defaults: %+v", cfg)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
