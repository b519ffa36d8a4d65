package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arrtag/internal/config"
	"arrtag/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckArr_OK(t *testing.T) {
	fake := testsupport.NewFakeArr(t, "series", "good-key", `[]`)

	result := CheckArr(context.Background(), "Sonarr", fake.URL(), "good-key")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result.Detail != "Fakeseries 4.0.0" {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckArr_BadKey(t *testing.T) {
	fake := testsupport.NewFakeArr(t, "movie", "good-key", `[]`)

	result := CheckArr(context.Background(), "Radarr", fake.URL(), "bad-key")
	if result.Passed {
		t.Fatal("expected failure for bad key")
	}
	if !strings.Contains(result.Detail, "invalid api key") {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckArr_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result := CheckArr(context.Background(), "Sonarr", srv.URL, "key")
	if result.Passed || result.Detail != "status check failed (503)" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckArr_MissingURL(t *testing.T) {
	result := CheckArr(context.Background(), "Sonarr", "", "key")
	if result.Passed {
		t.Fatal("expected failure for missing URL")
	}
}

func TestCheckArr_MissingKey(t *testing.T) {
	result := CheckArr(context.Background(), "Sonarr", "http://localhost", "")
	if result.Passed {
		t.Fatal("expected failure for missing key")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_SkipsDisabledBackends(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = t.TempDir()
	cfg.Series.Enabled = false
	cfg.Movies.Enabled = false

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
	if results[1].Detail != "Disabled" || results[2].Detail != "Disabled" {
		t.Fatalf("expected disabled backends to be skipped: %+v", results)
	}
}

func TestRunAll_ChecksEnabledBackends(t *testing.T) {
	series := testsupport.NewFakeArr(t, "series", "sonarr-key", `[]`)
	movies := testsupport.NewFakeArr(t, "movie", "radarr-key", `[]`)
	cfg := testsupport.NewConfig(t, testsupport.WithSeries(series.URL()), testsupport.WithMovies(movies.URL()))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if len(series.Requests()) != 1 || len(movies.Requests()) != 1 {
		t.Fatal("expected one status call per backend")
	}

	cfg.Movies.APIKey = "wrong"
	results = RunAll(context.Background(), cfg)
	if AllPassed(results) {
		t.Fatal("expected Radarr check to fail with a wrong key")
	}
}
