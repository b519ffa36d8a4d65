package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arrtag/internal/testsupport"
)

const (
	testSeriesList = `[
		{"id":1,"title":"Breaking Bad","sortTitle":"breaking bad","year":2008,"path":"/tv/Breaking Bad","tvdbId":81189,"imdbId":"tt0903747","qualityProfileId":1,"seasonFolderEnabled":true,"metadataProfileId":1},
		{"id":2,"title":"Tagged","sortTitle":"tagged","year":2010,"path":"/tv/Tagged - {imdb-tt2}","tvdbId":2,"imdbId":"tt2","qualityProfileId":1}
	]`
	testMovieList = `[
		{"id":3,"title":"The Matrix","sortTitle":"matrix","year":1999,"path":"/movies/The Matrix (1999)","tmdbId":603,"imdbId":"tt0133093","monitored":true,"qualityProfileId":1}
	]`
)

type cliTestEnv struct {
	series     *testsupport.FakeArr
	movies     *testsupport.FakeArr
	configPath string
	logDir     string
}

type envOption func(*envSettings)

type envSettings struct {
	seriesKey string
	moviesKey string
	extra     string
}

func withKeys(series, movies string) envOption {
	return func(s *envSettings) {
		s.seriesKey = series
		s.moviesKey = movies
	}
}

func withExtraTOML(extra string) envOption {
	return func(s *envSettings) {
		s.extra = extra
	}
}

func setupCLITestEnv(t *testing.T, opts ...envOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("SONARR_API_KEY", "")
	t.Setenv("RADARR_API_KEY", "")

	settings := envSettings{seriesKey: "sonarr-key", moviesKey: "radarr-key"}
	for _, opt := range opts {
		opt(&settings)
	}

	env := &cliTestEnv{
		series:     testsupport.NewFakeArr(t, "series", "sonarr-key", testSeriesList),
		movies:     testsupport.NewFakeArr(t, "movie", "radarr-key", testMovieList),
		configPath: filepath.Join(base, "arrtag.toml"),
		logDir:     filepath.Join(base, "logs"),
	}

	content := fmt.Sprintf(
		"[series]\nurl = %q\napi_key = %q\n\n[movies]\nurl = %q\napi_key = %q\n\n[logging]\ndir = %q\nconsole = false\n%s",
		env.series.URL(), settings.seriesKey,
		env.movies.URL(), settings.moviesKey,
		env.logDir,
		settings.extra,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
