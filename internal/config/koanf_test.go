// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	if cfg.Data.Source != "csv" {
		t.Errorf("Data.Source = %q, want csv", cfg.Data.Source)
	}
	if cfg.Recommend.DefaultK != 5 || cfg.Recommend.MaxK != 50 {
		t.Errorf("K defaults = %d/%d, want 5/50", cfg.Recommend.DefaultK, cfg.Recommend.MaxK)
	}
	weights := []float64{
		cfg.Recommend.WeightSimilarity,
		cfg.Recommend.WeightPopularity,
		cfg.Recommend.WeightVote,
		cfg.Recommend.WeightRuntime,
	}
	if !reflect.DeepEqual(weights, []float64{0.5, 0.2, 0.2, 0.1}) {
		t.Errorf("weights = %v", weights)
	}
	if cfg.Recommend.SuggestCutoff != 0.3 {
		t.Errorf("SuggestCutoff = %v, want 0.3", cfg.Recommend.SuggestCutoff)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.History.Store != "memory" {
		t.Errorf("History.Store = %q, want memory", cfg.History.Store)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"DATA_PATH", "data.path"},
		{"data_source", "data.source"},
		{"HTTP_PORT", "server.port"},
		{"RECOMMEND_MAX_K", "recommend.max_k"},
		{"SUGGEST_CUTOFF", "recommend.suggest_cutoff"},
		{"HISTORY_STORE", "history.store"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"SUPERVISOR_FAILURE_BACKOFF", "supervisor.failure_backoff"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9000\n")

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
	if got := ConfigFilePath(); got != path {
		t.Errorf("ConfigFilePath() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	if got := findConfigFile(); strings.HasSuffix(got, "missing.yaml") {
		t.Errorf("a missing CONFIG_PATH must not be returned, got %q", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("DATA_PATH", "/srv/movies.csv")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RECOMMEND_MAX_K", "20")
	t.Setenv("RECOMMEND_CACHE_TTL", "90s")
	t.Setenv("SUGGEST_CUTOFF", "0.5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Data.Path != "/srv/movies.csv" {
		t.Errorf("Data.Path = %q", cfg.Data.Path)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.MaxK != 20 {
		t.Errorf("MaxK = %d, want 20", cfg.Recommend.MaxK)
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.Recommend.CacheTTL)
	}
	if cfg.Recommend.SuggestCutoff != 0.5 {
		t.Errorf("SuggestCutoff = %v, want 0.5", cfg.Recommend.SuggestCutoff)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	// Untouched values keep their defaults.
	if cfg.Recommend.DefaultK != 5 {
		t.Errorf("DefaultK = %d, want default 5", cfg.Recommend.DefaultK)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
data:
  source: duckdb
  path: /srv/movies.duckdb
  watch: true
recommend:
  weight_similarity: 0.7
  weight_runtime: 0
history:
  store: badger
  path: /srv/history
server:
  port: 7000
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Data.Source != "duckdb" || cfg.Data.Path != "/srv/movies.duckdb" || !cfg.Data.Watch {
		t.Errorf("unexpected data config %+v", cfg.Data)
	}
	if cfg.Recommend.WeightSimilarity != 0.7 || cfg.Recommend.WeightRuntime != 0 {
		t.Errorf("unexpected weights %+v", cfg.Recommend)
	}
	if cfg.Recommend.WeightPopularity != 0.2 {
		t.Errorf("WeightPopularity = %v, want default 0.2", cfg.Recommend.WeightPopularity)
	}
	if cfg.History.Store != "badger" || cfg.History.Path != "/srv/history" {
		t.Errorf("unexpected history config %+v", cfg.History)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 7000\nlogging:\n  level: warn\n")
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7500")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Server.Port != 7500 {
		t.Errorf("env must override file: port = %d, want 7500", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("file must override defaults: level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"bad source", map[string]string{"DATA_SOURCE": "parquet"}, "DATA_SOURCE"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"negative weight", map[string]string{"RECOMMEND_WEIGHT_VOTE": "-1"}, "weights.vote"},
		{"bad history store", map[string]string{"HISTORY_STORE": "redis"}, "HISTORY_STORE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadWithKoanf()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("LoadWithKoanf() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestWatchConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "logging:\n  level: info\n")
	changed := make(chan struct{}, 1)
	stop, err := WatchConfigFile(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchConfigFile: %v", err)
	}
	t.Cleanup(func() { _ = stop() })

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("callback was not invoked after the file changed")
	}
}
