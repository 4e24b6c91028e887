package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8081 {
		t.Errorf("default port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Engine.Model != "BAAI/bge-small-en-v1.5" {
		t.Errorf("default model = %s", cfg.Engine.Model)
	}
	if cfg.Engine.Backend != "runtime" {
		t.Errorf("default backend = %s, want runtime", cfg.Engine.Backend)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if cfg.Tracing.Enabled {
		t.Error("tracing should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("port = %d, want default 8081", cfg.Server.Port)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
engine:
  model: BAAI/bge-base-en-v1.5
  backend: hash
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Engine.Model != "BAAI/bge-base-en-v1.5" {
		t.Errorf("model = %s", cfg.Engine.Model)
	}
	if cfg.Engine.Backend != "hash" {
		t.Errorf("backend = %s, want hash", cfg.Engine.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %s, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep defaults.
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("read timeout = %v, want default 30s", cfg.Server.ReadTimeout)
	}
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	t.Setenv("TEST_RUNTIME_URL", "http://runtime.internal:9991")
	path := writeConfig(t, `
engine:
  runtime_url: ${TEST_RUNTIME_URL}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Engine.RuntimeURL != "http://runtime.internal:9991" {
		t.Errorf("runtime_url = %s", cfg.Engine.RuntimeURL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvModel, "sentence-transformers/all-MiniLM-L6-v2")
	t.Setenv(EnvPort, "9100")
	path := writeConfig(t, `
server:
  port: 9000
engine:
  model: BAAI/bge-base-en-v1.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Engine.Model != "sentence-transformers/all-MiniLM-L6-v2" {
		t.Errorf("model = %s, env should win", cfg.Engine.Model)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, env should win", cfg.Server.Port)
	}
}

func TestLoad_BadPortEnv(t *testing.T) {
	t.Setenv(EnvPort, "not-a-port")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unparseable port")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "zero body size", mutate: func(c *Config) { c.Server.MaxBodySize = 0 }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Engine.Backend = "gpu" }, wantErr: true},
		{name: "runtime without URL", mutate: func(c *Config) { c.Engine.RuntimeURL = "" }, wantErr: true},
		{name: "hash without URL is fine", mutate: func(c *Config) {
			c.Engine.Backend = "hash"
			c.Engine.RuntimeURL = ""
		}, wantErr: false},
		{name: "negative timeout", mutate: func(c *Config) { c.Engine.Timeout = -time.Second }, wantErr: true},
		{name: "metrics enabled without path", mutate: func(c *Config) { c.Metrics.Path = "" }, wantErr: true},
		{name: "sample rate above one", mutate: func(c *Config) { c.Tracing.SampleRate = 1.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
