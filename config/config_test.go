package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cfi2017/modio-go/modio"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			Host:      modio.DefaultHost,
			APIKey:    "valid-api-key",
			UserAgent: "modget",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{
			name:   "valid api key config",
			mutate: func(cfg *Config) {},
		},
		{
			name: "valid token config",
			mutate: func(cfg *Config) {
				cfg.API.APIKey = ""
				cfg.API.Token = "oauth-token"
			},
		},
		{
			name: "no credentials",
			mutate: func(cfg *Config) {
				cfg.API.APIKey = ""
			},
			wantErr: true,
		},
		{
			name: "both credentials",
			mutate: func(cfg *Config) {
				cfg.API.Token = "oauth-token"
			},
			wantErr: true,
		},
		{
			name: "negative concurrency",
			mutate: func(cfg *Config) {
				cfg.Download.Concurrency = -1
			},
			wantErr: true,
		},
		{
			name: "invalid logging level",
			mutate: func(cfg *Config) {
				cfg.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid logging format",
			mutate: func(cfg *Config) {
				cfg.Logging.Format = "xml"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  api_key: my-key
  user_agent: modget-test
download:
  dir: /tmp/mods
filter:
  popular: "Downloads > 1000"
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.APIKey != "my-key" {
		t.Errorf("API.APIKey = %q, want %q", cfg.API.APIKey, "my-key")
	}
	if cfg.API.Host != modio.DefaultHost {
		t.Errorf("API.Host = %q, want default host", cfg.API.Host)
	}
	if cfg.Download.Dir != "/tmp/mods" {
		t.Errorf("Download.Dir = %q, want %q", cfg.Download.Dir, "/tmp/mods")
	}
	if cfg.Download.Concurrency != modio.DefaultDownloadConcurrency {
		t.Errorf("Download.Concurrency = %d, want default", cfg.Download.Concurrency)
	}
	if cfg.Filter["popular"] != "Downloads > 1000" {
		t.Errorf("Filter[popular] = %q", cfg.Filter["popular"])
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestCredentials(t *testing.T) {
	cfg := validConfig()
	if got := cfg.Credentials(); got != modio.APIKey("valid-api-key") {
		t.Errorf("Credentials() = %v, want api key credentials", got)
	}

	cfg.API.APIKey = ""
	cfg.API.Token = "tok"
	if got := cfg.Credentials(); got != modio.Token("tok") {
		t.Errorf("Credentials() = %v, want token credentials", got)
	}
}
