package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "a-long-enough-test-secret"
backend:
  base_url: "http://backend.local:5000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Backend.BaseURL != "http://backend.local:5000" {
		t.Errorf("expected base_url from file, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("expected session ttl 24h, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.Cookie.Name != "syllabus_session" {
		t.Errorf("expected cookie name syllabus_session, got %s", cfg.Auth.Cookie.Name)
	}
	if cfg.Upload.MaxFileBytes() != 16<<20 {
		t.Errorf("expected 16MB staging limit, got %d", cfg.Upload.MaxFileBytes())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
auth:
  jwt_secret: "a-long-enough-test-secret"
`)
	t.Setenv("SYLLABUS_SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Backend: BackendConfig{BaseURL: "http://localhost:5000"},
			Auth:    AuthConfig{JWTSecret: "0123456789abcdef"},
			Upload:  UploadConfig{MaxFileMB: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad backend url", func(c *Config) { c.Backend.BaseURL = "localhost:5000" }, true},
		{"no upload size", func(c *Config) { c.Upload.MaxFileMB = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
