package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8585"`
	DBPath        string `env:"DB_PATH" envDefault:"./restaurant.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	TemplatesDir  string `env:"TEMPLATES_DIR" envDefault:"templates"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"static"`
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"static/uploads"`
	// BaseURL overrides the host derived from the request when building the
	// QR menu link, e.g. "https://menu.example.com".
	BaseURL      string `env:"BASE_URL"`
	CookieDomain string `env:"COOKIE_DOMAIN"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	SessionKeyB64 string `env:"SESSION_KEY"`
	CSRFKeyB64    string `env:"CSRF_KEY"`

	// Decoded in LoadConfig, not read from the environment directly.
	SessionKey []byte
	CSRFKey    []byte
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.SessionKey = loadKey("SESSION_KEY", cfg.SessionKeyB64)
	cfg.CSRFKey = loadKey("CSRF_KEY", cfg.CSRFKeyB64)

	return cfg, nil
}

// loadKey decodes a base64 secret from the environment, falling back to a
// random key. The fallback keeps development working but invalidates
// sessions on restart, so production must set both keys.
func loadKey(name, encoded string) []byte {
	if encoded == "" {
		slog.Warn("secret key not set, generating a random one; sessions will not survive restarts", "key", name)
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(decoded) < 32 {
		slog.Warn("secret key invalid or shorter than 32 bytes, generating a random one", "key", name)
		return randomBytes(32)
	}
	return decoded
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// meaningful recovery for a key source.
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	return b
}
