package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Contact  ContactConfig  `toml:"contact"`
	Admin    AdminConfig    `toml:"admin"`
	Newsroom NewsroomConfig `toml:"newsroom"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// AuthConfig holds login-token settings.
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// SMTPConfig holds outgoing-mail settings for the contact form.
type SMTPConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	User string `toml:"user"`
	Pass string `toml:"pass"`
	From string `toml:"from"`
}

// ContactConfig holds contact-form settings.
type ContactConfig struct {
	// FallbackEmail receives contact mail when no site contact email is saved.
	FallbackEmail string `toml:"fallback_email"`
}

// AdminConfig holds the bootstrap admin account created on first run.
type AdminConfig struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// NewsroomConfig holds AI news aggregation and rewrite settings.
type NewsroomConfig struct {
	Host          string   `toml:"host"`
	HostFallbacks []string `toml:"host_fallbacks"`
	BridgeHost    string   `toml:"bridge_host"`
	Model         string   `toml:"model"`
	HeadlineLimit int      `toml:"headline_limit"`
	MinWords      int      `toml:"min_words"`
	RSSFeeds      []string `toml:"rss_feeds"`
}

const defaultConfigContent = `[server]
port = 4000

[auth]
jwt_secret = ""                  # Set here or via JWT_SECRET env var
token_ttl_hours = 8

[smtp]
host = ""                        # e.g. "smtp.example.com" (or SMTP_HOST env var)
port = 587
user = ""
pass = ""
from = ""                        # defaults to smtp.user

[contact]
fallback_email = "hello@example.com"

[admin]
email = "admin@example.com"      # bootstrap account, created when no admins exist
password = "admin123"

[newsroom]
host = "http://localhost:11434"  # Ollama endpoint (or OLLAMA_HOST env var)
host_fallbacks = []
bridge_host = ""                 # defaults to host.docker.internal
model = "llama3.2:1b"
headline_limit = 12
min_words = 100
rss_feeds = []
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("newsroom", "headline_limit") {
		if cfg.Newsroom.HeadlineLimit < 1 {
			return fmt.Errorf("invalid newsroom.headline_limit %d: must be >= 1", cfg.Newsroom.HeadlineLimit)
		}
	}
	if md.IsDefined("newsroom", "min_words") {
		if cfg.Newsroom.MinWords < 0 {
			return fmt.Errorf("invalid newsroom.min_words %d: must be >= 0", cfg.Newsroom.MinWords)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 8
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}
	if cfg.Contact.FallbackEmail == "" {
		cfg.Contact.FallbackEmail = "hello@example.com"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@example.com"
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
	}
	if cfg.Newsroom.Host == "" {
		cfg.Newsroom.Host = "http://localhost:11434"
	}
	if cfg.Newsroom.Model == "" {
		cfg.Newsroom.Model = "llama3.2:1b"
	}
	if cfg.Newsroom.HeadlineLimit == 0 {
		cfg.Newsroom.HeadlineLimit = 12
	}
	if cfg.Newsroom.MinWords == 0 {
		cfg.Newsroom.MinWords = 100
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		} else {
			slog.Warn("ignoring invalid PORT environment variable", "value", v)
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		} else {
			slog.Warn("ignoring invalid SMTP_PORT environment variable", "value", v)
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.SMTP.User = v
		if cfg.SMTP.From == "" {
			cfg.SMTP.From = v
		}
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		cfg.SMTP.Pass = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("CONTACT_FALLBACK_EMAIL"); v != "" {
		cfg.Contact.FallbackEmail = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.Admin.Email = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Newsroom.Host = v
	}
	if v := os.Getenv("OLLAMA_HOST_FALLBACKS"); v != "" {
		cfg.Newsroom.HostFallbacks = splitList(v)
	}
	if v := os.Getenv("OLLAMA_DOCKER_BRIDGE_HOST"); v != "" {
		cfg.Newsroom.BridgeHost = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.Newsroom.Model = v
	}
}

// splitList splits a comma-separated environment value, dropping empties.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if cfg.Newsroom.HeadlineLimit < 1 {
		return fmt.Errorf("invalid newsroom.headline_limit %d: must be >= 1", cfg.Newsroom.HeadlineLimit)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("auth.jwt_secret is empty: using an insecure development secret, set it via JWT_SECRET")
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}

	return nil
}
