package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// GmailConfig holds credentials and fetch settings for the Gmail source.
// The refresh token must carry read-only scope; the app never writes to
// the mailbox.
type GmailConfig struct {
	ClientID     string `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string `mapstructure:"client_secret" yaml:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token" yaml:"refresh_token"`

	// Query is the Gmail search query used to select messages.
	Query string `mapstructure:"query" yaml:"query"`

	// MaxResults bounds a single import batch.
	MaxResults int64 `mapstructure:"max_results" yaml:"max_results"`
}

// IMAPConfig holds connection settings for the IMAP source.
type IMAPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	Mailbox  string `mapstructure:"mailbox" yaml:"mailbox"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`

	// MaxResults bounds a single import batch.
	MaxResults int `mapstructure:"max_results" yaml:"max_results"`
}

// Config is the top-level application configuration. It is constructed
// once at process start and passed by reference into the collaborators;
// core logic never reads ambient globals.
type Config struct {
	// Listen is the HTTP listen address (host:port).
	Listen string `mapstructure:"listen" yaml:"listen"`

	// DBPath is the SQLite database file path.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// AdminToken is the bearer token required by the import endpoint.
	AdminToken string `mapstructure:"admin_token" yaml:"admin_token"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Source selects the message source: "gmail", "imap", or "mock".
	Source string `mapstructure:"source" yaml:"source"`

	Gmail GmailConfig `mapstructure:"gmail" yaml:"gmail"`
	IMAP  IMAPConfig  `mapstructure:"imap" yaml:"imap"`
}

// envPrefix is the prefix for environment overrides, e.g.
// MAILEVENTS_ADMIN_TOKEN or MAILEVENTS_GMAIL_REFRESH_TOKEN.
const envPrefix = "MAILEVENTS"

var envKeyReplacer = strings.NewReplacer(".", "_")

// bindEnvKeys registers the keys that have no default, so AutomaticEnv
// picks them up during Unmarshal.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"admin_token",
		"gmail.client_id",
		"gmail.client_secret",
		"gmail.refresh_token",
		"imap.host",
		"imap.username",
		"imap.password",
	} {
		_ = v.BindEnv(key)
	}
}

// Load reads configuration from an optional YAML file and the
// environment. Environment values override file values. An empty path
// means environment and defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen", ":8080")
	v.SetDefault("db_path", "mailevents.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("source", "mock")
	v.SetDefault("gmail.query", "in:inbox is:unread newer_than:14d")
	v.SetDefault("gmail.max_results", 50)
	v.SetDefault("imap.port", "993")
	v.SetDefault("imap.mailbox", "INBOX")
	v.SetDefault("imap.tls", true)
	v.SetDefault("imap.max_results", 50)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindEnvKeys(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AdminToken == "" {
		return fmt.Errorf("admin_token must be set")
	}

	switch c.Source {
	case "gmail":
		if c.Gmail.ClientID == "" || c.Gmail.ClientSecret == "" || c.Gmail.RefreshToken == "" {
			return fmt.Errorf("gmail source requires client_id, client_secret, and refresh_token")
		}
	case "imap":
		if c.IMAP.Host == "" || c.IMAP.Username == "" || c.IMAP.Password == "" {
			return fmt.Errorf("imap source requires host, username, and password")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown source %q (expected gmail, imap, or mock)", c.Source)
	}

	return nil
}
