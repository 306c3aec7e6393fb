package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
listen: "127.0.0.1:9090"
db_path: "/tmp/events.db"
admin_token: "secret-token"
log_level: "debug"
source: "imap"
imap:
  host: "imap.example.com"
  username: "events@example.com"
  password: "hunter2"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Listen)
	assert.Equal(t, "/tmp/events.db", cfg.DBPath)
	assert.Equal(t, "secret-token", cfg.AdminToken)
	assert.Equal(t, "imap", cfg.Source)
	assert.Equal(t, "imap.example.com", cfg.IMAP.Host)
	// Defaults fill in what the file omits.
	assert.Equal(t, "993", cfg.IMAP.Port)
	assert.Equal(t, "INBOX", cfg.IMAP.Mailbox)
	assert.True(t, cfg.IMAP.TLS)
	assert.Equal(t, "in:inbox is:unread newer_than:14d", cfg.Gmail.Query)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
admin_token: "from-file"
`)
	t.Setenv("MAILEVENTS_ADMIN_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AdminToken)
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("MAILEVENTS_ADMIN_TOKEN", "env-token")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.AdminToken)
	assert.Equal(t, "mock", cfg.Source)
	assert.Equal(t, ":8080", cfg.Listen)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing admin token",
			yaml:    `source: "mock"`,
			wantErr: "admin_token",
		},
		{
			name: "gmail without credentials",
			yaml: `
admin_token: "t"
source: "gmail"
`,
			wantErr: "gmail source requires",
		},
		{
			name: "imap without credentials",
			yaml: `
admin_token: "t"
source: "imap"
`,
			wantErr: "imap source requires",
		},
		{
			name: "unknown source",
			yaml: `
admin_token: "t"
source: "carrier-pigeon"
`,
			wantErr: "unknown source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
