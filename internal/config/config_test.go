package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5001", cfg.Server.Addr)
	assert.Equal(t, "data/contacts.db", cfg.Database.Path)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "", cfg.Backup.Bucket)
	assert.Equal(t, 60, cfg.Backup.IntervalMinutes)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONTACTS_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("CONTACTS_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("CONTACTS_ENVIRONMENT", "production")
	t.Setenv("CONTACTS_BACKUP_BUCKET", "my-backups")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "my-backups", cfg.Backup.Bucket)
}
