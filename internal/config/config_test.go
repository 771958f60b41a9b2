package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"JWT_KEY", "DB_HOST", "DB_PASSWORD", "AWS_ACCESS_KEY", "AWS_SECRET_KEY", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, StorageFS, cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.UploadsDir)
	assert.Equal(t, "profile_pics", cfg.Storage.ProfileDir)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8080
database:
  host: db
  dbname: cookbook
jwt:
  secret: file-secret
  ttl: 1h
storage:
  uploads_dir: /data/uploads
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "cookbook", cfg.Database.DBName)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "/data/uploads", cfg.Storage.UploadsDir)
	assert.Equal(t, "profile_pics", cfg.Storage.ProfileDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_KEY", "env-secret")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("PORT", "9999")

	path := writeConfig(t, "jwt:\n  secret: file-secret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not, a, map]\n"))
	assert.Error(t, err)

	t.Setenv("PORT", "abc")
	_, err = Load(writeConfig(t, "jwt:\n  secret: s\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid", modify: func(c *Config) {}, wantErr: false},
		{name: "missing secret", modify: func(c *Config) { c.JWT.Secret = "" }, wantErr: true},
		{name: "zero ttl", modify: func(c *Config) { c.JWT.TTL = 0 }, wantErr: true},
		{name: "bad port", modify: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "unknown backend", modify: func(c *Config) { c.Storage.Backend = "ftp" }, wantErr: true},
		{name: "fs without dir", modify: func(c *Config) { c.Storage.UploadsDir = "" }, wantErr: true},
		{name: "s3 without bucket", modify: func(c *Config) { c.Storage.Backend = StorageS3 }, wantErr: true},
		{
			name: "s3 with bucket",
			modify: func(c *Config) {
				c.Storage.Backend = StorageS3
				c.AWS.S3Bucket = "recipes"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.JWT.Secret = "secret"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", db.DSN())
}
