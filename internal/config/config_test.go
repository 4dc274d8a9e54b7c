package config_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleNetAddress_Set() {
	addr := config.NewNetAddress()

	err := addr.Set("example.com:8080")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(addr.String()) // Output: example.com:8080
}

func TestNetAddress_SetInvalid(t *testing.T) {
	addr := config.NewNetAddress()

	cases := []struct {
		input string
	}{
		{input: "invalid"},
		{input: "example.com"},
		{input: "example.com:NaN"},
		{input: "example.com:8080:8080"},
	}

	for _, c := range cases {
		err := addr.Set(c.input)
		require.Error(t, err, "invalid address produces no error: %s", c.input)
	}
}

func TestNetAddress_SetEmptyHost(t *testing.T) {
	addr := config.NewNetAddress()

	require.NoError(t, addr.Set("http://:9090"))
	assert.Equal(t, "0.0.0.0:9090", addr.String())
}

func TestEnabled_Set(t *testing.T) {
	var e config.Enabled

	require.NoError(t, e.Set("TRUE"))
	assert.True(t, bool(e))
	require.NoError(t, e.Set("0"))
	assert.False(t, bool(e))
	assert.Error(t, e.Set("yes"))
}

func TestDatabase_DataSourceName(t *testing.T) {
	tests := []struct {
		name string
		db   config.Database
		want string
	}{
		{
			name: "defaults without password",
			db: config.Database{
				Host: "localhost", Name: "url_shortener", User: "postgres",
				Port: 5432, SSLMode: "disable",
			},
			want: "postgres://postgres@localhost:5432/url_shortener?sslmode=disable",
		},
		{
			name: "password is escaped",
			db: config.Database{
				Host: "db", Name: "links", User: "app", Password: "p@ss word",
				Port: 6432, ConnectTimeout: 2 * time.Second,
			},
			want: "postgres://app:p%40ss%20word@db:6432/links?connect_timeout=2",
		},
		{
			name: "explicit dsn wins",
			db:   config.Database{DSN: "postgres://x@y/z", Host: "ignored"},
			want: "postgres://x@y/z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.db.DataSourceName())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "url_shortener", cfg.Database.Name)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "urls.json", cfg.Storage.FilePath)
	assert.Equal(t, "reserve_data.json", cfg.Storage.BufferPath)
	assert.Equal(t, 5, cfg.Storage.LatestLinks)
}

func TestLoad_EnvOverridesFlags(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("BASE_URL", "https://sho.rt/")

	cfg, err := config.Load([]string{"-b", "http://flag:1", "-f", "from-flag.json"})
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "https://sho.rt", cfg.Server.BaseURL, "env wins and trailing slash is trimmed")
	assert.Equal(t, "from-flag.json", cfg.Storage.FilePath)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("database:\n  name: from_file\nstorage:\n  latest_links: 3\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG", path)

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.Database.Name)
	assert.Equal(t, 3, cfg.Storage.LatestLinks)
}

func TestLoad_SameFilesRejected(t *testing.T) {
	_, err := config.Load([]string{"-f", "data.json", "-buffer", "./data.json"})
	require.Error(t, err)
}
