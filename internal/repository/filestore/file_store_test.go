package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.NewForTest()
	cfg.Storage.FilePath = filepath.Join(dir, "urls.json")
	cfg.Storage.BufferPath = filepath.Join(dir, "reserve_data.json")

	l, _ := logger.NewForTest()
	s, err := NewFileStore(cfg, l)
	require.NoError(t, err)

	return s, cfg
}

func TestNewFileStore_NilDependency(t *testing.T) {
	l, _ := logger.NewForTest()

	_, err := NewFileStore(nil, l)
	assert.ErrorIs(t, err, errs.ErrNilDependency)

	_, err = NewFileStore(config.NewForTest(), nil)
	assert.ErrorIs(t, err, errs.ErrNilDependency)
}

func TestFileStore_LoadMissing(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Empty(t, s.LoadMain())
	assert.Empty(t, s.LoadBuffer())
}

func TestFileStore_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewForTest()
	cfg.Storage.FilePath = filepath.Join(dir, "urls.json")
	cfg.Storage.BufferPath = filepath.Join(dir, "reserve_data.json")
	require.NoError(t, os.WriteFile(cfg.Storage.FilePath, []byte(`{"abc": `), 0o644))

	l, logs := logger.NewForTest()
	s, err := NewFileStore(cfg, l)
	require.NoError(t, err)

	assert.Empty(t, s.LoadMain())
	assert.Equal(t, 1, logs.FilterMessageSnippet("malformed").Len())
}

func TestFileStore_SaveLoad(t *testing.T) {
	s, cfg := newTestStore(t)

	ms := models.Mappings{
		{ShortCode: "zzz999", OriginalURL: "https://z.example"},
		{ShortCode: "aaa111", OriginalURL: "https://a.example"},
	}
	require.NoError(t, s.SaveMain(ms))

	got := s.LoadMain()
	require.Len(t, got, 2)
	assert.Equal(t, "zzz999", got[0].ShortCode)
	assert.Equal(t, "https://a.example", got[1].OriginalURL)

	raw, err := os.ReadFile(cfg.Storage.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"zzz999": "https://z.example"`)

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(cfg.Storage.FilePath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_SaveCreatesDir(t *testing.T) {
	s, _ := newTestStore(t)
	path := filepath.Join(t.TempDir(), "nested", "deeper", "urls.json")

	require.NoError(t, s.Save(path, models.Mappings{{ShortCode: "a", OriginalURL: "https://a"}}))
	assert.Len(t, s.Load(path), 1)
}

func TestFileStore_SaveFailure(t *testing.T) {
	s, _ := newTestStore(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := s.Save(filepath.Join(blocker, "urls.json"), models.Mappings{})
	assert.ErrorIs(t, err, errs.ErrPersistenceFailure)
}

func TestFileStore_Buffer(t *testing.T) {
	s, cfg := newTestStore(t)

	require.NoError(t, s.AppendBuffer(models.URLMapping{ShortCode: "abc123", OriginalURL: "https://one"}))
	require.NoError(t, s.AppendBuffer(models.URLMapping{ShortCode: "def456", OriginalURL: "https://two"}))
	require.NoError(t, s.AppendBuffer(models.URLMapping{ShortCode: "abc123", OriginalURL: "https://again"}))

	got := s.LoadBuffer()
	assert.Equal(t, models.Mappings{
		{ShortCode: "abc123", OriginalURL: "https://one"},
		{ShortCode: "def456", OriginalURL: "https://two"},
	}, got)

	require.NoError(t, s.ClearBuffer())
	assert.Empty(t, s.LoadBuffer())

	raw, err := os.ReadFile(cfg.Storage.BufferPath)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	assert.Empty(t, s.LoadMain(), "buffer writes never touch the general file")
}

func TestFileStore_ConcurrentAppend(t *testing.T) {
	s, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := models.URLMapping{ShortCode: fmt.Sprintf("c%05d", i), OriginalURL: "https://x"}
			assert.NoError(t, s.AppendBuffer(m))
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.LoadBuffer(), 20)
}
