package memstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLRepository_AddGet(t *testing.T) {
	r := NewURLRepository()

	require.NoError(t, r.Add(models.URLMapping{ShortCode: "abc123", OriginalURL: "https://go.dev"}))

	got, err := r.Get("abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", got.OriginalURL)

	err = r.Add(models.URLMapping{ShortCode: "abc123", OriginalURL: "https://other.dev"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	got, err = r.Get("abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", got.OriginalURL, "conflicting add must not overwrite")

	_, err = r.Get("nope00")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestURLRepository_LoadKeepsOrder(t *testing.T) {
	r := NewURLRepository()
	require.NoError(t, r.Add(models.URLMapping{ShortCode: "old000"}))

	r.Load(models.Mappings{
		{ShortCode: "c"}, {ShortCode: "a"}, {ShortCode: "c"}, {ShortCode: "b"},
	})

	assert.Equal(t, 3, r.Len())
	assert.False(t, r.Contains("old000"))
	assert.Equal(t, models.Mappings{{ShortCode: "c"}, {ShortCode: "a"}, {ShortCode: "b"}}, r.Snapshot())
	assert.Equal(t, models.Mappings{{ShortCode: "a"}, {ShortCode: "b"}}, r.Latest(2))
}

func TestURLRepository_IncrementClick(t *testing.T) {
	r := NewURLRepository()
	require.NoError(t, r.Add(models.URLMapping{ShortCode: "abc123"}))

	r.IncrementClick("abc123")
	r.IncrementClick("abc123")
	r.IncrementClick("unknown")

	got, err := r.Get("abc123")
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ClickCount)
}

func TestURLRepository_SnapshotIsACopy(t *testing.T) {
	r := NewURLRepository()
	require.NoError(t, r.Add(models.URLMapping{ShortCode: "abc123", OriginalURL: "https://go.dev"}))

	snap := r.Snapshot()
	snap[0].OriginalURL = "https://changed"

	got, err := r.Get("abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", got.OriginalURL)
}

func TestURLRepository_Concurrent(t *testing.T) {
	r := NewURLRepository()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := fmt.Sprintf("c%05d", i)
			assert.NoError(t, r.Add(models.URLMapping{ShortCode: code}))
			r.IncrementClick(code)
			_, err := r.Get(code)
			assert.NoError(t, err)
			_ = r.Latest(5)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, r.Len())
}
