package memstore

import (
	"sync"

	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
	"github.com/KretovDmitry/fallback-shortener/internal/shortcode"
)

var _ shortcode.Set = (*URLRepository)(nil)

// URLRepository is the in-memory working mapping.
// It keeps mappings in insertion order and is safe for concurrent use.
type URLRepository struct {
	// store maps a short code to its position in order.
	store map[string]int
	// order holds the mappings in insertion order.
	order []models.URLMapping
	// mu is a mutex that protects the store map from concurrent access.
	mu sync.RWMutex
}

// NewURLRepository creates an empty working mapping.
func NewURLRepository() *URLRepository {
	return &URLRepository{store: make(map[string]int)}
}

// Load replaces the whole content with ms, keeping the first
// occurrence of a repeated code.
func (r *URLRepository) Load(ms models.Mappings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store = make(map[string]int, len(ms))
	r.order = make([]models.URLMapping, 0, len(ms))
	for _, m := range ms {
		if _, ok := r.store[m.ShortCode]; ok {
			continue
		}
		r.store[m.ShortCode] = len(r.order)
		r.order = append(r.order, m)
	}
}

// Add appends a mapping. If the code is already taken, it returns ErrConflict.
func (r *URLRepository) Add(m models.URLMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[m.ShortCode]; ok {
		return errs.ErrConflict
	}
	r.store[m.ShortCode] = len(r.order)
	r.order = append(r.order, m)

	return nil
}

// Get retrieves a mapping by its short code.
// If the code is not found, it returns ErrNotFound.
func (r *URLRepository) Get(code string) (models.URLMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.store[code]
	if !ok {
		return models.URLMapping{}, errs.ErrNotFound
	}

	return r.order[i], nil
}

// IncrementClick adds one click to the code. Unknown codes are ignored.
func (r *URLRepository) IncrementClick(code string) {
	r.mu.Lock()
	if i, ok := r.store[code]; ok {
		r.order[i].ClickCount++
	}
	r.mu.Unlock()
}

// Contains implements shortcode.Set.
func (r *URLRepository) Contains(code string) bool {
	r.mu.RLock()
	_, ok := r.store[code]
	r.mu.RUnlock()
	return ok
}

// Len returns the number of mappings.
func (r *URLRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Snapshot returns a copy of all mappings in insertion order.
func (r *URLRepository) Snapshot() models.Mappings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(models.Mappings{}, r.order...)
}

// Latest returns a copy of up to n most recently added mappings.
func (r *URLRepository) Latest(n int) models.Mappings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.Mappings(r.order).Last(n)
}
