// Package filestore keeps code to URL mappings in JSON files.
//
// Two files are managed: the general file holding the full working
// mapping, and the write buffer holding the entries that have not
// reached the relational store yet.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
)

// FileStore reads and atomically rewrites JSON mapping files.
type FileStore struct {
	// mainPath is the general code to URL file.
	mainPath string
	// bufferPath is the write buffer file.
	bufferPath string
	// mu serializes every write, so files are never interleaved.
	mu     sync.Mutex
	logger logger.Logger
}

// NewFileStore creates a file store bound to the configured paths.
func NewFileStore(config *config.Config, logger logger.Logger) (*FileStore, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &FileStore{
		mainPath:   config.Storage.FilePath,
		bufferPath: config.Storage.BufferPath,
		logger:     logger,
	}, nil
}

// Load reads the mappings stored at path. A missing file yields an empty
// list; so does malformed content, which is logged.
func (s *FileStore) Load(path string) models.Mappings {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Errorf("read %q, treating as empty: %v", path, err)
		}
		return models.Mappings{}
	}

	var ms models.Mappings
	if err = json.Unmarshal(data, &ms); err != nil {
		s.logger.Warnf("malformed %q, treating as empty: %v", path, err)
		return models.Mappings{}
	}

	return ms
}

// Save overwrites the file at path with ms.
// The content is written to a temporary file which then replaces path.
func (s *FileStore) Save(path string, ms models.Mappings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(path, ms)
}

// Append adds m to the file at path unless its code is already there.
func (s *FileStore) Append(path string, m models.URLMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(path, models.Merge(s.Load(path), models.Mappings{m}))
}

// Clear resets the file at path to an empty mapping.
func (s *FileStore) Clear(path string) error {
	return s.Save(path, models.Mappings{})
}

// LoadMain reads the general file.
func (s *FileStore) LoadMain() models.Mappings { return s.Load(s.mainPath) }

// SaveMain overwrites the general file.
func (s *FileStore) SaveMain(ms models.Mappings) error { return s.Save(s.mainPath, ms) }

// LoadBuffer reads the write buffer.
func (s *FileStore) LoadBuffer() models.Mappings { return s.Load(s.bufferPath) }

// AppendBuffer adds an entry to the write buffer.
func (s *FileStore) AppendBuffer(m models.URLMapping) error { return s.Append(s.bufferPath, m) }

// ClearBuffer empties the write buffer.
func (s *FileStore) ClearBuffer() error { return s.Clear(s.bufferPath) }

func (s *FileStore) write(path string, ms models.Mappings) (err error) {
	if ms == nil {
		ms = models.Mappings{}
	}
	data, err := json.MarshalIndent(ms, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %q: %w", errs.ErrPersistenceFailure, path, err)
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dir %q: %w", errs.ErrPersistenceFailure, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", errs.ErrPersistenceFailure, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %q: %w", errs.ErrPersistenceFailure, tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %q: %w", errs.ErrPersistenceFailure, tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %w", errs.ErrPersistenceFailure, tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod %q: %w", errs.ErrPersistenceFailure, tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replace %q: %w", errs.ErrPersistenceFailure, path, err)
	}

	return nil
}
