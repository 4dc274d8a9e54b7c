// Package reconcile merges the relational store and the file fallback
// into the working mapping at startup.
package reconcile

import (
	"context"
	"fmt"

	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
)

//go:generate mockgen -source=reconcile.go -destination=../../mocks/reconcile.go -package=mocks -mock_names=Database=MockReconcileDatabase,FileStore=MockReconcileFileStore

// Database is the part of the relational store used at startup.
type Database interface {
	Connect(ctx context.Context) bool
	EnsureSchema(ctx context.Context) error
	GetAll(ctx context.Context) models.Mappings
	Insert(ctx context.Context, m models.URLMapping) error
}

// FileStore is the part of the file fallback used at startup.
type FileStore interface {
	LoadMain() models.Mappings
	SaveMain(ms models.Mappings) error
	LoadBuffer() models.Mappings
	ClearBuffer() error
}

// Reconciler builds the working mapping once, before serving.
type Reconciler struct {
	db     Database
	files  FileStore
	logger logger.Logger
}

// New creates a reconciler.
func New(db Database, files FileStore, logger logger.Logger) (*Reconciler, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: database", errs.ErrNilDependency)
	}
	if files == nil {
		return nil, fmt.Errorf("%w: file store", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &Reconciler{db: db, files: files, logger: logger}, nil
}

// Run connects to the database and returns the working mapping.
//
// When the database is reachable, the write buffer is replayed into it and
// cleared if every entry was stored. The database content is then merged
// with the general file, the database winning on conflicting codes, and
// the result is written back to the general file.
//
// Otherwise the working mapping is the general file as is.
//
// Run returns the mapping even when it fails to rewrite the general file;
// the error is informational.
func (r *Reconciler) Run(ctx context.Context) (models.Mappings, bool, error) {
	connected := r.db.Connect(ctx)
	if connected {
		if err := r.db.EnsureSchema(ctx); err != nil {
			r.logger.Errorf("schema is not available: %v", err)
			connected = false
		}
	}

	if !connected {
		ms := r.files.LoadMain()
		r.logger.Infof("file mode: loaded %d mapping(s) from the general file", len(ms))
		return ms, false, nil
	}

	r.replayBuffer(ctx)

	stored := r.db.GetAll(ctx)
	fromFile := r.files.LoadMain()
	merged := models.Merge(stored, fromFile)
	r.logger.Infof("database mode: %d mapping(s) in database, %d in file, %d merged",
		len(stored), len(fromFile), len(merged))

	if err := r.files.SaveMain(merged); err != nil {
		return merged, true, fmt.Errorf("save merged mapping: %w", err)
	}

	return merged, true, nil
}

// replayBuffer inserts buffered entries and clears the buffer only if
// all of them were stored.
func (r *Reconciler) replayBuffer(ctx context.Context) {
	buffered := r.files.LoadBuffer()
	if len(buffered) == 0 {
		return
	}

	failed := 0
	for _, m := range buffered {
		if err := r.db.Insert(ctx, m); err != nil {
			failed++
		}
	}

	if failed > 0 {
		r.logger.Warnf("%d of %d buffered mapping(s) were not stored, keeping the buffer",
			failed, len(buffered))
		return
	}

	if err := r.files.ClearBuffer(); err != nil {
		r.logger.Errorf("clear buffer: %v", err)
		return
	}
	r.logger.Infof("replayed %d buffered mapping(s) into the database", len(buffered))
}
