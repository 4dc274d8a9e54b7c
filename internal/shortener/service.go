// Package shortener implements creating and resolving short links on top
// of the working mapping, the relational store and the file fallback.
package shortener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/metrics"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
	"github.com/KretovDmitry/fallback-shortener/internal/repository/memstore"
	"github.com/KretovDmitry/fallback-shortener/internal/shortcode"
	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -source=service.go -destination=../../mocks/shortener.go -package=mocks

// Storage modes reported by StorageMode.
const (
	ModeDatabase = "database"
	ModeFile     = "file_json"
)

// Database is the part of the relational store used while serving.
type Database interface {
	Connected() bool
	Insert(ctx context.Context, m models.URLMapping) error
	IncrementClick(ctx context.Context, code string)
}

// FileStore is the part of the file fallback used while serving.
type FileStore interface {
	SaveMain(ms models.Mappings) error
	AppendBuffer(m models.URLMapping) error
}

// Service creates and resolves short links.
// It is safe for concurrent use.
type Service struct {
	db       Database
	files    FileStore
	urls     *memstore.URLRepository
	reserved shortcode.Set
	metrics  *metrics.Metrics
	logger   logger.Logger
	// latest is the number of entries in Stats.
	latest int
	// shutdownTimeout bounds Stop.
	shutdownTimeout time.Duration
	// persistMu makes snapshot and save of the general file one step.
	persistMu sync.Mutex
	// clicks feeds click increments to the database worker.
	clicks chan string
	// wg is a wait group used to manage the click worker.
	wg sync.WaitGroup
	// done is a channel used to signal the stop of the service.
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a service serving the given working mapping and starts the
// click worker. A nil reserved set means the default reserved words.
func New(
	db Database,
	files FileStore,
	urls *memstore.URLRepository,
	reserved shortcode.Set,
	config *config.Config,
	metrics *metrics.Metrics,
	logger logger.Logger,
) (*Service, error) {
	switch {
	case db == nil:
		return nil, fmt.Errorf("%w: database", errs.ErrNilDependency)
	case files == nil:
		return nil, fmt.Errorf("%w: file store", errs.ErrNilDependency)
	case urls == nil:
		return nil, fmt.Errorf("%w: working mapping", errs.ErrNilDependency)
	case config == nil:
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	case metrics == nil:
		return nil, fmt.Errorf("%w: metrics", errs.ErrNilDependency)
	case logger == nil:
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	if config.Storage.ClickQueueLen <= 0 {
		return nil, errors.New("click queue length should be >= 1")
	}
	if reserved == nil {
		reserved = shortcode.NewReserved(shortcode.DefaultReservedWords...)
	}

	s := &Service{
		db:              db,
		files:           files,
		urls:            urls,
		reserved:        reserved,
		metrics:         metrics,
		logger:          logger,
		latest:          config.Storage.LatestLinks,
		shutdownTimeout: config.Server.ShutdownTimeout,
		clicks:          make(chan string, config.Storage.ClickQueueLen),
		done:            make(chan struct{}),
	}

	if db.Connected() {
		metrics.DatabaseConnected.Set(1)
	} else {
		metrics.DatabaseConnected.Set(0)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.flushClicks()
	}()

	return s, nil
}

// Create shortens raw and persists the new mapping.
//
// The mapping is added to the working set and the general file. It then
// goes to the database when connected, or to the write buffer otherwise,
// including when the database insert fails. Persistence failures are
// logged and never fail the call.
func (s *Service) Create(ctx context.Context, raw string) (*models.URLMapping, error) {
	originalURL, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	var m *models.URLMapping
	for range shortcode.MaxAttempts {
		code, err := shortcode.Generate(s.urls, s.reserved)
		if err != nil {
			return nil, fmt.Errorf("generate short code: %w", err)
		}
		m = models.NewMapping(code, originalURL)
		if err = s.urls.Add(*m); err == nil {
			break
		}
		m = nil
		if !errors.Is(err, errs.ErrConflict) {
			return nil, fmt.Errorf("add mapping: %w", err)
		}
	}
	if m == nil {
		return nil, shortcode.ErrExhausted
	}

	s.metrics.LinksCreated.Inc()
	s.persist(context.WithoutCancel(ctx), *m)

	return m, nil
}

// Resolve returns the original URL of code and counts the click.
// If the code is unknown, ErrNotFound is returned.
func (s *Service) Resolve(_ context.Context, code string) (string, error) {
	m, err := s.urls.Get(code)
	if err != nil {
		s.metrics.Redirects.WithLabelValues("not_found").Inc()
		return "", err
	}

	s.urls.IncrementClick(code)
	s.metrics.Redirects.WithLabelValues("found").Inc()

	if s.db.Connected() {
		select {
		case s.clicks <- code:
		default:
			s.metrics.ClicksDropped.Inc()
			s.logger.Warnf("click queue is full, dropping click of %q", code)
		}
	}

	return m.OriginalURL, nil
}

// Stats returns the number of links and the most recently created ones.
func (s *Service) Stats(_ context.Context) models.Stats {
	return models.Stats{
		Total:  s.urls.Len(),
		Latest: s.urls.Latest(s.latest),
	}
}

// Total returns the number of links.
func (s *Service) Total() int {
	return s.urls.Len()
}

// StorageMode reports which durable store is in use.
func (s *Service) StorageMode() string {
	if s.db.Connected() {
		return ModeDatabase
	}
	return ModeFile
}

// Stop stops the click worker and waits for the queued clicks to be stored.
// It is safe for concurrent use.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	ready := make(chan struct{})
	go func() {
		defer close(ready)
		s.wg.Wait()
	}()

	select {
	case <-time.After(s.shutdownTimeout):
		s.logger.Error("service stop: shutdown timeout exceeded")
	case <-ready:
	}
}

// persist writes m to the durable stores.
func (s *Service) persist(ctx context.Context, m models.URLMapping) {
	s.persistMu.Lock()
	err := s.files.SaveMain(s.urls.Snapshot())
	s.persistMu.Unlock()
	if err != nil {
		s.metrics.PersistenceErrors.WithLabelValues(metrics.StoreFile).Inc()
		s.logger.Errorf("save general file: %v", err)
	}

	if s.db.Connected() {
		err = s.db.Insert(ctx, m)
		if err == nil {
			return
		}
		s.metrics.PersistenceErrors.WithLabelValues(metrics.StoreDatabase).Inc()
		s.logger.Warnf("buffering %q after failed insert: %v", m.ShortCode, err)
	}

	if err = s.files.AppendBuffer(m); err != nil {
		s.metrics.PersistenceErrors.WithLabelValues(metrics.StoreBuffer).Inc()
		s.logger.Errorf("append %q to buffer: %v", m.ShortCode, err)
	}
}

// flushClicks stores queued clicks in the database until the service
// stops, then drains what is left in the queue.
func (s *Service) flushClicks() {
	for {
		select {
		case code := <-s.clicks:
			s.db.IncrementClick(context.Background(), code)
		case <-s.done:
			for {
				select {
				case code := <-s.clicks:
					s.db.IncrementClick(context.Background(), code)
				default:
					return
				}
			}
		}
	}
}

// Normalize trims raw and prefixes https:// unless it already starts
// with http:// or https://, in any case.
func Normalize(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", fmt.Errorf("%w: url is not provided", errs.ErrInvalidInput)
	}

	// govalidator expects a lower case scheme
	check := u
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "http://"):
		check = "http://" + u[len("http://"):]
	case strings.HasPrefix(lower, "https://"):
		check = "https://" + u[len("https://"):]
	default:
		u = "https://" + u
		check = u
	}

	if !govalidator.IsURL(check) {
		return "", fmt.Errorf("%w: invalid url: %q", errs.ErrInvalidInput, raw)
	}

	return u, nil
}
