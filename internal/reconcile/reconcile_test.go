package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
	"github.com/KretovDmitry/fallback-shortener/internal/repository/filestore"
	"github.com/KretovDmitry/fallback-shortener/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	_ Database  = (*mocks.MockReconcileDatabase)(nil)
	_ FileStore = (*mocks.MockReconcileFileStore)(nil)
	_ FileStore = (*filestore.FileStore)(nil)
)

func newMocks(t *testing.T) (*mocks.MockReconcileDatabase, *mocks.MockReconcileFileStore, *Reconciler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	db := mocks.NewMockReconcileDatabase(ctrl)
	files := mocks.NewMockReconcileFileStore(ctrl)
	l, _ := logger.NewForTest()

	r, err := New(db, files, l)
	require.NoError(t, err)

	return db, files, r
}

func TestNew_NilDependency(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockReconcileDatabase(ctrl)
	files := mocks.NewMockReconcileFileStore(ctrl)
	l, _ := logger.NewForTest()

	_, err := New(nil, files, l)
	assert.ErrorIs(t, err, errs.ErrNilDependency)
	_, err = New(db, nil, l)
	assert.ErrorIs(t, err, errs.ErrNilDependency)
	_, err = New(db, files, nil)
	assert.ErrorIs(t, err, errs.ErrNilDependency)
}

func TestRun_Disconnected(t *testing.T) {
	db, files, r := newMocks(t)
	ctx := context.Background()

	fromFile := models.Mappings{
		{ShortCode: "abc123", OriginalURL: "https://a"},
		{ShortCode: "def456", OriginalURL: "https://b"},
	}

	db.EXPECT().Connect(ctx).Return(false)
	files.EXPECT().LoadMain().Return(fromFile)

	got, connected, err := r.Run(ctx)
	require.NoError(t, err)
	assert.False(t, connected)
	assert.Equal(t, fromFile, got)
}

func TestRun_SchemaFailure(t *testing.T) {
	db, files, r := newMocks(t)
	ctx := context.Background()

	db.EXPECT().Connect(ctx).Return(true)
	db.EXPECT().EnsureSchema(ctx).Return(errors.New("permission denied"))
	files.EXPECT().LoadMain().Return(models.Mappings{})

	got, connected, err := r.Run(ctx)
	require.NoError(t, err)
	assert.False(t, connected)
	assert.Empty(t, got)
}

func TestRun_MergeDatabaseWins(t *testing.T) {
	db, files, r := newMocks(t)
	ctx := context.Background()

	stored := models.Mappings{
		{ShortCode: "abc123", OriginalURL: "https://db-a", ClickCount: 7},
		{ShortCode: "xyz789", OriginalURL: "https://db-x"},
	}
	fromFile := models.Mappings{
		{ShortCode: "fil001", OriginalURL: "https://file-only"},
		{ShortCode: "abc123", OriginalURL: "https://file-a"},
	}
	want := models.Mappings{
		{ShortCode: "abc123", OriginalURL: "https://db-a", ClickCount: 7},
		{ShortCode: "xyz789", OriginalURL: "https://db-x"},
		{ShortCode: "fil001", OriginalURL: "https://file-only"},
	}

	gomock.InOrder(
		db.EXPECT().Connect(ctx).Return(true),
		db.EXPECT().EnsureSchema(ctx).Return(nil),
		files.EXPECT().LoadBuffer().Return(models.Mappings{}),
		db.EXPECT().GetAll(ctx).Return(stored),
		files.EXPECT().LoadMain().Return(fromFile),
		files.EXPECT().SaveMain(want).Return(nil),
	)

	got, connected, err := r.Run(ctx)
	require.NoError(t, err)
	assert.True(t, connected)
	assert.Equal(t, want, got)
}

func TestRun_ReplayBuffer(t *testing.T) {
	db, files, r := newMocks(t)
	ctx := context.Background()

	buffered := models.Mappings{
		{ShortCode: "buf001", OriginalURL: "https://one"},
		{ShortCode: "buf002", OriginalURL: "https://two"},
	}

	gomock.InOrder(
		db.EXPECT().Connect(ctx).Return(true),
		db.EXPECT().EnsureSchema(ctx).Return(nil),
		files.EXPECT().LoadBuffer().Return(buffered),
		db.EXPECT().Insert(ctx, buffered[0]).Return(nil),
		db.EXPECT().Insert(ctx, buffered[1]).Return(nil),
		files.EXPECT().ClearBuffer().Return(nil),
		db.EXPECT().GetAll(ctx).Return(buffered),
		files.EXPECT().LoadMain().Return(buffered),
		files.EXPECT().SaveMain(buffered).Return(nil),
	)

	got, connected, err := r.Run(ctx)
	require.NoError(t, err)
	assert.True(t, connected)
	assert.Equal(t, buffered, got)
}

func TestRun_ReplayBufferPartialFailure(t *testing.T) {
	db, files, r := newMocks(t)
	ctx := context.Background()

	buffered := models.Mappings{
		{ShortCode: "buf001", OriginalURL: "https://one"},
		{ShortCode: "buf002", OriginalURL: "https://two"},
	}

	db.EXPECT().Connect(ctx).Return(true)
	db.EXPECT().EnsureSchema(ctx).Return(nil)
	files.EXPECT().LoadBuffer().Return(buffered)
	db.EXPECT().Insert(ctx, buffered[0]).Return(nil)
	db.EXPECT().Insert(ctx, buffered[1]).Return(errs.ErrPersistenceFailure)
	// ClearBuffer must not be called.
	db.EXPECT().GetAll(ctx).Return(buffered[:1])
	files.EXPECT().LoadMain().Return(buffered)
	files.EXPECT().SaveMain(buffered).Return(nil)

	got, _, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, buffered, got, "file-only entries stay in the working mapping")
}

func TestRun_SaveFailure(t *testing.T) {
	db, files, r := newMocks(t)
	ctx := context.Background()

	stored := models.Mappings{{ShortCode: "abc123", OriginalURL: "https://a"}}

	db.EXPECT().Connect(ctx).Return(true)
	db.EXPECT().EnsureSchema(ctx).Return(nil)
	files.EXPECT().LoadBuffer().Return(nil)
	db.EXPECT().GetAll(ctx).Return(stored)
	files.EXPECT().LoadMain().Return(nil)
	files.EXPECT().SaveMain(stored).Return(errs.ErrPersistenceFailure)

	got, connected, err := r.Run(ctx)
	assert.ErrorIs(t, err, errs.ErrPersistenceFailure)
	assert.True(t, connected)
	assert.Equal(t, stored, got)
}

// fakeDatabase keeps rows in memory and can be switched off.
type fakeDatabase struct {
	up   bool
	rows models.Mappings
}

func (f *fakeDatabase) Connect(context.Context) bool      { return f.up }
func (f *fakeDatabase) EnsureSchema(context.Context) error { return nil }
func (f *fakeDatabase) GetAll(context.Context) models.Mappings {
	return append(models.Mappings{}, f.rows...)
}

func (f *fakeDatabase) Insert(_ context.Context, m models.URLMapping) error {
	if !f.up {
		return errs.ErrStoreUnavailable
	}
	f.rows = models.Merge(f.rows, models.Mappings{m})
	return nil
}

func TestRun_RestartWithBuffer(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewForTest()
	cfg.Storage.FilePath = dir + "/urls.json"
	cfg.Storage.BufferPath = dir + "/reserve_data.json"

	l, _ := logger.NewForTest()
	files, err := filestore.NewFileStore(cfg, l)
	require.NoError(t, err)

	db := &fakeDatabase{rows: models.Mappings{{ShortCode: "old001", OriginalURL: "https://old"}}}

	// First start without a database: a link is created in file mode.
	r, err := New(db, files, l)
	require.NoError(t, err)

	ms, connected, err := r.Run(context.Background())
	require.NoError(t, err)
	require.False(t, connected)
	require.Empty(t, ms)

	created := models.URLMapping{ShortCode: "new001", OriginalURL: "https://new"}
	require.NoError(t, files.SaveMain(models.Mappings{created}))
	require.NoError(t, files.AppendBuffer(created))

	// Second start with the database back.
	db.up = true
	ms, connected, err = r.Run(context.Background())
	require.NoError(t, err)
	require.True(t, connected)

	assert.Equal(t, models.Mappings{
		{ShortCode: "old001", OriginalURL: "https://old"},
		{ShortCode: "new001", OriginalURL: "https://new"},
	}, ms)
	assert.Len(t, db.rows, 2, "buffered entry reached the database")
	assert.Empty(t, files.LoadBuffer(), "buffer is cleared")
	assert.Equal(t, ms, files.LoadMain())
}
