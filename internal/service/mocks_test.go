package service_test

import (
	"context"
	"database/sql"
	"time"

	"document-versioning-server/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Executor() sqlx.ExtContext {
	return m.Called().Get(0).(sqlx.ExtContext)
}

func (m *MockDocumentRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(sqlx.ExtContext), args.Get(1).(func() error), args.Get(2).(func() error), args.Error(3)
}

func (m *MockDocumentRepository) CreateDocument(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error {
	return m.Called(ctx, exec, document).Error(0)
}

func (m *MockDocumentRepository) GetDocument(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error) {
	args := m.Called(ctx, exec, documentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) LockDocument(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error) {
	args := m.Called(ctx, exec, documentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// копия, чтобы сервис не менял общий объект между вызовами
	document := *args.Get(0).(*model.Document)
	return &document, args.Error(1)
}

func (m *MockDocumentRepository) SetCurrentVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID string, version *model.VersionRecord, at time.Time) error {
	return m.Called(ctx, exec, documentUUID, version, at).Error(0)
}

func (m *MockDocumentRepository) InsertVersion(ctx context.Context, exec sqlx.ExtContext, version *model.VersionRecord) error {
	return m.Called(ctx, exec, version).Error(0)
}

func (m *MockDocumentRepository) GetVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID, versionUUID string) (*model.VersionRecord, error) {
	args := m.Called(ctx, exec, documentUUID, versionUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VersionRecord), args.Error(1)
}

func (m *MockDocumentRepository) ListVersions(ctx context.Context, exec sqlx.ExtContext, documentUUID string) ([]model.VersionRecord, error) {
	args := m.Called(ctx, exec, documentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VersionRecord), args.Error(1)
}

func (m *MockDocumentRepository) LatestTag(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (model.VersionTag, error) {
	args := m.Called(ctx, exec, documentUUID)
	return args.Get(0).(model.VersionTag), args.Error(1)
}

func (m *MockDocumentRepository) DeleteVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID, versionUUID string) (string, error) {
	args := m.Called(ctx, exec, documentUUID, versionUUID)
	return args.String(0), args.Error(1)
}

type MockShareRepository struct{ mock.Mock }

func (m *MockShareRepository) Insert(ctx context.Context, exec sqlx.ExtContext, token *model.ShareToken) error {
	return m.Called(ctx, exec, token).Error(0)
}

func (m *MockShareRepository) RevokeActive(ctx context.Context, exec sqlx.ExtContext, documentUUID string, at time.Time) (int64, error) {
	args := m.Called(ctx, exec, documentUUID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShareRepository) GetByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.ShareToken, error) {
	args := m.Called(ctx, exec, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShareToken), args.Error(1)
}

func (m *MockShareRepository) GetActive(ctx context.Context, exec sqlx.ExtContext, documentUUID string, now time.Time) (*model.ShareToken, error) {
	args := m.Called(ctx, exec, documentUUID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShareToken), args.Error(1)
}

func (m *MockShareRepository) Exists(ctx context.Context, exec sqlx.ExtContext, token string) (bool, error) {
	args := m.Called(ctx, exec, token)
	return args.Bool(0), args.Error(1)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetDocument(ctx context.Context, document *model.Document) error {
	return m.Called(ctx, document).Error(0)
}

func (m *MockCacheRepository) GetDocument(ctx context.Context, uuid string) (*model.Document, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockCacheRepository) DeleteDocument(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

type MockBlobStorage struct{ mock.Mock }

func (m *MockBlobStorage) PutBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStorage) GetBytes(ctx context.Context, ref string) ([]byte, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStorage) DeleteBytes(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *MockBlobStorage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

type fakeTx struct{}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return &sqlx.Row{}
}
func (f *fakeTx) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return "", nil, nil
}
func (f *fakeTx) DriverName() string         { return "fake" }
func (f *fakeTx) Rebind(query string) string { return query }

// txCounter : считает вызовы rollback и commit, которые сервис получает из BeginTX
type txCounter struct {
	rollbacks int
	commits   int
}

func (p *txCounter) expect(repo *MockDocumentRepository) {
	repo.On("BeginTX", mock.Anything).Return(
		&fakeTx{},
		func() error { p.rollbacks++; return nil },
		func() error { p.commits++; return nil },
		nil,
	)
}

// markCurrent : SetCurrentVersion в репозитории выставляет флаг сам
func markCurrent(args mock.Arguments) {
	args.Get(3).(*model.VersionRecord).IsCurrent = true
}
