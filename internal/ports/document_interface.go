package ports

import (
	"context"
	"time"

	"document-versioning-server/internal/model"

	"github.com/jmoiron/sqlx"
)

// DocumentRepository : SQL слой документов и их версий
type DocumentRepository interface {
	Executor() sqlx.ExtContext
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)

	CreateDocument(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error
	GetDocument(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error)
	LockDocument(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error)
	SetCurrentVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID string, version *model.VersionRecord, at time.Time) error

	InsertVersion(ctx context.Context, exec sqlx.ExtContext, version *model.VersionRecord) error
	GetVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID, versionUUID string) (*model.VersionRecord, error)
	ListVersions(ctx context.Context, exec sqlx.ExtContext, documentUUID string) ([]model.VersionRecord, error)
	LatestTag(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (model.VersionTag, error)
	DeleteVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID, versionUUID string) (string, error)
}

// ShareRepository : SQL слой публичных ссылок
type ShareRepository interface {
	Insert(ctx context.Context, exec sqlx.ExtContext, token *model.ShareToken) error
	RevokeActive(ctx context.Context, exec sqlx.ExtContext, documentUUID string, at time.Time) (int64, error)
	GetByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.ShareToken, error)
	GetActive(ctx context.Context, exec sqlx.ExtContext, documentUUID string, now time.Time) (*model.ShareToken, error)
	Exists(ctx context.Context, exec sqlx.ExtContext, token string) (bool, error)
}

// CacheRepository : Redis слой, кэширует "голову" документа
type CacheRepository interface {
	SetDocument(ctx context.Context, document *model.Document) error
	GetDocument(ctx context.Context, uuid string) (*model.Document, error)
	DeleteDocument(ctx context.Context, uuid string) error
}

// BlobStorage : внешнее хранилище содержимого версий, в записях хранится только ссылка
type BlobStorage interface {
	PutBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	GetBytes(ctx context.Context, ref string) ([]byte, error)
	DeleteBytes(ctx context.Context, ref string) error
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
}

type VersionService interface {
	CreateDocument(ctx context.Context, input model.NewDocument) (*model.Document, error)
	GetDocument(ctx context.Context, documentUUID string) (*model.Document, error)
	AppendVersion(ctx context.Context, documentUUID string, input model.NewVersion) (*model.VersionRecord, error)
	GetVersion(ctx context.Context, documentUUID, versionUUID string) (*model.VersionRecord, error)
	ListVersions(ctx context.Context, documentUUID string) ([]model.VersionRecord, error)
	DeleteVersion(ctx context.Context, documentUUID, versionUUID string) error
	Compare(ctx context.Context, documentUUID, fromUUID, toUUID string) (*model.DiffResult, error)
	Statistics(ctx context.Context, documentUUID string) (*model.Statistics, error)
	DownloadURL(ctx context.Context, documentUUID, versionUUID string) (string, error)
}

type RestoreService interface {
	Restore(ctx context.Context, documentUUID, versionUUID string) (*model.Document, error)
}

type ShareService interface {
	Issue(ctx context.Context, documentUUID string, ttl time.Duration) (*model.ShareToken, error)
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, documentUUID string) error
	Resolve(ctx context.Context, token string) (*model.SharedDocument, error)
}
