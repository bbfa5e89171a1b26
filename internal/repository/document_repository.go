package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"document-versioning-server/config"
	"document-versioning-server/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolation = "23505"

	// invalidTextRepresentation : строка не является UUID, такой записи быть не может
	invalidTextRepresentation = "22P02"
)

const documentColumns = `uuid, owner_uuid, file_name, version, current_version_uuid,
		       is_confidential, metadata, created_at, updated_at`

const versionColumns = `uuid, document_uuid, tag, parent_tag, size_bytes, content_type, sha256,
		       storage_ref, uploader_uuid, uploader_name, change_note, is_current, created_at`

type DocumentRepository struct {
	*config.Database
}

func NewDocumentRepository(database *config.Database) *DocumentRepository {
	return &DocumentRepository{database}
}

// Executor : соединение для чтения вне транзакции
func (r *DocumentRepository) Executor() sqlx.ExtContext {
	return r.DB
}

// CreateDocument : сохраняем "голову" документа, первая версия вставляется в той же транзакции
func (r *DocumentRepository) CreateDocument(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error {
	query := `
		INSERT INTO documents (uuid, owner_uuid, file_name, version, current_version_uuid,
		                       is_confidential, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9)
	`
	metadata := "{}"
	if len(document.Metadata) > 0 {
		metadata = string(document.Metadata)
	}

	_, err := exec.ExecContext(
		ctx,
		query,
		document.UUID,
		document.OwnerUUID,
		document.FileName,
		document.Version,
		document.CurrentVersionUUID,
		document.IsConfidential,
		metadata,
		document.CreatedAt,
		document.UpdatedAt)

	return err
}

// GetDocument : возвращает документ или model.ErrDocumentNotFound
func (r *DocumentRepository) GetDocument(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE uuid = $1`
	return r.getDocument(ctx, exec, query, documentUUID)
}

// LockDocument : SELECT ... FOR UPDATE, сериализует изменения одного документа внутри транзакции
func (r *DocumentRepository) LockDocument(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE uuid = $1 FOR UPDATE`
	return r.getDocument(ctx, exec, query, documentUUID)
}

func (r *DocumentRepository) getDocument(ctx context.Context, exec sqlx.ExtContext, query, documentUUID string) (*model.Document, error) {
	var document model.Document
	err := sqlx.GetContext(ctx, exec, &document, query, documentUUID)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return nil, model.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// SetCurrentVersion : переключает флаг is_current и указатель документа.
// Сначала снимаем флаг, потом ставим: уникальный индекс проверяется построчно.
func (r *DocumentRepository) SetCurrentVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID string, version *model.VersionRecord, at time.Time) error {
	if _, err := exec.ExecContext(ctx, `
		UPDATE document_versions SET is_current = FALSE
		WHERE document_uuid = $1 AND is_current
	`, documentUUID); err != nil {
		return err
	}

	result, err := exec.ExecContext(ctx, `
		UPDATE document_versions SET is_current = TRUE
		WHERE document_uuid = $1 AND uuid = $2
	`, documentUUID, version.UUID)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return model.ErrVersionNotFound
	}

	result, err = exec.ExecContext(ctx, `
		UPDATE documents SET current_version_uuid = $2, version = $3, updated_at = $4
		WHERE uuid = $1
	`, documentUUID, version.UUID, version.Tag, at)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return model.ErrDocumentNotFound
	}

	version.IsCurrent = true
	return nil
}

// InsertVersion : новая неизменяемая запись, конфликт тега отдаётся как model.ErrVersionConflict
func (r *DocumentRepository) InsertVersion(ctx context.Context, exec sqlx.ExtContext, version *model.VersionRecord) error {
	query := `
		INSERT INTO document_versions (uuid, document_uuid, tag, parent_tag, size_bytes, content_type, sha256,
		                               storage_ref, uploader_uuid, uploader_name, change_note, is_current, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, $12)
	`
	_, err := exec.ExecContext(
		ctx,
		query,
		version.UUID,
		version.DocumentUUID,
		version.Tag,
		version.ParentTag,
		version.SizeBytes,
		version.ContentType,
		version.Sha256,
		version.StorageRef,
		version.UploaderUUID,
		version.UploaderName,
		version.ChangeNote,
		version.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return model.ErrVersionConflict
	}
	return err
}

// GetVersion : версия должна принадлежать документу, иначе model.ErrVersionNotFound
func (r *DocumentRepository) GetVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID, versionUUID string) (*model.VersionRecord, error) {
	query := `SELECT ` + versionColumns + ` FROM document_versions WHERE document_uuid = $1 AND uuid = $2`

	var version model.VersionRecord
	err := sqlx.GetContext(ctx, exec, &version, query, documentUUID, versionUUID)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return nil, model.ErrVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// ListVersions : вся история в порядке создания, от старых к новым
func (r *DocumentRepository) ListVersions(ctx context.Context, exec sqlx.ExtContext, documentUUID string) ([]model.VersionRecord, error) {
	query := `SELECT ` + versionColumns + ` FROM document_versions WHERE document_uuid = $1 ORDER BY created_at ASC, seq ASC`

	versions := []model.VersionRecord{}
	if err := sqlx.SelectContext(ctx, exec, &versions, query, documentUUID); err != nil {
		if isInvalidID(err) {
			return nil, model.ErrDocumentNotFound
		}
		return nil, err
	}
	return versions, nil
}

// LatestTag : наибольший тег в истории. Сравнение идёт по числам, а не по строке
func (r *DocumentRepository) LatestTag(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (model.VersionTag, error) {
	query := `
		SELECT tag FROM document_versions
		WHERE document_uuid = $1
		ORDER BY split_part(tag, '.', 1)::int DESC,
		         split_part(tag, '.', 2)::int DESC,
		         split_part(tag, '.', 3)::int DESC
		LIMIT 1
	`
	var tag model.VersionTag
	err := sqlx.GetContext(ctx, exec, &tag, query, documentUUID)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return model.VersionTag{}, model.ErrDocumentNotFound
	}
	return tag, err
}

// DeleteVersion : удаляет нетекущую версию и возвращает ссылку на её содержимое.
// Если на то же содержимое ссылаются другие версии, ссылка пустая и удалять объект нельзя.
// CTE видит снимок до удаления, поэтому удаляемая строка исключается по uuid.
func (r *DocumentRepository) DeleteVersion(ctx context.Context, exec sqlx.ExtContext, documentUUID, versionUUID string) (string, error) {
	query := `
		WITH deleted AS (
			DELETE FROM document_versions
			WHERE document_uuid = $1 AND uuid = $2 AND NOT is_current
			RETURNING storage_ref
		)
		SELECT d.storage_ref,
		       EXISTS (
		           SELECT 1 FROM document_versions v
		           WHERE v.storage_ref = d.storage_ref AND v.uuid <> $2
		       ) AS shared
		FROM deleted d
	`

	var deleted struct {
		StorageRef string `db:"storage_ref"`
		Shared     bool   `db:"shared"`
	}
	err := sqlx.GetContext(ctx, exec, &deleted, query, documentUUID, versionUUID)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return "", model.ErrVersionNotFound
	}
	if err != nil {
		return "", err
	}

	if deleted.Shared {
		return "", nil
	}
	return deleted.StorageRef, nil
}

func (r *DocumentRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}
