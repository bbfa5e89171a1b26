package repository

import (
	"context"

	"document-versioning-server/config"
	"document-versioning-server/internal/util"
)

// schema : версии хранятся append-only, флаг is_current согласован с documents.current_version_uuid.
// Частичные уникальные индексы гарантируют одну текущую версию и одну активную ссылку на документ.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	uuid                 UUID PRIMARY KEY,
	owner_uuid           TEXT NOT NULL,
	file_name            TEXT NOT NULL,
	version              TEXT NOT NULL,
	current_version_uuid UUID NOT NULL,
	is_confidential      BOOLEAN NOT NULL DEFAULT FALSE,
	metadata             JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS document_versions (
	seq           BIGSERIAL,
	uuid          UUID PRIMARY KEY,
	document_uuid UUID NOT NULL REFERENCES documents (uuid) ON DELETE CASCADE,
	tag           TEXT NOT NULL,
	parent_tag    TEXT,
	size_bytes    BIGINT NOT NULL,
	content_type  TEXT NOT NULL,
	sha256        TEXT NOT NULL,
	storage_ref   TEXT NOT NULL,
	uploader_uuid TEXT NOT NULL,
	uploader_name TEXT NOT NULL DEFAULT '',
	change_note   TEXT NOT NULL DEFAULT '',
	is_current    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (document_uuid, tag)
);

CREATE UNIQUE INDEX IF NOT EXISTS document_versions_one_current
	ON document_versions (document_uuid) WHERE is_current;

CREATE TABLE IF NOT EXISTS share_tokens (
	token         TEXT PRIMARY KEY,
	document_uuid UUID NOT NULL REFERENCES documents (uuid) ON DELETE CASCADE,
	issued_at     TIMESTAMPTZ NOT NULL,
	expires_at    TIMESTAMPTZ NOT NULL,
	revoked_at    TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS share_tokens_one_active
	ON share_tokens (document_uuid) WHERE revoked_at IS NULL;
`

// EnsureSchema : создаёт таблицы, если их ещё нет
func EnsureSchema(ctx context.Context, database *config.Database) error {
	if _, err := database.ExecContext(ctx, schema); err != nil {
		return util.LogError("[Schema] не удалось применить схему БД", err)
	}
	return nil
}
