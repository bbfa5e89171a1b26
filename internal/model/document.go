package model

import (
	"encoding/json"
	"time"
)

// Document : изменяемая "голова" документа, указывает на текущую версию
type Document struct {
	UUID               string          `db:"uuid" json:"uuid"`
	OwnerUUID          string          `db:"owner_uuid" json:"owner_uuid"`
	FileName           string          `db:"file_name" json:"file_name"`
	Version            VersionTag      `db:"version" json:"version"`
	CurrentVersionUUID string          `db:"current_version_uuid" json:"current_version_uuid"`
	IsConfidential     bool            `db:"is_confidential" json:"is_confidential"`
	Metadata           json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
	ActiveShare        *ShareToken     `db:"-" json:"active_share,omitempty"`
}

// VersionRecord : неизменяемая запись о ревизии файла
type VersionRecord struct {
	UUID         string         `db:"uuid" json:"uuid"`
	DocumentUUID string         `db:"document_uuid" json:"document_uuid"`
	Tag          VersionTag     `db:"tag" json:"version"`
	ParentTag    NullVersionTag `db:"parent_tag" json:"parent_version,omitempty"`
	SizeBytes    int64          `db:"size_bytes" json:"size_bytes"`
	ContentType  string         `db:"content_type" json:"content_type"`
	Sha256       string         `db:"sha256" json:"sha256"`
	StorageRef   string         `db:"storage_ref" json:"-"`
	UploaderUUID string         `db:"uploader_uuid" json:"uploader_uuid"`
	UploaderName string         `db:"uploader_name" json:"uploader_name"`
	ChangeNote   string         `db:"change_note" json:"change_note,omitempty"`
	IsCurrent    bool           `db:"is_current" json:"is_current"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// Uploader : идентичность загрузившего, используется только для атрибуции
type Uploader struct {
	UUID string
	Name string
}

// NewDocument : входные данные для создания документа с первой версией
type NewDocument struct {
	FileName       string
	IsConfidential bool
	Metadata       json.RawMessage
	Version        NewVersion
}

// NewVersion : входные данные для загрузки новой версии.
// Либо Content, либо уже сохранённый StorageRef вместе с SizeBytes и Sha256.
type NewVersion struct {
	Content     []byte
	StorageRef  string
	SizeBytes   int64
	Sha256      string
	ContentType string
	Bump        BumpKind
	ChangeNote  string
	Uploader    Uploader
}

// SharedDocument : то, что видит получатель публичной ссылки
type SharedDocument struct {
	Document    *Document      `json:"document"`
	Version     *VersionRecord `json:"version"`
	DownloadURL string         `json:"download_url"`
	ExpiresAt   time.Time      `json:"expires_at"`
}
