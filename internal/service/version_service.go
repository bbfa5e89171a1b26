package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"document-versioning-server/internal/diff"
	"document-versioning-server/internal/metrics"
	"document-versioning-server/internal/model"
	"document-versioning-server/internal/ports"
	"document-versioning-server/internal/statistics"
	"document-versioning-server/internal/util"
	"document-versioning-server/internal/versioning"

	"github.com/google/uuid"
)

const defaultContentType = "application/octet-stream"

// Options : общие настройки сервисов
type Options struct {
	// Timeout : дедлайн на один вызов сервиса вместе с обращениями к БД и S3
	Timeout time.Duration

	// AppendRetries : сколько раз повторять добавление при конфликте тега
	AppendRetries int

	PresignTTL time.Duration

	ShareBaseURL string
	MaxShareTTL  time.Duration
	TokenSize    int

	// Now : часы, в тестах подменяются
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

type VersionService struct {
	documentRepository ports.DocumentRepository
	shareRepository    ports.ShareRepository
	cacheRepository    ports.CacheRepository
	storage            ports.BlobStorage
	engine             *diff.Engine
	opt                Options
}

func NewVersionService(
	documentRepository ports.DocumentRepository,
	shareRepository ports.ShareRepository,
	cacheRepository ports.CacheRepository,
	storage ports.BlobStorage,
	engine *diff.Engine,
	opt Options,
) *VersionService {
	if opt.AppendRetries < 1 {
		opt.AppendRetries = 1
	}
	if engine == nil {
		engine = diff.NewEngine(diff.Options{}, nil)
	}
	return &VersionService{
		documentRepository: documentRepository,
		shareRepository:    shareRepository,
		cacheRepository:    cacheRepository,
		storage:            storage,
		engine:             engine,
		opt:                opt,
	}
}

// CreateDocument : создаёт документ вместе с первой версией 1.0.0
func (s *VersionService) CreateDocument(ctx context.Context, input model.NewDocument) (*model.Document, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	documentUUID := uuid.NewString()
	versionUUID := uuid.NewString()

	content, uploaded, err := s.storeContent(ctx, documentUUID, versionUUID, input.Version)
	if err != nil {
		return nil, err
	}

	now := s.opt.now()
	document := &model.Document{
		UUID:               documentUUID,
		OwnerUUID:          input.Version.Uploader.UUID,
		FileName:           input.FileName,
		Version:            model.InitialTag,
		CurrentVersionUUID: versionUUID,
		IsConfidential:     input.IsConfidential,
		Metadata:           input.Metadata,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	record := newRecord(documentUUID, versionUUID, model.InitialTag, model.NullVersionTag{}, content, input.Version, now)

	err = func() error {
		exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
		if err != nil {
			return err
		}
		defer rollback()

		if err := s.documentRepository.CreateDocument(ctx, exec, document); err != nil {
			return err
		}
		if err := s.documentRepository.InsertVersion(ctx, exec, record); err != nil {
			return err
		}
		if err := s.documentRepository.SetCurrentVersion(ctx, exec, documentUUID, record, now); err != nil {
			return err
		}
		return commit()
	}()
	if err != nil {
		s.compensate(uploaded, content.ref)
		return nil, collaboratorError("[VersionService] не удалось создать документ", err)
	}

	metrics.VersionsAppended.WithLabelValues("initial").Inc()
	util.Component("VersionService").Info().
		Str("document", documentUUID).
		Str("file", document.FileName).
		Msg("документ создан")

	return document, nil
}

// GetDocument : "голова" документа, сначала из кэша Redis
func (s *VersionService) GetDocument(ctx context.Context, documentUUID string) (*model.Document, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	log := util.Component("VersionService")
	now := s.opt.now()

	document, err := s.cacheRepository.GetDocument(ctx, documentUUID)
	if err != nil {
		log.Warn().Err(err).Msg("ошибка чтения кэша")
	}
	if document != nil {
		if document.ActiveShare != nil && !document.ActiveShare.Active(now) {
			document.ActiveShare = nil
		}
		log.Debug().Str("document", documentUUID).Msg("документ взят из кэша Redis")
		return document, nil
	}

	exec := s.documentRepository.Executor()
	document, err = s.documentRepository.GetDocument(ctx, exec, documentUUID)
	if err != nil {
		return nil, collaboratorError("[VersionService] не удалось получить документ", err)
	}

	share, err := s.shareRepository.GetActive(ctx, exec, documentUUID, now)
	if err != nil {
		return nil, collaboratorError("[VersionService] не удалось получить активную ссылку", err)
	}
	if share != nil {
		share.URL = shareURL(s.opt.ShareBaseURL, share.Token)
	}
	document.ActiveShare = share

	if err := s.cacheRepository.SetDocument(ctx, document); err != nil {
		log.Warn().Err(err).Msg("ошибка кэширования документа")
	}
	return document, nil
}

// AppendVersion : новая версия становится текущей, предыдущая остаётся в истории
func (s *VersionService) AppendVersion(ctx context.Context, documentUUID string, input model.NewVersion) (*model.VersionRecord, error) {
	if !input.Bump.Valid() {
		return nil, fmt.Errorf("[VersionService] %w: %q", model.ErrInvalidBumpKind, input.Bump)
	}

	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	versionUUID := uuid.NewString()
	content, uploaded, err := s.storeContent(ctx, documentUUID, versionUUID, input)
	if err != nil {
		return nil, err
	}

	var record *model.VersionRecord
	for attempt := 1; ; attempt++ {
		record, err = s.appendOnce(ctx, documentUUID, versionUUID, content, input)
		if !errors.Is(err, model.ErrVersionConflict) || attempt >= s.opt.AppendRetries {
			break
		}
		metrics.AppendConflicts.Inc()
		util.Component("VersionService").Warn().
			Str("document", documentUUID).
			Int("attempt", attempt).
			Msg("конфликт тега версии, повторяем")
	}
	if err != nil {
		s.compensate(uploaded, content.ref)
		return nil, collaboratorError("[VersionService] не удалось добавить версию", err)
	}

	s.invalidate(ctx, documentUUID)
	metrics.VersionsAppended.WithLabelValues(string(input.Bump)).Inc()
	util.Component("VersionService").Info().
		Str("document", documentUUID).
		Str("version", record.Tag.String()).
		Msg("версия добавлена")

	return record, nil
}

func (s *VersionService) appendOnce(ctx context.Context, documentUUID, versionUUID string, content storedContent, input model.NewVersion) (*model.VersionRecord, error) {
	exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	document, err := s.documentRepository.LockDocument(ctx, exec, documentUUID)
	if err != nil {
		return nil, err
	}
	latest, err := s.documentRepository.LatestTag(ctx, exec, documentUUID)
	if err != nil {
		return nil, err
	}
	tag, err := versioning.NextAfter(document.Version, latest, input.Bump)
	if err != nil {
		return nil, err
	}

	now := s.opt.now()
	parent := model.NullVersionTag{Tag: document.Version, Valid: true}
	record := newRecord(documentUUID, versionUUID, tag, parent, content, input, now)

	if err := s.documentRepository.InsertVersion(ctx, exec, record); err != nil {
		return nil, err
	}
	if err := s.documentRepository.SetCurrentVersion(ctx, exec, documentUUID, record, now); err != nil {
		return nil, err
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *VersionService) GetVersion(ctx context.Context, documentUUID, versionUUID string) (*model.VersionRecord, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	version, err := s.documentRepository.GetVersion(ctx, s.documentRepository.Executor(), documentUUID, versionUUID)
	if err != nil {
		return nil, collaboratorError("[VersionService] не удалось получить версию", err)
	}
	return version, nil
}

// ListVersions : вся история от старых к новым, текущая версия включена
func (s *VersionService) ListVersions(ctx context.Context, documentUUID string) ([]model.VersionRecord, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	return s.history(ctx, documentUUID)
}

func (s *VersionService) history(ctx context.Context, documentUUID string) ([]model.VersionRecord, error) {
	exec := s.documentRepository.Executor()
	versions, err := s.documentRepository.ListVersions(ctx, exec, documentUUID)
	if err != nil {
		return nil, collaboratorError("[VersionService] не удалось получить историю", err)
	}
	if len(versions) == 0 {
		// у существующего документа всегда есть текущая версия
		if _, err := s.documentRepository.GetDocument(ctx, exec, documentUUID); err != nil {
			return nil, collaboratorError("[VersionService] не удалось получить документ", err)
		}
	}
	return versions, nil
}

// DeleteVersion : удаляет нетекущую версию, содержимое удаляется из хранилища после коммита
func (s *VersionService) DeleteVersion(ctx context.Context, documentUUID, versionUUID string) error {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	ref, err := func() (string, error) {
		exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
		if err != nil {
			return "", err
		}
		defer rollback()

		document, err := s.documentRepository.LockDocument(ctx, exec, documentUUID)
		if err != nil {
			return "", err
		}
		if document.CurrentVersionUUID == versionUUID {
			return "", model.ErrCannotDeleteCurrentVersion
		}

		ref, err := s.documentRepository.DeleteVersion(ctx, exec, documentUUID, versionUUID)
		if err != nil {
			return "", err
		}
		return ref, commit()
	}()
	if err != nil {
		return collaboratorError("[VersionService] не удалось удалить версию", err)
	}

	if ref != "" {
		if err := s.storage.DeleteBytes(ctx, ref); err != nil {
			util.Component("VersionService").Warn().Err(err).Str("ref", ref).Msg("содержимое версии не удалено из хранилища")
		}
	}

	metrics.Deletions.Inc()
	util.Component("VersionService").Info().
		Str("document", documentUUID).
		Str("version", versionUUID).
		Msg("версия удалена")
	return nil
}

// Compare : сравнение from -> to, содержимое загружается только для текстовых типов
func (s *VersionService) Compare(ctx context.Context, documentUUID, fromUUID, toUUID string) (*model.DiffResult, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	exec := s.documentRepository.Executor()
	from, err := s.documentRepository.GetVersion(ctx, exec, documentUUID, fromUUID)
	if err != nil {
		return nil, collaboratorError("[VersionService] не удалось получить исходную версию", err)
	}
	to, err := s.documentRepository.GetVersion(ctx, exec, documentUUID, toUUID)
	if err != nil {
		return nil, collaboratorError("[VersionService] не удалось получить целевую версию", err)
	}

	var contentFrom, contentTo []byte
	if s.engine.NeedsContent(*from, *to) {
		if contentFrom, err = s.storage.GetBytes(ctx, from.StorageRef); err != nil {
			return nil, collaboratorError("[VersionService] не удалось загрузить содержимое", err)
		}
		if contentTo, err = s.storage.GetBytes(ctx, to.StorageRef); err != nil {
			return nil, collaboratorError("[VersionService] не удалось загрузить содержимое", err)
		}
	}

	start := time.Now()
	result := s.engine.Compare(*from, *to, contentFrom, contentTo)
	metrics.DiffDuration.Observe(time.Since(start).Seconds())
	metrics.Comparisons.WithLabelValues(string(result.ContentStatus)).Inc()

	return &result, nil
}

func (s *VersionService) Statistics(ctx context.Context, documentUUID string) (*model.Statistics, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	versions, err := s.history(ctx, documentUUID)
	if err != nil {
		return nil, err
	}
	stats := statistics.Summarize(versions)
	return &stats, nil
}

// DownloadURL : pre-signed GET URL на содержимое версии
func (s *VersionService) DownloadURL(ctx context.Context, documentUUID, versionUUID string) (string, error) {
	version, err := s.GetVersion(ctx, documentUUID, versionUUID)
	if err != nil {
		return "", err
	}
	return s.presign(ctx, version.StorageRef)
}

func (s *VersionService) presign(ctx context.Context, ref string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	url, err := s.storage.GeneratePresignedGetURL(ctx, ref, s.opt.PresignTTL)
	if err != nil {
		return "", collaboratorError("[VersionService] не удалось сгенерировать pre-signed GET URL", err)
	}
	return url, nil
}

type storedContent struct {
	ref    string
	size   int64
	sha256 string
}

// storeContent : сохраняет байты в хранилище либо принимает уже сохранённую ссылку.
// uploaded сообщает, что объект создан здесь и его нужно удалить при откате
func (s *VersionService) storeContent(ctx context.Context, documentUUID, versionUUID string, input model.NewVersion) (storedContent, bool, error) {
	if input.Content == nil {
		if input.StorageRef == "" {
			return storedContent{}, false, fmt.Errorf("[VersionService] %w", model.ErrEmptyContent)
		}
		return storedContent{ref: input.StorageRef, size: input.SizeBytes, sha256: input.Sha256}, false, nil
	}

	sum := sha256.Sum256(input.Content)
	key := fmt.Sprintf("documents/%s/%s", documentUUID, versionUUID)

	ref, err := s.storage.PutBytes(ctx, key, input.Content, contentTypeOf(input))
	if err != nil {
		return storedContent{}, false, collaboratorError("[VersionService] не удалось сохранить содержимое", err)
	}
	return storedContent{ref: ref, size: int64(len(input.Content)), sha256: hex.EncodeToString(sum[:])}, true, nil
}

// compensate : удаляет объект, если транзакция не прошла
func (s *VersionService) compensate(uploaded bool, ref string) {
	if !uploaded {
		return
	}
	ctx, cancel := withTimeout(context.Background(), s.opt.Timeout)
	defer cancel()

	if err := s.storage.DeleteBytes(ctx, ref); err != nil {
		util.Component("VersionService").Warn().Err(err).Str("ref", ref).Msg("не удалось удалить осиротевший объект")
	}
}

func (s *VersionService) invalidate(ctx context.Context, documentUUID string) {
	if err := s.cacheRepository.DeleteDocument(ctx, documentUUID); err != nil {
		util.Component("VersionService").Warn().Err(err).Str("document", documentUUID).Msg("ошибка инвалидации кэша")
	}
}

func newRecord(documentUUID, versionUUID string, tag model.VersionTag, parent model.NullVersionTag, content storedContent, input model.NewVersion, now time.Time) *model.VersionRecord {
	return &model.VersionRecord{
		UUID:         versionUUID,
		DocumentUUID: documentUUID,
		Tag:          tag,
		ParentTag:    parent,
		SizeBytes:    content.size,
		ContentType:  contentTypeOf(input),
		Sha256:       content.sha256,
		StorageRef:   content.ref,
		UploaderUUID: input.Uploader.UUID,
		UploaderName: input.Uploader.Name,
		ChangeNote:   input.ChangeNote,
		CreatedAt:    now,
	}
}

func contentTypeOf(input model.NewVersion) string {
	if input.ContentType == "" {
		return defaultContentType
	}
	return input.ContentType
}
