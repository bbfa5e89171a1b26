package service

import (
	"context"

	"document-versioning-server/internal/metrics"
	"document-versioning-server/internal/model"
	"document-versioning-server/internal/ports"
	"document-versioning-server/internal/util"
)

// RestoreService : делает старую версию текущей без создания новой записи
type RestoreService struct {
	documentRepository ports.DocumentRepository
	cacheRepository    ports.CacheRepository
	opt                Options
}

func NewRestoreService(documentRepository ports.DocumentRepository, cacheRepository ports.CacheRepository, opt Options) *RestoreService {
	return &RestoreService{
		documentRepository: documentRepository,
		cacheRepository:    cacheRepository,
		opt:                opt,
	}
}

// Restore : указатель и тег документа меняются в одной транзакции, тег версии не меняется
func (s *RestoreService) Restore(ctx context.Context, documentUUID, versionUUID string) (*model.Document, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	document, err := func() (*model.Document, error) {
		exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
		if err != nil {
			return nil, err
		}
		defer rollback()

		document, err := s.documentRepository.LockDocument(ctx, exec, documentUUID)
		if err != nil {
			return nil, err
		}
		version, err := s.documentRepository.GetVersion(ctx, exec, documentUUID, versionUUID)
		if err != nil {
			return nil, err
		}
		if document.CurrentVersionUUID == version.UUID {
			return nil, model.ErrCannotRestoreCurrentVersion
		}

		now := s.opt.now()
		if err := s.documentRepository.SetCurrentVersion(ctx, exec, documentUUID, version, now); err != nil {
			return nil, err
		}
		if err := commit(); err != nil {
			return nil, err
		}

		document.CurrentVersionUUID = version.UUID
		document.Version = version.Tag
		document.UpdatedAt = now
		return document, nil
	}()
	if err != nil {
		return nil, collaboratorError("[RestoreService] не удалось восстановить версию", err)
	}

	if err := s.cacheRepository.DeleteDocument(ctx, documentUUID); err != nil {
		util.Component("RestoreService").Warn().Err(err).Str("document", documentUUID).Msg("ошибка инвалидации кэша")
	}

	metrics.Restores.Inc()
	util.Component("RestoreService").Info().
		Str("document", documentUUID).
		Str("version", document.Version.String()).
		Msg("версия восстановлена")

	return document, nil
}
