package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"document-versioning-server/internal/metrics"
	"document-versioning-server/internal/model"
	"document-versioning-server/internal/ports"
	"document-versioning-server/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	defaultTokenSize   = 32
	defaultMaxShareTTL = 365 * 24 * time.Hour
)

// ShareService : публичные ссылки с ограниченным сроком, не больше одной активной на документ
type ShareService struct {
	documentRepository ports.DocumentRepository
	shareRepository    ports.ShareRepository
	cacheRepository    ports.CacheRepository
	storage            ports.BlobStorage
	opt                Options
}

func NewShareService(
	documentRepository ports.DocumentRepository,
	shareRepository ports.ShareRepository,
	cacheRepository ports.CacheRepository,
	storage ports.BlobStorage,
	opt Options,
) *ShareService {
	if opt.TokenSize <= 0 {
		opt.TokenSize = defaultTokenSize
	}
	if opt.MaxShareTTL <= 0 {
		opt.MaxShareTTL = defaultMaxShareTTL
	}
	return &ShareService{
		documentRepository: documentRepository,
		shareRepository:    shareRepository,
		cacheRepository:    cacheRepository,
		storage:            storage,
		opt:                opt,
	}
}

// Issue : отзывает предыдущую ссылку и выдаёт новую на ttl
func (s *ShareService) Issue(ctx context.Context, documentUUID string, ttl time.Duration) (*model.ShareToken, error) {
	if ttl <= 0 || ttl > s.opt.MaxShareTTL {
		return nil, fmt.Errorf("[ShareService] %w: %s", model.ErrInvalidTTL, ttl)
	}

	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	token, err := func() (*model.ShareToken, error) {
		exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
		if err != nil {
			return nil, err
		}
		defer rollback()

		if _, err := s.documentRepository.LockDocument(ctx, exec, documentUUID); err != nil {
			return nil, err
		}

		now := s.opt.now()
		if _, err := s.shareRepository.RevokeActive(ctx, exec, documentUUID, now); err != nil {
			return nil, err
		}

		value, err := util.GenerateUniqueToken(ctx, s.opt.TokenSize, s.exists(exec))
		if err != nil {
			return nil, err
		}

		token := &model.ShareToken{
			Token:        value,
			DocumentUUID: documentUUID,
			IssuedAt:     now,
			ExpiresAt:    now.Add(ttl),
		}
		if err := s.shareRepository.Insert(ctx, exec, token); err != nil {
			return nil, err
		}
		return token, commit()
	}()
	if err != nil {
		return nil, collaboratorError("[ShareService] не удалось выдать ссылку", err)
	}

	token.URL = shareURL(s.opt.ShareBaseURL, token.Token)
	s.invalidate(ctx, documentUUID)

	metrics.SharesIssued.Inc()
	util.Component("ShareService").Info().
		Str("document", documentUUID).
		Time("expires_at", token.ExpiresAt).
		Msg("ссылка выдана")

	return token, nil
}

func (s *ShareService) exists(exec sqlx.ExtContext) func(ctx context.Context, token string) (bool, error) {
	return func(ctx context.Context, token string) (bool, error) {
		return s.shareRepository.Exists(ctx, exec, token)
	}
}

// Validate : возвращает документ, если токен действует на текущий момент
func (s *ShareService) Validate(ctx context.Context, token string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	share, err := s.validate(ctx, token)
	if err != nil {
		return "", err
	}
	return share.DocumentUUID, nil
}

func (s *ShareService) validate(ctx context.Context, token string) (*model.ShareToken, error) {
	share, err := s.shareRepository.GetByToken(ctx, s.documentRepository.Executor(), token)
	if err == nil {
		err = share.Check(s.opt.now())
	}
	metrics.ShareValidations.WithLabelValues(validationResult(err)).Inc()
	if err != nil {
		return nil, collaboratorError("[ShareService] ссылка недействительна", err)
	}
	return share, nil
}

// Revoke : идемпотентно, повторный отзыв не является ошибкой
func (s *ShareService) Revoke(ctx context.Context, documentUUID string) error {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	revoked, err := func() (int64, error) {
		exec, rollback, commit, err := s.documentRepository.BeginTX(ctx)
		if err != nil {
			return 0, err
		}
		defer rollback()

		if _, err := s.documentRepository.LockDocument(ctx, exec, documentUUID); err != nil {
			return 0, err
		}
		revoked, err := s.shareRepository.RevokeActive(ctx, exec, documentUUID, s.opt.now())
		if err != nil {
			return 0, err
		}
		return revoked, commit()
	}()
	if err != nil {
		return collaboratorError("[ShareService] не удалось отозвать ссылку", err)
	}

	if revoked > 0 {
		s.invalidate(ctx, documentUUID)
	}
	util.Component("ShareService").Info().
		Str("document", documentUUID).
		Int64("revoked", revoked).
		Msg("ссылки отозваны")
	return nil
}

// Resolve : текущая версия документа по публичной ссылке вместе с URL на скачивание
func (s *ShareService) Resolve(ctx context.Context, token string) (*model.SharedDocument, error) {
	ctx, cancel := withTimeout(ctx, s.opt.Timeout)
	defer cancel()

	share, err := s.validate(ctx, token)
	if err != nil {
		return nil, err
	}

	exec := s.documentRepository.Executor()
	document, err := s.documentRepository.GetDocument(ctx, exec, share.DocumentUUID)
	if err != nil {
		return nil, collaboratorError("[ShareService] не удалось получить документ", err)
	}
	version, err := s.documentRepository.GetVersion(ctx, exec, document.UUID, document.CurrentVersionUUID)
	if err != nil {
		return nil, collaboratorError("[ShareService] не удалось получить текущую версию", err)
	}

	url, err := s.storage.GeneratePresignedGetURL(ctx, version.StorageRef, s.presignTTL(share))
	if err != nil {
		return nil, collaboratorError("[ShareService] не удалось сгенерировать pre-signed GET URL", err)
	}

	return &model.SharedDocument{
		Document:    document,
		Version:     version,
		DownloadURL: url,
		ExpiresAt:   share.ExpiresAt,
	}, nil
}

// presignTTL : URL на скачивание не переживает саму ссылку
func (s *ShareService) presignTTL(share *model.ShareToken) time.Duration {
	ttl := s.opt.PresignTTL
	if left := share.ExpiresAt.Sub(s.opt.now()); ttl <= 0 || left < ttl {
		ttl = left
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

func (s *ShareService) invalidate(ctx context.Context, documentUUID string) {
	if err := s.cacheRepository.DeleteDocument(ctx, documentUUID); err != nil {
		util.Component("ShareService").Warn().Err(err).Str("document", documentUUID).Msg("ошибка инвалидации кэша")
	}
}

func validationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrTokenNotFound):
		return "not_found"
	case errors.Is(err, model.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, model.ErrTokenExpired):
		return "expired"
	case errors.Is(err, model.ErrTokenNotYetValid):
		return "not_yet_valid"
	}
	return "error"
}

func shareURL(baseURL, token string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/public/share/" + token
}
