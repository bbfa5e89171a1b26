package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"document-versioning-server/internal/model"
	"document-versioning-server/internal/util"
)

// collaboratorError : доменные ошибки проходят как есть, ошибки БД и хранилища
// сводятся к ErrCollaboratorFailure, истёкший дедлайн к ErrCollaboratorTimeout
func collaboratorError(message string, err error) error {
	switch {
	case err == nil:
		return nil
	case model.KindOf(err) != model.KindUnknown:
		return fmt.Errorf("%s: %w", message, err)
	case errors.Is(err, context.DeadlineExceeded):
		return util.LogError(message, fmt.Errorf("%w: %w", model.ErrCollaboratorTimeout, err))
	}
	return util.LogError(message, fmt.Errorf("%w: %w", model.ErrCollaboratorFailure, err))
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
