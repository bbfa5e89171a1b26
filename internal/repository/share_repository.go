package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"document-versioning-server/config"
	"document-versioning-server/internal/model"
	"document-versioning-server/internal/util"

	"github.com/jmoiron/sqlx"
)

const shareColumns = `token, document_uuid, issued_at, expires_at, revoked_at`

type ShareRepository struct {
	database *config.Database
}

func NewShareRepository(database *config.Database) *ShareRepository {
	return &ShareRepository{database: database}
}

// Insert : сохраняет новый токен, старый к этому моменту должен быть отозван
func (r *ShareRepository) Insert(ctx context.Context, exec sqlx.ExtContext, token *model.ShareToken) error {
	query := `
		INSERT INTO share_tokens (token, document_uuid, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := exec.ExecContext(ctx, query, token.Token, token.DocumentUUID, token.IssuedAt, token.ExpiresAt)
	if err != nil {
		return util.LogError("[ShareRepo] не удалось сохранить токен", err)
	}
	return nil
}

// RevokeActive : отзывает все неотозванные токены документа, включая истёкшие
func (r *ShareRepository) RevokeActive(ctx context.Context, exec sqlx.ExtContext, documentUUID string, at time.Time) (int64, error) {
	result, err := exec.ExecContext(ctx, `
		UPDATE share_tokens SET revoked_at = $2
		WHERE document_uuid = $1 AND revoked_at IS NULL
	`, documentUUID, at)
	if err != nil {
		return 0, util.LogError("[ShareRepo] не удалось отозвать токены", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[ShareRepo] не удалось проверить, отозваны ли токены", err)
	}
	return affected, nil
}

// GetByToken : model.ErrTokenNotFound, если токена нет
func (r *ShareRepository) GetByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.ShareToken, error) {
	query := `SELECT ` + shareColumns + ` FROM share_tokens WHERE token = $1`

	var shareToken model.ShareToken
	err := sqlx.GetContext(ctx, exec, &shareToken, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrTokenNotFound
	}
	if err != nil {
		return nil, util.LogError("[ShareRepo] ошибка получения токена", err)
	}
	return &shareToken, nil
}

// GetActive : действующий токен документа или nil
func (r *ShareRepository) GetActive(ctx context.Context, exec sqlx.ExtContext, documentUUID string, now time.Time) (*model.ShareToken, error) {
	query := `
		SELECT ` + shareColumns + ` FROM share_tokens
		WHERE document_uuid = $1 AND revoked_at IS NULL AND issued_at <= $2 AND expires_at > $2
		LIMIT 1
	`

	var shareToken model.ShareToken
	err := sqlx.GetContext(ctx, exec, &shareToken, query, documentUUID, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[ShareRepo] ошибка получения активного токена", err)
	}
	return &shareToken, nil
}

func (r *ShareRepository) Exists(ctx context.Context, exec sqlx.ExtContext, token string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM share_tokens WHERE token = $1)`
	err := sqlx.GetContext(ctx, exec, &exists, query, token)
	if err != nil {
		return false, util.LogError("[ShareRepo] ошибка проверки токена", err)
	}
	return exists, nil
}
