package handler

import (
	"errors"
	"net/http"

	"document-versioning-server/internal/model"
	"document-versioning-server/internal/util"
)

// publicErrors : текст ответа берётся из доменной ошибки, внутренние подробности клиенту не уходят
var publicErrors = []error{
	model.ErrDocumentNotFound,
	model.ErrVersionNotFound,
	model.ErrTokenNotFound,
	model.ErrCannotDeleteCurrentVersion,
	model.ErrCannotRestoreCurrentVersion,
	model.ErrTokenExpired,
	model.ErrTokenRevoked,
	model.ErrTokenNotYetValid,
	model.ErrVersionConflict,
	model.ErrInvalidVersionTag,
	model.ErrInvalidBumpKind,
	model.ErrInvalidTTL,
	model.ErrEmptyContent,
	model.ErrCollaboratorTimeout,
	model.ErrCollaboratorFailure,
}

// statusFor : NotFound 404, InvalidState 409, истёкшая или отозванная ссылка 410,
// Malformed 400, недоступное хранилище 503, таймаут 504
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrTokenExpired), errors.Is(err, model.ErrTokenRevoked):
		return http.StatusGone
	case errors.Is(err, model.ErrCollaboratorTimeout):
		return http.StatusGatewayTimeout
	}

	switch model.KindOf(err) {
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindInvalidState:
		return http.StatusConflict
	case model.KindMalformed:
		return http.StatusBadRequest
	case model.KindCollaborator:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeServiceError(w http.ResponseWriter, err error) {
	message := "внутренняя ошибка сервера"
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			message = known.Error()
			break
		}
	}

	code := statusFor(err)
	if code == http.StatusInternalServerError {
		util.Component("Handler").Error().Err(err).Msg("необработанная ошибка")
	}
	util.HandleError(w, message, code)
}
