package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	requestresponse "document-versioning-server/internal/model/requestresponse"
	"document-versioning-server/internal/ports"
	"document-versioning-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type ShareHandler struct {
	shares     ports.ShareService
	defaultTTL time.Duration
}

func NewShareHandler(shares ports.ShareService, defaultTTL time.Duration) *ShareHandler {
	return &ShareHandler{shares: shares, defaultTTL: defaultTTL}
}

// IssueShare godoc
// @Summary Публичная ссылка на документ
// @Description Отзывает предыдущую ссылку и выдаёт новую. Пустое тело означает срок по умолчанию.
// @Tags Share
// @Accept json
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param request body requestresponse.ShareRequest false "Срок действия"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.ShareResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный срок действия"
// @Failure 404 {object} requestresponse.ErrorResponse "Документ не найден"
// @Router /api/docs/{doc_id}/share [post]
func (h *ShareHandler) IssueShare(w http.ResponseWriter, r *http.Request) {
	var request requestresponse.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	ttl, err := request.Duration(h.defaultTTL)
	if err != nil {
		util.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.shares.Issue(r.Context(), chi.URLParam(r, "doc_id"), ttl)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, requestresponse.ShareResponse{Data: token})
}

// RevokeShare godoc
// @Summary Отзыв публичной ссылки
// @Description Повторный отзыв не является ошибкой.
// @Tags Share
// @Param doc_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204
// @Failure 404 {object} requestresponse.ErrorResponse "Документ не найден"
// @Router /api/docs/{doc_id}/share [delete]
func (h *ShareHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	if err := h.shares.Revoke(r.Context(), chi.URLParam(r, "doc_id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSharedDocument godoc
// @Summary Документ по публичной ссылке
// @Description Без авторизации, возвращает текущую версию и pre-signed URL на скачивание.
// @Tags Share
// @Produce json
// @Param token path string true "Токен ссылки"
// @Success 200 {object} requestresponse.SharedDocumentResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Ссылка не найдена"
// @Failure 410 {object} requestresponse.ErrorResponse "Ссылка истекла или отозвана"
// @Failure 429 {object} requestresponse.ErrorResponse "Слишком много запросов"
// @Router /public/share/{token} [get]
func (h *ShareHandler) GetSharedDocument(w http.ResponseWriter, r *http.Request) {
	shared, err := h.shares.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SharedDocumentResponse{Data: shared})
}
