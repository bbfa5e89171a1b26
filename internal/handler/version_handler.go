package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"document-versioning-server/internal/model"
	requestresponse "document-versioning-server/internal/model/requestresponse"
	"document-versioning-server/internal/ports"
	"document-versioning-server/internal/security"
	"document-versioning-server/internal/util"
	"document-versioning-server/internal/versioning"

	"github.com/go-chi/chi/v5"
)

const multipartMemory = 8 << 20

type VersionHandler struct {
	versions       ports.VersionService
	restore        ports.RestoreService
	maxUploadBytes int64
	presignTTL     time.Duration
}

func NewVersionHandler(versions ports.VersionService, restore ports.RestoreService, maxUploadBytes int64, presignTTL time.Duration) *VersionHandler {
	return &VersionHandler{
		versions:       versions,
		restore:        restore,
		maxUploadBytes: maxUploadBytes,
		presignTTL:     presignTTL,
	}
}

// CreateDocument godoc
// @Summary Загрузка нового документа
// @Description Создаёт документ и его первую версию 1.0.0 из файла multipart/form-data.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл документа"
// @Param change_note formData string false "Комментарий к версии"
// @Param confidential formData string false "true, если документ конфиденциальный"
// @Param metadata formData string false "Произвольные метаданные в JSON"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.DocumentResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище недоступно"
// @Router /api/docs [post]
func (h *VersionHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	upload, header, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	confidential := false
	if value := r.FormValue("confidential"); value != "" {
		if confidential, err = strconv.ParseBool(value); err != nil {
			util.HandleError(w, "неверный формат confidential (должно быть true/false)", http.StatusBadRequest)
			return
		}
	}

	var metadata json.RawMessage
	if value := r.FormValue("metadata"); value != "" {
		if !json.Valid([]byte(value)) {
			util.HandleError(w, "metadata должно быть корректным JSON", http.StatusBadRequest)
			return
		}
		metadata = json.RawMessage(value)
	}

	document, err := h.versions.CreateDocument(r.Context(), model.NewDocument{
		FileName:       header.Filename,
		IsConfidential: confidential,
		Metadata:       metadata,
		Version: model.NewVersion{
			Content:     upload,
			ContentType: header.Header.Get("Content-Type"),
			ChangeNote:  r.FormValue("change_note"),
			Uploader:    claims.Uploader(),
		},
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.DocumentResponse{Data: document})
}

// GetDocument godoc
// @Summary Получение документа
// @Description Возвращает текущую версию документа и активную публичную ссылку, если она есть.
// @Tags Documents
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DocumentResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Документ не найден"
// @Router /api/docs/{doc_id} [get]
func (h *VersionHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	document, err := h.versions.GetDocument(r.Context(), chi.URLParam(r, "doc_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.DocumentResponse{Data: document})
}

// GetDocumentHead godoc
// @Summary Проверка документа
// @Description Только заголовки, X-Document-Version содержит тег текущей версии.
// @Tags Documents
// @Param doc_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200
// @Failure 404
// @Router /api/docs/{doc_id} [head]
func (h *VersionHandler) GetDocumentHead(w http.ResponseWriter, r *http.Request) {
	document, err := h.versions.GetDocument(r.Context(), chi.URLParam(r, "doc_id"))
	if err != nil {
		w.WriteHeader(statusFor(err))
		return
	}
	w.Header().Set("X-Document-Version", document.Version.String())
	w.Header().Set("ETag", strconv.Quote(document.CurrentVersionUUID))
	w.WriteHeader(http.StatusOK)
}

// AppendVersion godoc
// @Summary Загрузка новой версии
// @Description Новая версия становится текущей, тег вычисляется из текущего по bump.
// @Tags Versions
// @Accept multipart/form-data
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param file formData file true "Файл новой версии"
// @Param bump formData string true "major, minor или patch"
// @Param change_note formData string false "Комментарий к версии"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.VersionResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный bump или файл"
// @Failure 404 {object} requestresponse.ErrorResponse "Документ не найден"
// @Router /api/docs/{doc_id}/versions [post]
func (h *VersionHandler) AppendVersion(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	upload, header, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	bump, err := versioning.ParseBump(r.FormValue("bump"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	record, err := h.versions.AppendVersion(r.Context(), chi.URLParam(r, "doc_id"), model.NewVersion{
		Content:     upload,
		ContentType: header.Header.Get("Content-Type"),
		Bump:        bump,
		ChangeNote:  r.FormValue("change_note"),
		Uploader:    claims.Uploader(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.VersionResponse{Data: record})
}

// ListVersions godoc
// @Summary История версий
// @Description Все версии документа от старых к новым, текущая включена.
// @Tags Versions
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.VersionListResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Документ не найден"
// @Router /api/docs/{doc_id}/versions [get]
func (h *VersionHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.versions.ListVersions(r.Context(), chi.URLParam(r, "doc_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.VersionListResponse{Data: versions, Count: len(versions)})
}

// GetVersion godoc
// @Summary Получение версии
// @Description Метаданные версии и pre-signed URL на скачивание содержимого.
// @Tags Versions
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param version_id path string true "UUID версии"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.VersionResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Версия не найдена"
// @Router /api/docs/{doc_id}/versions/{version_id} [get]
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	documentUUID, versionUUID := chi.URLParam(r, "doc_id"), chi.URLParam(r, "version_id")

	version, err := h.versions.GetVersion(r.Context(), documentUUID, versionUUID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := requestresponse.VersionResponse{Data: version}
	if url, err := h.versions.DownloadURL(r.Context(), documentUUID, versionUUID); err != nil {
		util.Component("VersionHandler").Warn().Err(err).Msg("ссылка на скачивание недоступна")
	} else {
		response.DownloadURL = url
		response.ExpiresIn = h.presignTTL.String()
	}

	util.WriteJSON(w, http.StatusOK, response)
}

// DeleteVersion godoc
// @Summary Удаление версии
// @Description Безвозвратно удаляет нетекущую версию.
// @Tags Versions
// @Param doc_id path string true "UUID документа"
// @Param version_id path string true "UUID версии"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204
// @Failure 404 {object} requestresponse.ErrorResponse "Версия не найдена"
// @Failure 409 {object} requestresponse.ErrorResponse "Нельзя удалить текущую версию"
// @Router /api/docs/{doc_id}/versions/{version_id} [delete]
func (h *VersionHandler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	if err := h.versions.DeleteVersion(r.Context(), chi.URLParam(r, "doc_id"), chi.URLParam(r, "version_id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestoreVersion godoc
// @Summary Восстановление версии
// @Description Делает выбранную версию текущей, новая запись не создаётся.
// @Tags Versions
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param version_id path string true "UUID версии"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DocumentResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Версия не найдена"
// @Failure 409 {object} requestresponse.ErrorResponse "Версия уже текущая"
// @Router /api/docs/{doc_id}/versions/{version_id}/restore [post]
func (h *VersionHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	document, err := h.restore.Restore(r.Context(), chi.URLParam(r, "doc_id"), chi.URLParam(r, "version_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.DocumentResponse{Data: document})
}

// CompareVersions godoc
// @Summary Сравнение версий
// @Description Разница размера и времени, построчное сравнение для текстовых типов.
// @Tags Versions
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param from query string true "UUID исходной версии"
// @Param to query string true "UUID целевой версии"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CompareResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Не указаны from и to"
// @Failure 404 {object} requestresponse.ErrorResponse "Версия не найдена"
// @Router /api/docs/{doc_id}/compare [get]
func (h *VersionHandler) CompareVersions(w http.ResponseWriter, r *http.Request) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		util.HandleError(w, "нужно указать from и to", http.StatusBadRequest)
		return
	}

	result, err := h.versions.Compare(r.Context(), chi.URLParam(r, "doc_id"), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.CompareResponseFromModel(result))
}

// GetStatistics godoc
// @Summary Статистика по версиям
// @Tags Versions
// @Produce json
// @Param doc_id path string true "UUID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.StatisticsResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Документ не найден"
// @Router /api/docs/{doc_id}/stats [get]
func (h *VersionHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.versions.Statistics(r.Context(), chi.URLParam(r, "doc_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.StatisticsResponse{Data: stats})
}

// readUpload : читает поле file, при ошибке ответ уже записан
func (h *VersionHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, *multipart.FileHeader, bool) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			util.HandleError(w, "файл слишком большой", http.StatusRequestEntityTooLarge)
		} else {
			util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		}
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.HandleError(w, "ошибка чтения файла", http.StatusBadRequest)
		return nil, nil, false
	}
	if data == nil {
		data = []byte{}
	}
	return data, header, true
}
