package requestresponse

import (
	"errors"
	"fmt"
	"time"

	"document-versioning-server/internal/model"
)

// ErrorResponse : тело ответа с ошибкой, формирует util.HandleError
type ErrorResponse struct {
	Error   string `json:"error" example:"Not Found"`
	Message string `json:"message" example:"версия не найдена"`
	Code    int    `json:"code" example:"404"`
}

// DocumentResponse : "голова" документа
type DocumentResponse struct {
	Data *model.Document `json:"data"`
}

// VersionResponse : одна версия и ссылка на скачивание
type VersionResponse struct {
	Data        *model.VersionRecord `json:"data"`
	DownloadURL string               `json:"download_url,omitempty" example:"https://s3.example.com/bucket/documents/..."`
	ExpiresIn   string               `json:"expires_in,omitempty" example:"15m0s"`
}

// VersionListResponse : история от старых к новым
type VersionListResponse struct {
	Data  []model.VersionRecord `json:"data"`
	Count int                   `json:"count" example:"3"`
}

// CompareResponse : результат сравнения двух версий
type CompareResponse struct {
	Data                  *model.DiffResult `json:"data"`
	TimeDifferenceSeconds float64           `json:"time_difference_seconds" example:"7200"`
}

func CompareResponseFromModel(result *model.DiffResult) CompareResponse {
	return CompareResponse{Data: result, TimeDifferenceSeconds: result.TimeDifference.Seconds()}
}

type StatisticsResponse struct {
	Data *model.Statistics `json:"data"`
}

// ShareRequest : срок действия ссылки, либо ttl в формате Go duration, либо число дней
type ShareRequest struct {
	TTL           string `json:"ttl,omitempty" example:"24h"`
	ExpiresInDays int    `json:"expires_in_days,omitempty" example:"7"`
}

// MaxExpiresInDays : верхняя граница expires_in_days, проверяется до перевода в time.Duration
const MaxExpiresInDays = 365

var errAmbiguousTTL = errors.New("нужно указать только одно из полей ttl и expires_in_days")

// Duration : пустой запрос означает срок по умолчанию
func (r ShareRequest) Duration(defaultTTL time.Duration) (time.Duration, error) {
	switch {
	case r.TTL != "" && r.ExpiresInDays != 0:
		return 0, errAmbiguousTTL
	case r.TTL != "":
		ttl, err := time.ParseDuration(r.TTL)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", model.ErrInvalidTTL, err)
		}
		return ttl, nil
	case r.ExpiresInDays != 0:
		if r.ExpiresInDays < 1 || r.ExpiresInDays > MaxExpiresInDays {
			return 0, fmt.Errorf("%w: expires_in_days должен быть от 1 до %d", model.ErrInvalidTTL, MaxExpiresInDays)
		}
		return time.Duration(r.ExpiresInDays) * 24 * time.Hour, nil
	}
	return defaultTTL, nil
}

type ShareResponse struct {
	Data *model.ShareToken `json:"data"`
}

type SharedDocumentResponse struct {
	Data *model.SharedDocument `json:"data"`
}
