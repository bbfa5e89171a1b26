// Package statistics считает сводку по истории версий документа.
package statistics

import "document-versioning-server/internal/model"

// Summarize : количество, объём, средний размер и самый частый загрузивший.
// Что входит в history (с текущей версией или без), решает вызывающая сторона.
// При равенстве побеждает загрузивший, который встретился первым.
func Summarize(history []model.VersionRecord) model.Statistics {
	stats := model.Statistics{ByContentType: []model.ContentTypeStat{}}
	if len(history) == 0 {
		return stats
	}

	uploads := make(map[string]int)
	names := make(map[string]string)
	var order []string
	byType := make(map[string]int)

	first, last := history[0].CreatedAt, history[0].CreatedAt
	for _, record := range history {
		stats.Count++
		stats.TotalSize += record.SizeBytes

		if _, ok := uploads[record.UploaderUUID]; !ok {
			order = append(order, record.UploaderUUID)
			names[record.UploaderUUID] = record.UploaderName
		}
		uploads[record.UploaderUUID]++

		idx, ok := byType[record.ContentType]
		if !ok {
			idx = len(stats.ByContentType)
			byType[record.ContentType] = idx
			stats.ByContentType = append(stats.ByContentType, model.ContentTypeStat{ContentType: record.ContentType})
		}
		stats.ByContentType[idx].Count++
		stats.ByContentType[idx].TotalSize += record.SizeBytes

		if record.CreatedAt.Before(first) {
			first = record.CreatedAt
		}
		if record.CreatedAt.After(last) {
			last = record.CreatedAt
		}
	}

	stats.AverageSize = float64(stats.TotalSize) / float64(stats.Count)
	stats.FirstUploadedAt = &first
	stats.LastUploadedAt = &last

	best := 0
	for _, uploader := range order {
		if uploads[uploader] > best {
			best = uploads[uploader]
			stats.MostFrequentUploader = uploader
			stats.MostFrequentUploaderName = names[uploader]
		}
	}

	return stats
}
