package model

import "time"

type Statistics struct {
	Count                    int               `json:"count"`
	TotalSize                int64             `json:"total_size"`
	AverageSize              float64           `json:"average_size"`
	MostFrequentUploader     string            `json:"most_frequent_uploader,omitempty"`
	MostFrequentUploaderName string            `json:"most_frequent_uploader_name,omitempty"`
	ByContentType            []ContentTypeStat `json:"by_content_type"`
	FirstUploadedAt          *time.Time        `json:"first_uploaded_at,omitempty"`
	LastUploadedAt           *time.Time        `json:"last_uploaded_at,omitempty"`
}

type ContentTypeStat struct {
	ContentType string `json:"content_type"`
	Count       int    `json:"count"`
	TotalSize   int64  `json:"total_size"`
}
