package model

import "time"

// ContentDiffStatus : доступность построчного сравнения, не является ошибкой
type ContentDiffStatus string

const (
	ContentDiffAvailable   ContentDiffStatus = "available"
	ContentDiffUnavailable ContentDiffStatus = "unavailable"
	ContentDiffTooLarge    ContentDiffStatus = "too_large"
)

type LineOp string

const (
	LineAdded     LineOp = "added"
	LineRemoved   LineOp = "removed"
	LineUnchanged LineOp = "unchanged"
)

// DiffLine : строка результата сравнения. OldLine/NewLine нумеруются с 1, 0 означает отсутствие строки
type DiffLine struct {
	Op      LineOp `json:"op"`
	Text    string `json:"text"`
	OldLine int    `json:"old_line,omitempty"`
	NewLine int    `json:"new_line,omitempty"`
}

// Prefix : "+", "-" или " " как в unified diff
func (l DiffLine) Prefix() string {
	switch l.Op {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	}
	return " "
}

type DiffResult struct {
	FromVersionUUID      string            `json:"from_version_uuid"`
	ToVersionUUID        string            `json:"to_version_uuid"`
	FromTag              VersionTag        `json:"from_version"`
	ToTag                VersionTag        `json:"to_version"`
	SizeDifference       int64             `json:"size_difference"`
	PercentageSizeChange float64           `json:"percentage_size_change"`
	TimeDifference       time.Duration     `json:"time_difference"`
	NewerVersionUUID     string            `json:"newer_version_uuid"`
	UploaderChanged      bool              `json:"uploader_changed"`
	ContentStatus        ContentDiffStatus `json:"content_status"`
	Lines                []DiffLine        `json:"lines,omitempty"`
	Added                int               `json:"added"`
	Removed              int               `json:"removed"`
	Unified              string            `json:"unified,omitempty"`
}

// ContentAvailable : перед отображением построчного сравнения нужно проверить доступность
func (r *DiffResult) ContentAvailable() bool {
	return r.ContentStatus == ContentDiffAvailable
}
