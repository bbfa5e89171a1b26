// Package diff сравнивает две версии документа.
// Метаданные (размер, время, загрузивший) сравниваются всегда, содержимое построчно
// только для текстовых типов. Построчное сравнение основано на LCS, для отображения
// дополнительно строится unified patch через github.com/pmezard/go-difflib/difflib.
package diff

import (
	"strings"

	"document-versioning-server/internal/model"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options : ограничения на размер входных данных
type Options struct {
	// MaxBytes : суммарный размер двух версий, 0 означает без ограничения
	MaxBytes int

	// MaxCells : размер таблицы LCS после отсечения общего начала и конца
	MaxCells int

	// Context : число строк контекста в unified patch, по умолчанию 3
	Context int
}

const defaultMaxCells = 16_000_000

type Engine struct {
	opt        Options
	classifier *Classifier
}

func NewEngine(opt Options, classifier *Classifier) *Engine {
	if opt.MaxCells <= 0 {
		opt.MaxCells = defaultMaxCells
	}
	if opt.Context <= 0 {
		opt.Context = 3
	}
	if classifier == nil {
		classifier = defaultClassifier
	}
	return &Engine{opt: opt, classifier: classifier}
}

// NeedsContent : содержимое стоит загружать только если обе стороны текстовые
func (e *Engine) NeedsContent(a, b model.VersionRecord) bool {
	return e.classifier.IsTextLike(a.ContentType) && e.classifier.IsTextLike(b.ContentType)
}

// Compare : сравнение a -> b. contentA и contentB учитываются только для текстовых типов
func (e *Engine) Compare(a, b model.VersionRecord, contentA, contentB []byte) model.DiffResult {
	result := CompareMetadata(a, b)

	if !e.NeedsContent(a, b) {
		result.ContentStatus = model.ContentDiffUnavailable
		return result
	}
	if e.opt.MaxBytes > 0 && len(contentA)+len(contentB) > e.opt.MaxBytes {
		result.ContentStatus = model.ContentDiffTooLarge
		return result
	}

	linesA := splitLines(string(contentA))
	linesB := splitLines(string(contentB))

	lines, ok := lineDiff(linesA, linesB, e.opt.MaxCells)
	if !ok {
		result.ContentStatus = model.ContentDiffTooLarge
		return result
	}

	result.ContentStatus = model.ContentDiffAvailable
	result.Lines = lines
	for _, line := range lines {
		switch line.Op {
		case model.LineAdded:
			result.Added++
		case model.LineRemoved:
			result.Removed++
		}
	}
	if result.Added+result.Removed > 0 {
		result.Unified = e.unified(a, b, contentA, contentB)
	}
	return result
}

// CompareMetadata : размер, время и загрузивший, считается для любых типов
func CompareMetadata(a, b model.VersionRecord) model.DiffResult {
	sizeDifference := b.SizeBytes - a.SizeBytes

	var percentage float64
	if a.SizeBytes != 0 {
		percentage = float64(sizeDifference) / float64(a.SizeBytes) * 100
	}

	elapsed := b.CreatedAt.Sub(a.CreatedAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}

	return model.DiffResult{
		FromVersionUUID:      a.UUID,
		ToVersionUUID:        b.UUID,
		FromTag:              a.Tag,
		ToTag:                b.Tag,
		SizeDifference:       sizeDifference,
		PercentageSizeChange: percentage,
		TimeDifference:       elapsed,
		NewerVersionUUID:     newer(a, b).UUID,
		UploaderChanged:      a.UploaderUUID != b.UploaderUUID,
	}
}

// newer : при равном времени создания решает тег, затем UUID, чтобы ответ не зависел от порядка аргументов
func newer(a, b model.VersionRecord) model.VersionRecord {
	switch {
	case a.CreatedAt.After(b.CreatedAt):
		return a
	case b.CreatedAt.After(a.CreatedAt):
		return b
	}
	if c := a.Tag.Compare(b.Tag); c != 0 {
		if c > 0 {
			return a
		}
		return b
	}
	if a.UUID > b.UUID {
		return a
	}
	return b
}

func (e *Engine) unified(a, b model.VersionRecord, contentA, contentB []byte) string {
	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(contentA)),
		B:        difflib.SplitLines(string(contentB)),
		FromFile: "v" + a.Tag.String(),
		ToFile:   "v" + b.Tag.String(),
		Context:  e.opt.Context,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return s
}

// splitLines : строки без перевода строки, завершающий "\n" не даёт пустой строки
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
