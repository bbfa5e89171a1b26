package diff

import (
	"mime"
	"strings"
	"sync"
)

// Classifier : решает, можно ли сравнивать содержимое построчно
type Classifier struct {
	mu       sync.RWMutex
	types    map[string]struct{}
	prefixes []string
	suffixes []string
}

// NewClassifier : набор текстовых типов по умолчанию
func NewClassifier() *Classifier {
	c := &Classifier{
		types:    make(map[string]struct{}),
		prefixes: []string{"text/"},
		suffixes: []string{"+json", "+xml", "+yaml"},
	}
	for _, t := range []string{
		"application/json",
		"application/ld+json",
		"application/xml",
		"application/xhtml+xml",
		"application/javascript",
		"application/x-javascript",
		"application/ecmascript",
		"application/typescript",
		"application/x-typescript",
		"application/yaml",
		"application/x-yaml",
		"application/toml",
		"application/sql",
		"application/graphql",
		"application/x-sh",
		"application/x-httpd-php",
		"application/rtf",
	} {
		c.types[t] = struct{}{}
	}
	return c
}

// Register : добавляет тип в список текстовых
func (c *Classifier) Register(mediaType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[normalize(mediaType)] = struct{}{}
}

func (c *Classifier) IsTextLike(contentType string) bool {
	mediaType := normalize(contentType)
	if mediaType == "" {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.types[mediaType]; ok {
		return true
	}
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(mediaType, prefix) {
			return true
		}
	}
	for _, suffix := range c.suffixes {
		if strings.HasSuffix(mediaType, suffix) {
			return true
		}
	}
	return false
}

var defaultClassifier = NewClassifier()

// IsTextLike : проверка по классификатору по умолчанию
func IsTextLike(contentType string) bool {
	return defaultClassifier.IsTextLike(contentType)
}

// normalize : отбрасывает параметры вроде charset
func normalize(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
