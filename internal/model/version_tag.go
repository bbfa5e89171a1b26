package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// VersionTag : упорядоченная тройка (major, minor, patch)
type VersionTag struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// InitialTag : версия первой записи документа
var InitialTag = VersionTag{Major: 1, Minor: 0, Patch: 0}

// BumpKind : закрытое перечисление вариантов увеличения версии
type BumpKind string

const (
	BumpMajor BumpKind = "major"
	BumpMinor BumpKind = "minor"
	BumpPatch BumpKind = "patch"
)

func (b BumpKind) Valid() bool {
	switch b {
	case BumpMajor, BumpMinor, BumpPatch:
		return true
	}
	return false
}

// Valid : версии начинаются с 1.0.0, отрицательных компонентов не бывает
func (t VersionTag) Valid() bool {
	return t.Major >= 1 && t.Minor >= 0 && t.Patch >= 0
}

func (t VersionTag) String() string {
	return fmt.Sprintf("%d.%d.%d", t.Major, t.Minor, t.Patch)
}

// Compare : лексикографическое сравнение, возвращает -1, 0 или 1
func (t VersionTag) Compare(other VersionTag) int {
	switch {
	case t.Major != other.Major:
		return sign(t.Major - other.Major)
	case t.Minor != other.Minor:
		return sign(t.Minor - other.Minor)
	default:
		return sign(t.Patch - other.Patch)
	}
}

func (t VersionTag) Less(other VersionTag) bool {
	return t.Compare(other) < 0
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// ParseVersionTag : разбирает строку вида "1.2.3", допускается префикс "v"
func ParseVersionTag(s string) (VersionTag, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return VersionTag{}, fmt.Errorf("%w: %q", ErrInvalidVersionTag, s)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return VersionTag{}, fmt.Errorf("%w: %q", ErrInvalidVersionTag, s)
		}
		nums[i] = n
	}

	tag := VersionTag{Major: nums[0], Minor: nums[1], Patch: nums[2]}
	if !tag.Valid() {
		return VersionTag{}, fmt.Errorf("%w: %q", ErrInvalidVersionTag, s)
	}
	return tag, nil
}

// MarshalText : в JSON и Redis тег хранится строкой "1.2.3"
func (t VersionTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *VersionTag) UnmarshalText(text []byte) error {
	parsed, err := ParseVersionTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value : в БД тег хранится как text
func (t VersionTag) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *VersionTag) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	case nil:
		*t = VersionTag{}
		return nil
	}
	return fmt.Errorf("%w: неподдерживаемый тип %T", ErrInvalidVersionTag, src)
}

// NullVersionTag : тег родительской версии, может отсутствовать
type NullVersionTag struct {
	Tag   VersionTag
	Valid bool
}

func (n NullVersionTag) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Tag.String(), nil
}

func (n *NullVersionTag) Scan(src interface{}) error {
	if src == nil {
		n.Tag, n.Valid = VersionTag{}, false
		return nil
	}
	if err := n.Tag.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n NullVersionTag) MarshalText() ([]byte, error) {
	if !n.Valid {
		return []byte{}, nil
	}
	return n.Tag.MarshalText()
}

func (n *NullVersionTag) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		n.Tag, n.Valid = VersionTag{}, false
		return nil
	}
	if err := n.Tag.UnmarshalText(text); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
