// Package versioning вычисляет следующий тег версии документа.
// Схема не зависит от системного времени: major/minor/patch и лексикографический порядок.
package versioning

import (
	"fmt"
	"strings"

	"document-versioning-server/internal/model"
)

// Next : следующий тег для текущего тега и вида увеличения
func Next(current model.VersionTag, bump model.BumpKind) (model.VersionTag, error) {
	if !current.Valid() {
		return model.VersionTag{}, fmt.Errorf("%w: %s", model.ErrInvalidVersionTag, current)
	}

	switch bump {
	case model.BumpMajor:
		return model.VersionTag{Major: current.Major + 1}, nil
	case model.BumpMinor:
		return model.VersionTag{Major: current.Major, Minor: current.Minor + 1}, nil
	case model.BumpPatch:
		return model.VersionTag{Major: current.Major, Minor: current.Minor, Patch: current.Patch + 1}, nil
	}
	return model.VersionTag{}, fmt.Errorf("%w: %q", model.ErrInvalidBumpKind, bump)
}

// NextAfter : как Next, но результат всегда строго больше latest.
// После восстановления старой версии текущий тег может быть меньше последнего в истории,
// тогда увеличение применяется к последнему тегу, чтобы теги в истории не повторялись.
func NextAfter(current, latest model.VersionTag, bump model.BumpKind) (model.VersionTag, error) {
	next, err := Next(current, bump)
	if err != nil {
		return model.VersionTag{}, err
	}
	if !latest.Valid() || latest.Less(next) {
		return next, nil
	}
	return Next(latest, bump)
}

// ParseBump : принимает только major, minor или patch
func ParseBump(s string) (model.BumpKind, error) {
	bump := model.BumpKind(strings.ToLower(strings.TrimSpace(s)))
	if !bump.Valid() {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidBumpKind, s)
	}
	return bump, nil
}
