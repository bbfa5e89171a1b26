package model

import (
	"errors"
	"fmt"
)

// ErrorKind : класс ошибки, по нему вызывающая сторона решает, есть ли смысл повторять запрос
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindInvalidState
	KindMalformed
	KindCollaborator
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindMalformed:
		return "malformed"
	case KindCollaborator:
		return "collaborator_failure"
	}
	return "unknown"
}

var (
	ErrDocumentNotFound = errors.New("документ не найден")
	ErrVersionNotFound  = errors.New("версия не найдена")
	ErrTokenNotFound    = errors.New("токен не найден")

	ErrCannotDeleteCurrentVersion  = errors.New("нельзя удалить текущую версию")
	ErrCannotRestoreCurrentVersion = errors.New("версия уже является текущей")
	ErrTokenExpired                = errors.New("срок действия токена истёк")
	ErrTokenRevoked                = errors.New("токен отозван")
	ErrTokenNotYetValid            = errors.New("токен ещё не действует")

	ErrInvalidVersionTag = errors.New("некорректный тег версии")
	ErrInvalidBumpKind   = errors.New("некорректный тип увеличения версии")
	ErrInvalidTTL        = errors.New("некорректный срок действия ссылки")
	ErrEmptyContent      = errors.New("пустое содержимое версии")

	// ErrVersionConflict : параллельная запись заняла тот же тег. Сервис повторяет добавление сам,
	// наружу ошибка уходит только когда попытки исчерпаны, запрос можно повторить
	ErrVersionConflict = errors.New("конфликт тега версии, повторите запрос")

	ErrCollaboratorFailure = errors.New("ошибка внешнего хранилища")
	ErrCollaboratorTimeout = fmt.Errorf("%w: превышено время ожидания", ErrCollaboratorFailure)
)

// KindOf : определяет класс ошибки по цепочке обёрток
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrDocumentNotFound),
		errors.Is(err, ErrVersionNotFound),
		errors.Is(err, ErrTokenNotFound):
		return KindNotFound
	case errors.Is(err, ErrCannotDeleteCurrentVersion),
		errors.Is(err, ErrCannotRestoreCurrentVersion),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrTokenNotYetValid),
		errors.Is(err, ErrVersionConflict):
		return KindInvalidState
	case errors.Is(err, ErrInvalidVersionTag),
		errors.Is(err, ErrInvalidBumpKind),
		errors.Is(err, ErrInvalidTTL),
		errors.Is(err, ErrEmptyContent):
		return KindMalformed
	case errors.Is(err, ErrCollaboratorFailure):
		return KindCollaborator
	}
	return KindUnknown
}
