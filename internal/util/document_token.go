package util

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
)

const maxTokenAttempts = 8

var ErrTokenSpaceExhausted = errors.New("не удалось сгенерировать уникальный токен")

// generateRandomToken : генерирует случайный токен длиной length символов
func generateRandomToken(length int) (string, error) {
	byteLength := (length + 1) / 2 // т.к. hex кодирует 1 байт = 2 символа
	bytes := make([]byte, byteLength)

	_, err := rand.Read(bytes)
	if err != nil {
		return "", LogError("[util] ошибка генерации токена", err)
	}

	return hex.EncodeToString(bytes)[:length], nil
}

// GenerateUniqueToken : exists проверяет, занят ли токен в хранилище
func GenerateUniqueToken(ctx context.Context, length int, exists func(ctx context.Context, token string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := generateRandomToken(length)
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, token)
		if err != nil {
			return "", LogError("[util] ошибка проверки токена", err)
		}

		if taken == false {
			return token, nil
		}
	}
	return "", ErrTokenSpaceExhausted
}
