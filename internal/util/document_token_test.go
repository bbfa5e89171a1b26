package util

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueToken(t *testing.T) {
	calls := 0
	token, err := GenerateUniqueToken(context.Background(), 32, func(ctx context.Context, token string) (bool, error) {
		calls++
		return calls == 1, nil // первый токен "занят"
	})

	require.NoError(t, err)
	assert.Len(t, token, 32)
	assert.Equal(t, 2, calls)
}

func TestGenerateUniqueToken_Exhausted(t *testing.T) {
	_, err := GenerateUniqueToken(context.Background(), 16, func(ctx context.Context, token string) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, ErrTokenSpaceExhausted)
}

func TestGenerateUniqueToken_LookupError(t *testing.T) {
	boom := errors.New("boom")
	_, err := GenerateUniqueToken(context.Background(), 16, func(ctx context.Context, token string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
