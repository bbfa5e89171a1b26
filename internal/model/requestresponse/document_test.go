package requestresponse_test

import (
	"math"
	"testing"
	"time"

	"document-versioning-server/internal/model"
	requestresponse "document-versioning-server/internal/model/requestresponse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareRequest_Duration(t *testing.T) {
	defaultTTL := 7 * 24 * time.Hour

	ttl, err := requestresponse.ShareRequest{}.Duration(defaultTTL)
	require.NoError(t, err)
	assert.Equal(t, defaultTTL, ttl)

	ttl, err = requestresponse.ShareRequest{TTL: "36h"}.Duration(defaultTTL)
	require.NoError(t, err)
	assert.Equal(t, 36*time.Hour, ttl)

	ttl, err = requestresponse.ShareRequest{ExpiresInDays: requestresponse.MaxExpiresInDays}.Duration(defaultTTL)
	require.NoError(t, err)
	assert.Equal(t, 365*24*time.Hour, ttl)

	_, err = requestresponse.ShareRequest{TTL: "24h", ExpiresInDays: 1}.Duration(defaultTTL)
	assert.Error(t, err)

	_, err = requestresponse.ShareRequest{TTL: "завтра"}.Duration(defaultTTL)
	assert.ErrorIs(t, err, model.ErrInvalidTTL)
}

func TestShareRequest_DurationRejectsOutOfRangeDays(t *testing.T) {
	for _, days := range []int{-1, 366, 106752, math.MaxInt} {
		_, err := requestresponse.ShareRequest{ExpiresInDays: days}.Duration(time.Hour)
		assert.ErrorIs(t, err, model.ErrInvalidTTL, days)
		assert.Equal(t, model.KindMalformed, model.KindOf(err))
	}
}
