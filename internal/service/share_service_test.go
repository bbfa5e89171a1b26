package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"document-versioning-server/internal/model"
	"document-versioning-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type shareFixture struct {
	svc     *service.ShareService
	docs    *MockDocumentRepository
	shares  *MockShareRepository
	cache   *MockCacheRepository
	storage *MockBlobStorage
	tx      *txCounter
	now     time.Time
}

func newShareFixture() *shareFixture {
	f := &shareFixture{
		docs:    new(MockDocumentRepository),
		shares:  new(MockShareRepository),
		cache:   new(MockCacheRepository),
		storage: new(MockBlobStorage),
		tx:      &txCounter{},
		now:     fixedNow,
	}
	f.tx.expect(f.docs)
	f.docs.On("Executor").Return(&fakeTx{})
	f.svc = service.NewShareService(f.docs, f.shares, f.cache, f.storage, service.Options{
		Timeout:      time.Second,
		PresignTTL:   15 * time.Minute,
		ShareBaseURL: "https://docs.example.com",
		Now:          func() time.Time { return f.now },
	})
	return f
}

func (f *shareFixture) expectIssue(documentUUID string) {
	f.docs.On("LockDocument", mock.Anything, mock.Anything, documentUUID).Return(&model.Document{UUID: documentUUID}, nil)
	f.shares.On("RevokeActive", mock.Anything, mock.Anything, documentUUID, mock.Anything).Return(int64(0), nil)
	f.shares.On("Exists", mock.Anything, mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	f.shares.On("Insert", mock.Anything, mock.Anything, mock.AnythingOfType("*model.ShareToken")).Return(nil)
	f.cache.On("DeleteDocument", mock.Anything, documentUUID).Return(nil)
}

func TestIssue_InvalidTTL(t *testing.T) {
	f := newShareFixture()

	for _, ttl := range []time.Duration{0, -time.Hour, 366 * 24 * time.Hour} {
		_, err := f.svc.Issue(context.Background(), "doc-1", ttl)
		assert.ErrorIs(t, err, model.ErrInvalidTTL, ttl)
		assert.Equal(t, model.KindMalformed, model.KindOf(err))
	}
	f.docs.AssertNotCalled(t, "BeginTX", mock.Anything)
}

func TestIssue_Success(t *testing.T) {
	f := newShareFixture()
	f.expectIssue("doc-1")

	token, err := f.svc.Issue(context.Background(), "doc-1", 24*time.Hour)

	require.NoError(t, err)
	assert.Len(t, token.Token, 32)
	assert.Equal(t, fixedNow, token.IssuedAt)
	assert.Equal(t, fixedNow.Add(24*time.Hour), token.ExpiresAt)
	assert.Equal(t, "https://docs.example.com/public/share/"+token.Token, token.URL)
	assert.Equal(t, 1, f.tx.commits)
	f.shares.AssertCalled(t, "RevokeActive", mock.Anything, mock.Anything, "doc-1", fixedNow)
	f.cache.AssertExpectations(t)
}

func TestIssue_UnknownDocument(t *testing.T) {
	f := newShareFixture()
	f.docs.On("LockDocument", mock.Anything, mock.Anything, "missing").Return(nil, model.ErrDocumentNotFound)

	_, err := f.svc.Issue(context.Background(), "missing", time.Hour)

	assert.ErrorIs(t, err, model.ErrDocumentNotFound)
	f.shares.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidate_Lifecycle(t *testing.T) {
	f := newShareFixture()
	share := &model.ShareToken{Token: "tok", DocumentUUID: "doc-1", IssuedAt: fixedNow, ExpiresAt: fixedNow.Add(24 * time.Hour)}
	f.shares.On("GetByToken", mock.Anything, mock.Anything, "tok").Return(share, nil)
	f.shares.On("GetByToken", mock.Anything, mock.Anything, "unknown").Return(nil, model.ErrTokenNotFound)

	documentUUID, err := f.svc.Validate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", documentUUID)

	f.now = fixedNow.Add(-time.Minute)
	_, err = f.svc.Validate(context.Background(), "tok")
	assert.ErrorIs(t, err, model.ErrTokenNotYetValid)

	f.now = fixedNow.Add(24 * time.Hour)
	_, err = f.svc.Validate(context.Background(), "tok")
	assert.ErrorIs(t, err, model.ErrTokenExpired)

	f.now = fixedNow.Add(25 * time.Hour)
	_, err = f.svc.Validate(context.Background(), "tok")
	assert.ErrorIs(t, err, model.ErrTokenExpired)
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))

	_, err = f.svc.Validate(context.Background(), "unknown")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}

func TestValidate_Revoked(t *testing.T) {
	f := newShareFixture()
	revokedAt := fixedNow.Add(time.Minute)
	f.shares.On("GetByToken", mock.Anything, mock.Anything, "tok").Return(&model.ShareToken{
		Token: "tok", DocumentUUID: "doc-1", IssuedAt: fixedNow, ExpiresAt: fixedNow.Add(time.Hour), RevokedAt: &revokedAt,
	}, nil)

	_, err := f.svc.Validate(context.Background(), "tok")
	assert.ErrorIs(t, err, model.ErrTokenRevoked)
}

func TestRevoke_Idempotent(t *testing.T) {
	f := newShareFixture()
	f.docs.On("LockDocument", mock.Anything, mock.Anything, "doc-1").Return(&model.Document{UUID: "doc-1"}, nil)
	f.shares.On("RevokeActive", mock.Anything, mock.Anything, "doc-1", fixedNow).Return(int64(1), nil).Once()
	f.shares.On("RevokeActive", mock.Anything, mock.Anything, "doc-1", fixedNow).Return(int64(0), nil).Once()
	f.cache.On("DeleteDocument", mock.Anything, "doc-1").Return(nil).Once()

	require.NoError(t, f.svc.Revoke(context.Background(), "doc-1"))
	require.NoError(t, f.svc.Revoke(context.Background(), "doc-1"))

	assert.Equal(t, 2, f.tx.commits)
	f.cache.AssertNumberOfCalls(t, "DeleteDocument", 1)
}

func TestRevoke_UnknownDocument(t *testing.T) {
	f := newShareFixture()
	f.docs.On("LockDocument", mock.Anything, mock.Anything, "missing").Return(nil, model.ErrDocumentNotFound)

	err := f.svc.Revoke(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrDocumentNotFound)
}

func TestResolve(t *testing.T) {
	f := newShareFixture()
	share := &model.ShareToken{Token: "tok", DocumentUUID: "doc-1", IssuedAt: fixedNow, ExpiresAt: fixedNow.Add(10 * time.Minute)}
	head := &model.Document{UUID: "doc-1", CurrentVersionUUID: "ver-2", Version: model.VersionTag{Major: 1, Minor: 1}}
	current := &model.VersionRecord{UUID: "ver-2", StorageRef: "documents/ref-2", Tag: head.Version}

	f.shares.On("GetByToken", mock.Anything, mock.Anything, "tok").Return(share, nil)
	f.docs.On("GetDocument", mock.Anything, mock.Anything, "doc-1").Return(head, nil)
	f.docs.On("GetVersion", mock.Anything, mock.Anything, "doc-1", "ver-2").Return(current, nil)
	// ссылка истекает раньше, чем presigned URL по умолчанию
	f.storage.On("GeneratePresignedGetURL", mock.Anything, "documents/ref-2", 10*time.Minute).Return("https://s3/get", nil)

	shared, err := f.svc.Resolve(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "https://s3/get", shared.DownloadURL)
	assert.Equal(t, current, shared.Version)
	assert.Equal(t, share.ExpiresAt, shared.ExpiresAt)
}

func TestResolve_StorageFailure(t *testing.T) {
	f := newShareFixture()
	f.shares.On("GetByToken", mock.Anything, mock.Anything, "tok").Return(&model.ShareToken{
		Token: "tok", DocumentUUID: "doc-1", IssuedAt: fixedNow, ExpiresAt: fixedNow.Add(time.Hour),
	}, nil)
	f.docs.On("GetDocument", mock.Anything, mock.Anything, "doc-1").Return(&model.Document{UUID: "doc-1", CurrentVersionUUID: "ver-1"}, nil)
	f.docs.On("GetVersion", mock.Anything, mock.Anything, "doc-1", "ver-1").Return(&model.VersionRecord{UUID: "ver-1", StorageRef: "r"}, nil)
	f.storage.On("GeneratePresignedGetURL", mock.Anything, "r", 15*time.Minute).Return("", errors.New("signer failed"))

	_, err := f.svc.Resolve(context.Background(), "tok")
	assert.ErrorIs(t, err, model.ErrCollaboratorFailure)
}
