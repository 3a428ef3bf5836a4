package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) HashSet(ctx context.Context, key, field, value string) error {
	args := m.Called(ctx, key, field, value)
	return args.Error(0)
}

func (m *MockRedisRepository) HashGet(ctx context.Context, key, field string) (string, bool, error) {
	args := m.Called(ctx, key, field)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}

func TestRedisBrowserSession(t *testing.T) {
	ctx := utils.ContextWithSessionID(context.Background(), "abc")

	t.Run("Set writes the hash field and refreshes expiry", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("HashSet", ctx, "smart:session:abc", "state", `{"a":1}`).Return(nil)
		repo.On("Expire", ctx, "smart:session:abc", 30*time.Minute).Return(nil)

		session := NewRedisBrowserSession(repo, 30*time.Minute)
		err := session.Set(ctx, "state", `{"a":1}`)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Get reports missing fields", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("HashGet", ctx, "smart:session:abc", "state").Return("", false, nil)

		session := NewRedisBrowserSession(repo, time.Minute)
		value, found, err := session.Get(ctx, "state")

		assert.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("Clear deletes the whole hash", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Delete", ctx, "smart:session:abc").Return(nil)

		session := NewRedisBrowserSession(repo, time.Minute)

		assert.NoError(t, session.Clear(ctx))
		repo.AssertExpectations(t)
	})

	t.Run("redis failures are returned", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("HashSet", ctx, "smart:session:abc", "state", "x").Return(exceptions.ErrRedisHashSet(errors.New("down")))

		session := NewRedisBrowserSession(repo, time.Minute)
		err := session.Set(ctx, "state", "x")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no session id in context", func(t *testing.T) {
		session := NewRedisBrowserSession(new(MockRedisRepository), time.Minute)
		_, _, err := session.Get(context.Background(), "state")

		assert.ErrorIs(t, err, exceptions.ErrKindSession)
	})
}
