package sessionstore

import (
	"context"
	"fmt"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"
	"time"
)

// redisBrowserSession keeps every session as one redis hash that expires as a whole.
type redisBrowserSession struct {
	RedisRepository contracts.RedisRepository
	Expiry          time.Duration
}

func NewRedisBrowserSession(redisRepository contracts.RedisRepository, expiry time.Duration) contracts.BrowserSession {
	return &redisBrowserSession{
		RedisRepository: redisRepository,
		Expiry:          expiry,
	}
}

func (s *redisBrowserSession) Get(ctx context.Context, key string) (string, bool, error) {
	redisKey, err := sessionRedisKey(ctx)
	if err != nil {
		return "", false, err
	}
	return s.RedisRepository.HashGet(ctx, redisKey, key)
}

func (s *redisBrowserSession) Set(ctx context.Context, key, value string) error {
	redisKey, err := sessionRedisKey(ctx)
	if err != nil {
		return err
	}

	err = s.RedisRepository.HashSet(ctx, redisKey, key, value)
	if err != nil {
		return err
	}
	return s.RedisRepository.Expire(ctx, redisKey, s.Expiry)
}

func (s *redisBrowserSession) Clear(ctx context.Context) error {
	redisKey, err := sessionRedisKey(ctx)
	if err != nil {
		return err
	}
	return s.RedisRepository.Delete(ctx, redisKey)
}

func sessionRedisKey(ctx context.Context) (string, error) {
	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return "", exceptions.ErrSessionMissing(nil)
	}
	return fmt.Sprintf(constvars.SessionRedisKeyFormat, sessionID), nil
}
