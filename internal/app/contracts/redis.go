package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	HashSet(ctx context.Context, key, field, value string) error
	HashGet(ctx context.Context, key, field string) (value string, found bool, err error)
	Expire(ctx context.Context, key string, exp time.Duration) error
}
