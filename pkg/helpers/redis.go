package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTLGrace keeps a session hash alive slightly longer than its token.
const SessionTTLGrace = time.Minute

// NewRedisClient initializes a redis client and checks it is reachable.
// An empty addr returns a nil client; callers treat that as "redis disabled".
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// SessionKey is the redis hash holding the active session of a user.
func SessionKey(userID string) string {
	return "user:session:" + userID
}
