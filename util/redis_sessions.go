package util

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ariebrainware/doctor-portal/config"
	"github.com/redis/go-redis/v9"
)

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func doctorSetKey(doctorID uint) string {
	return fmt.Sprintf("doctor_sessions:%d", doctorID)
}

// CacheSession stores token -> doctorID with the session TTL and tracks the
// token in the per-doctor set. A nil redis client is a no-op.
func CacheSession(ctx context.Context, token string, doctorID uint, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Set(ctx, sessionKey(token), strconv.FormatUint(uint64(doctorID), 10), ttl).Err(); err != nil {
		return err
	}
	setKey := doctorSetKey(doctorID)
	if err := rdb.SAdd(ctx, setKey, token).Err(); err != nil {
		return err
	}
	return rdb.Expire(ctx, setKey, ttl).Err()
}

// LookupCachedSession returns the doctor id cached for token.
// The bool is false on a miss, a redis error or when redis is not configured.
func LookupCachedSession(ctx context.Context, token string) (uint, bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return 0, false
	}
	val, err := rdb.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			Logger.Warn().Err(err).Msg("session cache lookup failed")
		}
		return 0, false
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// RemoveSession drops a single cached token and its membership in the doctor set.
func RemoveSession(ctx context.Context, doctorID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return err
	}
	return rdb.SRem(ctx, doctorSetKey(doctorID), token).Err()
}

// InvalidateDoctorSessions deletes every cached token of a doctor, e.g. after a
// password change.
func InvalidateDoctorSessions(ctx context.Context, doctorID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	setKey := doctorSetKey(doctorID)
	members, err := rdb.SMembers(ctx, setKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	for _, tok := range members {
		_ = rdb.Del(ctx, sessionKey(tok)).Err()
	}
	return rdb.Del(ctx, setKey).Err()
}
