package court

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bevisngo/booksan-sub000/internal/pkg/metrics"
)

const cacheKeyPrefix = "booksan:court:"

type cachedLookup struct {
	next Lookup
	rdb  redis.Cmdable
	ttl  time.Duration
	log  zerolog.Logger
}

// NewCachedLookup puts a Redis read-through cache in front of next.
// Only found courts are cached. Redis failures fall back to next.
func NewCachedLookup(next Lookup, rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) Lookup {
	return &cachedLookup{next: next, rdb: rdb, ttl: ttl, log: log}
}

func cacheKey(facilityID, courtID string) string {
	return cacheKeyPrefix + facilityID + ":" + courtID
}

func (l *cachedLookup) FindInFacility(ctx context.Context, courtID, facilityID string) (*Court, bool, error) {
	key := cacheKey(facilityID, courtID)

	raw, err := l.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var c Court
		if jsonErr := json.Unmarshal(raw, &c); jsonErr == nil {
			metrics.RecordCourtCache("hit")
			return &c, true, nil
		}
		l.log.Warn().Str("key", key).Msg("discarding undecodable court cache entry")
	case errors.Is(err, redis.Nil):
		metrics.RecordCourtCache("miss")
	default:
		metrics.RecordCourtCache("error")
		l.log.Warn().Err(err).Str("key", key).Msg("court cache read failed")
	}

	c, found, err := l.next.FindInFacility(ctx, courtID, facilityID)
	if err != nil || !found {
		return c, found, err
	}

	if payload, err := json.Marshal(c); err == nil {
		if err := l.rdb.Set(ctx, key, string(payload), l.ttl).Err(); err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("court cache write failed")
		}
	}
	return c, true, nil
}
