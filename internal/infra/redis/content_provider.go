package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BoxLoader fetches live card box content from a backing store (e.g. the
// platform's Postgres catalog).
type BoxLoader interface {
	LoadBox(ctx context.Context, boxID string) (domain.BoxSnapshot, error)
}

// ContentProvider caches box content in Redis and falls back to a loader on
// cache miss:
//
//	SET box:{boxID}:snapshot {json} EX {ttl+jitter}
//
// Snapshots handed out are unmarshalled fresh per call, so the engine's
// frozen copies never alias the cache or each other.
type ContentProvider struct {
	client *redis.Client
	loader BoxLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// NewContentProvider builds a provider caching snapshots in Redis for ttl
// plus up to 10% jitter. A ttl of zero or less disables caching entirely:
// every Snapshot call goes through the loader.
func NewContentProvider(client *redis.Client, loader BoxLoader, ttl time.Duration) *ContentProvider {
	return &ContentProvider{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *ContentProvider) Snapshot(ctx context.Context, boxID string) (domain.BoxSnapshot, error) {
	cacheKey := p.cacheKey(boxID)

	raw, err := p.client.Get(ctx, cacheKey).Result()
	if err == nil {
		return decodeSnapshot(boxID, raw)
	}
	if !errors.Is(err, redis.Nil) {
		return domain.BoxSnapshot{}, err
	}

	result, err, _ := p.sf.Do(boxID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := p.client.Get(ctx, cacheKey).Result()
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, redis.Nil) {
			return nil, err
		}

		snapshot, err := p.loader.LoadBox(ctx, boxID)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("marshal box %s: %w", boxID, err)
		}
		if p.ttl > 0 {
			_ = p.client.Set(ctx, cacheKey, encoded, p.ttlWithJitter()).Err()
		}
		return string(encoded), nil
	})
	if err != nil {
		return domain.BoxSnapshot{}, err
	}
	return decodeSnapshot(boxID, result.(string))
}

func (p *ContentProvider) cacheKey(boxID string) string {
	return "box:" + boxID + ":snapshot"
}

func (p *ContentProvider) ttlWithJitter() time.Duration {
	if p.ttl <= 0 {
		return 0
	}
	jitterMax := int64(p.ttl) / 10
	p.rndMu.Lock()
	jitter := p.rnd.Int63n(jitterMax + 1)
	p.rndMu.Unlock()
	return p.ttl + time.Duration(jitter)
}

func decodeSnapshot(boxID, raw string) (domain.BoxSnapshot, error) {
	var snapshot domain.BoxSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return domain.BoxSnapshot{}, fmt.Errorf("unmarshal box %s: %w", boxID, err)
	}
	return snapshot, nil
}
