package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BoxLoader fetches live card box content from a backing store.
type BoxLoader interface {
	LoadBox(ctx context.Context, boxID string) (domain.BoxSnapshot, error)
}

// ContentProvider caches box content with TTL to avoid repeated loader hits.
// Every Snapshot call returns a deep copy, so a snapshot taken at challenge
// time stays frozen no matter what happens to the live box afterwards.
type ContentProvider struct {
	loader BoxLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedBox
}

type cachedBox struct {
	snapshot  domain.BoxSnapshot
	expiresAt time.Time
}

// NewContentProvider builds a provider caching loader results for ttl plus
// up to 10% jitter. A ttl of zero or less disables caching entirely: every
// Snapshot call goes through the loader.
func NewContentProvider(loader BoxLoader, ttl time.Duration) *ContentProvider {
	return &ContentProvider{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBox),
	}
}

func (p *ContentProvider) Snapshot(ctx context.Context, boxID string) (domain.BoxSnapshot, error) {
	now := p.clock()

	p.mu.RLock()
	if entry, ok := p.cache[boxID]; ok && entry.expiresAt.After(now) {
		p.mu.RUnlock()
		return copySnapshot(entry.snapshot), nil
	}
	p.mu.RUnlock()

	result, err, _ := p.sf.Do(boxID, func() (interface{}, error) {
		now := p.clock()
		p.mu.RLock()
		if entry, ok := p.cache[boxID]; ok && entry.expiresAt.After(now) {
			p.mu.RUnlock()
			return entry.snapshot, nil
		}
		p.mu.RUnlock()

		snapshot, err := p.loader.LoadBox(ctx, boxID)
		if err != nil {
			return domain.BoxSnapshot{}, err
		}

		p.mu.Lock()
		p.cache[boxID] = cachedBox{
			snapshot:  snapshot,
			expiresAt: now.Add(p.ttlWithJitter()),
		}
		p.mu.Unlock()
		return snapshot, nil
	})
	if err != nil {
		return domain.BoxSnapshot{}, err
	}
	return copySnapshot(result.(domain.BoxSnapshot)), nil
}

func (p *ContentProvider) ttlWithJitter() time.Duration {
	if p.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(p.ttl) / 10
	return p.ttl + time.Duration(p.rnd.Int63n(jitterMax+1))
}

func copySnapshot(snapshot domain.BoxSnapshot) domain.BoxSnapshot {
	cards := make([]domain.Card, len(snapshot.Cards))
	copy(cards, snapshot.Cards)
	for i := range cards {
		answers := make([]string, len(cards[i].Answers))
		copy(answers, cards[i].Answers)
		cards[i].Answers = answers
	}
	snapshot.Cards = cards
	return snapshot
}

// StaticBoxLoader is a simple loader backed by an in-memory map (useful for
// tests/demos).
type StaticBoxLoader struct {
	mu    sync.Mutex
	boxes map[string]domain.BoxSnapshot
}

func NewStaticBoxLoader(boxes map[string]domain.BoxSnapshot) *StaticBoxLoader {
	return &StaticBoxLoader{boxes: boxes}
}

func (l *StaticBoxLoader) LoadBox(_ context.Context, boxID string) (domain.BoxSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if box, ok := l.boxes[boxID]; ok {
		return copySnapshot(box), nil
	}
	return domain.BoxSnapshot{}, domain.ErrNotFound
}

// SetBox replaces a box's live content, simulating an edit to the source.
func (l *StaticBoxLoader) SetBox(box domain.BoxSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.boxes[box.BoxID] = copySnapshot(box)
}
