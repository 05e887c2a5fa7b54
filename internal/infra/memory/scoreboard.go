package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
)

// ScoreBoard is an in-memory implementation of app.ScoreBoard. Ordering is
// score descending with ties resolved by insertion order (stable).
type ScoreBoard struct {
	mu     sync.Mutex
	scores map[string]int
	order  []string
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{scores: make(map[string]int)}
}

func (b *ScoreBoard) SetScore(_ context.Context, userID string, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.scores[userID]; !ok {
		b.order = append(b.order, userID)
	}
	b.scores[userID] = score
	return nil
}

func (b *ScoreBoard) Score(_ context.Context, userID string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	score, ok := b.scores[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return score, nil
}

func (b *ScoreBoard) Rank(_ context.Context, userID string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.scores[userID]; !ok {
		return 0, domain.ErrNotFound
	}
	for i, id := range b.rankedLocked() {
		if id == userID {
			return i + 1, nil
		}
	}
	return 0, domain.ErrNotFound
}

func (b *ScoreBoard) Top(_ context.Context, n int) ([]domain.ScoreEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	ranked := b.rankedLocked()
	if n > len(ranked) {
		n = len(ranked)
	}
	entries := make([]domain.ScoreEntry, 0, n)
	for _, id := range ranked[:n] {
		entries = append(entries, domain.ScoreEntry{UserID: id, Score: b.scores[id]})
	}
	return entries, nil
}

func (b *ScoreBoard) rankedLocked() []string {
	ranked := make([]string, len(b.order))
	copy(ranked, b.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return b.scores[ranked[i]] > b.scores[ranked[j]]
	})
	return ranked
}
