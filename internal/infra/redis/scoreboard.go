package redis

import (
	"context"
	"errors"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
	"github.com/redis/go-redis/v9"
)

const scoreKey = "scores"

// ScoreBoard keeps materialized user scores in a sorted set:
//
//	ZADD scores {score} {userID}
//
// ZREVRANK answers rank queries in logarithmic time; ties resolve by
// Redis's lexicographic member order, which is stable across reads.
type ScoreBoard struct {
	client *redis.Client
}

func NewScoreBoard(client *redis.Client) *ScoreBoard {
	return &ScoreBoard{client: client}
}

func (b *ScoreBoard) SetScore(ctx context.Context, userID string, score int) error {
	return b.client.ZAdd(ctx, scoreKey, redis.Z{Score: float64(score), Member: userID}).Err()
}

func (b *ScoreBoard) Score(ctx context.Context, userID string) (int, error) {
	score, err := b.client.ZScore(ctx, scoreKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return int(score), nil
}

func (b *ScoreBoard) Rank(ctx context.Context, userID string) (int, error) {
	rank, err := b.client.ZRevRank(ctx, scoreKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return int(rank) + 1, nil
}

func (b *ScoreBoard) Top(ctx context.Context, n int) ([]domain.ScoreEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := b.client.ZRevRangeWithScores(ctx, scoreKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.ScoreEntry, 0, len(members))
	for _, member := range members {
		userID, ok := member.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, domain.ScoreEntry{UserID: userID, Score: int(member.Score)})
	}
	return entries, nil
}
