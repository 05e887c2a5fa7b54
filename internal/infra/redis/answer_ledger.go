package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// AnswerLedger stores each participant's choices as a Redis list:
//
//	RPUSH duel:{duelID}:answers:{userID} {choice}
//
// RPUSH returns the new list length, which is exactly the 1-based answer
// position the engine hands back to callers; LLEN makes progress an O(1)
// read.
type AnswerLedger struct {
	client *redis.Client
}

func NewAnswerLedger(client *redis.Client) *AnswerLedger {
	return &AnswerLedger{client: client}
}

func (l *AnswerLedger) Append(ctx context.Context, duelID, userID string, choice int) (int, error) {
	pos, err := l.client.RPush(ctx, ledgerKey(duelID, userID), strconv.Itoa(choice)).Result()
	if err != nil {
		return 0, err
	}
	return int(pos), nil
}

func (l *AnswerLedger) Answers(ctx context.Context, duelID, userID string) ([]int, error) {
	raw, err := l.client.LRange(ctx, ledgerKey(duelID, userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	answers := make([]int, 0, len(raw))
	for _, entry := range raw {
		choice, err := strconv.Atoi(entry)
		if err != nil {
			return nil, fmt.Errorf("parse ledger entry %q of duel %s: %w", entry, duelID, err)
		}
		answers = append(answers, choice)
	}
	return answers, nil
}

func (l *AnswerLedger) Count(ctx context.Context, duelID, userID string) (int, error) {
	count, err := l.client.LLen(ctx, ledgerKey(duelID, userID)).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func ledgerKey(duelID, userID string) string {
	return "duel:" + duelID + ":answers:" + userID
}
