package memory

import (
	"context"
	"sync"
)

// AnswerLedger is an in-memory implementation of app.AnswerLedger.
type AnswerLedger struct {
	mu   sync.Mutex
	logs map[string][]int
}

func NewAnswerLedger() *AnswerLedger {
	return &AnswerLedger{logs: make(map[string][]int)}
}

func (l *AnswerLedger) Append(_ context.Context, duelID, userID string, choice int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := ledgerKey(duelID, userID)
	l.logs[key] = append(l.logs[key], choice)
	return len(l.logs[key]), nil
}

func (l *AnswerLedger) Answers(_ context.Context, duelID, userID string) ([]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	answers := l.logs[ledgerKey(duelID, userID)]
	out := make([]int, len(answers))
	copy(out, answers)
	return out, nil
}

func (l *AnswerLedger) Count(_ context.Context, duelID, userID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.logs[ledgerKey(duelID, userID)]), nil
}

func ledgerKey(duelID, userID string) string {
	return duelID + ":" + userID
}
