package app

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
	"github.com/google/uuid"
)

// Roster identifies one of the per-user duel id lists.
type Roster string

const (
	// RosterPending holds unaccepted challenge ids (both sides see them).
	RosterPending Roster = "pending"
	// RosterActive holds accepted, in-progress duel ids.
	RosterActive Roster = "active"
	// RosterArchive holds finished duel ids in reverse-chronological order.
	RosterArchive Roster = "archive"
)

// DuelStore persists duel records and owns the single-writer claims.
type DuelStore interface {
	Put(ctx context.Context, duel domain.Duel) error
	Get(ctx context.Context, duelID string) (domain.Duel, error)
	GetMany(ctx context.Context, duelIDs []string) ([]domain.Duel, error)
	Delete(ctx context.Context, duelID string) error

	// ClaimAccept and ClaimFinalize are atomic set-if-absent markers.
	// They return true for exactly one caller per duel.
	ClaimAccept(ctx context.Context, duelID string) (bool, error)
	ClaimFinalize(ctx context.Context, duelID string) (bool, error)
}

// RosterStore tracks duel id membership per user and roster.
type RosterStore interface {
	Add(ctx context.Context, roster Roster, userID, duelID string) error
	Remove(ctx context.Context, roster Roster, userID, duelID string) error
	List(ctx context.Context, roster Roster, userID string) ([]string, error)
}

// AnswerLedger is the per-(duel,participant) append-only choice log.
// The append position doubles as the question pointer.
type AnswerLedger interface {
	Append(ctx context.Context, duelID, userID string, choice int) (int, error)
	Answers(ctx context.Context, duelID, userID string) ([]int, error)
	Count(ctx context.Context, duelID, userID string) (int, error)
}

// ContentProvider returns a deep, independent snapshot of a card box.
type ContentProvider interface {
	Snapshot(ctx context.Context, boxID string) (domain.BoxSnapshot, error)
}

// IdentityProvider resolves the social inputs of the ranking formula.
type IdentityProvider interface {
	FollowerCount(ctx context.Context, userID string) (int, error)
	OwnedBoxes(ctx context.Context, userID string) ([]string, error)
	BoxRating(ctx context.Context, boxID string) (int, error)
	OfflineScore(ctx context.Context, userID string) (int, error)
}

// ScoreBoard stores materialized scores ordered for rank queries.
type ScoreBoard interface {
	SetScore(ctx context.Context, userID string, score int) error
	Score(ctx context.Context, userID string) (int, error)
	Rank(ctx context.Context, userID string) (int, error)
	Top(ctx context.Context, n int) ([]domain.ScoreEntry, error)
}

// Engine contains the duel use cases: challenge lifecycle, answer intake
// with completion detection, and ranking maintenance. All collaborators are
// injected; the engine keeps no ambient state.
type Engine struct {
	duels    DuelStore
	rosters  RosterStore
	ledger   AnswerLedger
	content  ContentProvider
	identity IdentityProvider
	scores   ScoreBoard

	now   func() time.Time
	newID func() string
}

func NewEngine(duels DuelStore, rosters RosterStore, ledger AnswerLedger,
	content ContentProvider, identity IdentityProvider, scores ScoreBoard) *Engine {
	return &Engine{
		duels:    duels,
		rosters:  rosters,
		ledger:   ledger,
		content:  content,
		identity: identity,
		scores:   scores,
		now:      time.Now,
		newID:    newDuelID,
	}
}

// newDuelID encodes a random UUID as 22 URL-safe base64 characters.
func newDuelID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// WithClock is test-only for deterministic finish timestamps.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}
