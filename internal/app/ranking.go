package app

import (
	"context"
	"fmt"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
)

// Weight factors of the score formula. Kept as named constants so the
// formula reads like its definition:
//
//	score = offline + 100*sum(box ratings) + 200*followers + 100*boxes
const (
	ratingWeight   = 100
	followerWeight = 200
	boxWeight      = 100
)

// Recompute pulls the user's ranking inputs from the identity provider,
// recomputes the weighted sum from scratch and stores it as the
// authoritative materialized score. Call it after any event that changes an
// input: rating change, box creation or deletion, follow or unfollow,
// offline-score sync. Returns the new score.
func (e *Engine) Recompute(ctx context.Context, userID string) (int, error) {
	boxes, err := e.identity.OwnedBoxes(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("owned boxes of %s: %w", userID, err)
	}

	ratings := 0
	for _, boxID := range boxes {
		rating, err := e.identity.BoxRating(ctx, boxID)
		if err != nil {
			return 0, fmt.Errorf("rating of box %s: %w", boxID, err)
		}
		ratings += rating
	}

	followers, err := e.identity.FollowerCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("followers of %s: %w", userID, err)
	}
	offline, err := e.identity.OfflineScore(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("offline score of %s: %w", userID, err)
	}

	score := offline + ratings*ratingWeight + followers*followerWeight + len(boxes)*boxWeight
	if err := e.scores.SetScore(ctx, userID, score); err != nil {
		return 0, err
	}
	return score, nil
}

// Rank returns the user's 1-based position in descending score order.
// Fails with ErrNotFound if the user has no recorded score yet.
func (e *Engine) Rank(ctx context.Context, userID string) (int, error) {
	return e.scores.Rank(ctx, userID)
}

// Score returns the user's materialized score.
func (e *Engine) Score(ctx context.Context, userID string) (int, error) {
	return e.scores.Score(ctx, userID)
}

// Top returns the n best users with their scores, descending.
func (e *Engine) Top(ctx context.Context, n int) ([]domain.ScoreEntry, error) {
	return e.scores.Top(ctx, n)
}
