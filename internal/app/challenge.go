package app

import (
	"context"
	"fmt"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
)

// Issue creates a pending challenge from challenger to challenged over a
// snapshot of the box taken at this instant. Returns the new duel id.
func (e *Engine) Issue(ctx context.Context, challenger, challenged, boxID string) (string, error) {
	if challenger == challenged {
		return "", domain.ErrSelfChallenge
	}

	snapshot, err := e.content.Snapshot(ctx, boxID)
	if err != nil {
		return "", fmt.Errorf("snapshot box %s: %w", boxID, err)
	}

	duel := domain.Duel{
		ID:         e.newID(),
		Challenger: challenger,
		Challenged: challenged,
		BoxID:      snapshot.BoxID,
		BoxName:    snapshot.Name,
		Cards:      snapshot.Cards,
		Accepted:   false,
	}
	if err := e.duels.Put(ctx, duel); err != nil {
		return "", err
	}

	if err := e.rosters.Add(ctx, RosterPending, challenger, duel.ID); err != nil {
		return "", err
	}
	if err := e.rosters.Add(ctx, RosterPending, challenged, duel.ID); err != nil {
		return "", err
	}
	return duel.ID, nil
}

// Withdraw cancels (challenger) or declines (challenged) a pending
// challenge. Accepted duels no longer live in the pending registry, so a
// withdraw for them reports ErrNotFound.
func (e *Engine) Withdraw(ctx context.Context, duelID, requester string) error {
	duel, err := e.duels.Get(ctx, duelID)
	if err != nil {
		return err
	}
	if duel.Accepted {
		return domain.ErrNotFound
	}
	if !duel.HasParticipant(requester) {
		return domain.ErrNotAuthorized
	}

	if err := e.rosters.Remove(ctx, RosterPending, duel.Challenger, duelID); err != nil {
		return err
	}
	if err := e.rosters.Remove(ctx, RosterPending, duel.Challenged, duelID); err != nil {
		return err
	}
	return e.duels.Delete(ctx, duelID)
}

// Accept turns a pending challenge into an active duel. Only the challenged
// party may accept. Concurrent accepts yield exactly one success; the loser
// sees ErrAlreadyAccepted.
func (e *Engine) Accept(ctx context.Context, duelID, requester string) error {
	duel, err := e.duels.Get(ctx, duelID)
	if err != nil {
		return err
	}
	if duel.Accepted {
		return domain.ErrAlreadyAccepted
	}
	if requester != duel.Challenged {
		return domain.ErrNotAuthorized
	}

	won, err := e.duels.ClaimAccept(ctx, duelID)
	if err != nil {
		return err
	}
	if !won {
		return domain.ErrAlreadyAccepted
	}

	// Leave the pending registry before activation so the duel is never
	// visible as pending and active at the same time.
	if err := e.rosters.Remove(ctx, RosterPending, duel.Challenger, duelID); err != nil {
		return err
	}
	if err := e.rosters.Remove(ctx, RosterPending, duel.Challenged, duelID); err != nil {
		return err
	}

	duel.Accepted = true
	if err := e.duels.Put(ctx, duel); err != nil {
		return err
	}

	if err := e.rosters.Add(ctx, RosterActive, duel.Challenger, duelID); err != nil {
		return err
	}
	return e.rosters.Add(ctx, RosterActive, duel.Challenged, duelID)
}

// ListIssued returns the user's pending challenges where they are the
// challenger.
func (e *Engine) ListIssued(ctx context.Context, userID string) ([]domain.Duel, error) {
	duels, err := e.pendingOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	issued := duels[:0]
	for _, duel := range duels {
		if duel.Challenger == userID {
			issued = append(issued, duel)
		}
	}
	return issued, nil
}

// ListReceived returns the user's pending challenges where they are the
// challenged party.
func (e *Engine) ListReceived(ctx context.Context, userID string) ([]domain.Duel, error) {
	duels, err := e.pendingOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	received := duels[:0]
	for _, duel := range duels {
		if duel.Challenged == userID {
			received = append(received, duel)
		}
	}
	return received, nil
}

func (e *Engine) pendingOf(ctx context.Context, userID string) ([]domain.Duel, error) {
	ids, err := e.rosters.List(ctx, RosterPending, userID)
	if err != nil {
		return nil, err
	}
	return e.duels.GetMany(ctx, ids)
}

// ListActive returns the user's accepted, unfinished duels.
func (e *Engine) ListActive(ctx context.Context, userID string) ([]domain.Duel, error) {
	ids, err := e.rosters.List(ctx, RosterActive, userID)
	if err != nil {
		return nil, err
	}
	return e.duels.GetMany(ctx, ids)
}

// ListArchived returns the user's finished duels, most recent first.
func (e *Engine) ListArchived(ctx context.Context, userID string) ([]domain.Duel, error) {
	ids, err := e.rosters.List(ctx, RosterArchive, userID)
	if err != nil {
		return nil, err
	}
	return e.duels.GetMany(ctx, ids)
}

// Duel fetches a single duel record by id.
func (e *Engine) Duel(ctx context.Context, duelID string) (domain.Duel, error) {
	return e.duels.Get(ctx, duelID)
}
