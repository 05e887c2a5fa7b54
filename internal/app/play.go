package app

import (
	"context"
	"fmt"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
)

// Submit records one answer for a participant and returns the 1-based count
// of answers now on their ledger, which is also the next question pointer.
// It is the sole mutating entry point for gameplay: after a successful
// append it runs the completion check and, when both sides are done,
// finalizes the duel.
func (e *Engine) Submit(ctx context.Context, duelID, userID string, choice int) (int, error) {
	if choice < 0 || choice >= domain.ChoiceCount {
		return 0, domain.ErrInvalidChoice
	}

	duel, err := e.duels.Get(ctx, duelID)
	if err != nil {
		return 0, err
	}
	if !duel.Accepted || duel.Finished() {
		return 0, domain.ErrDuelNotActive
	}
	if !duel.HasParticipant(userID) {
		return 0, domain.ErrNotAuthorized
	}

	n := duel.QuestionCount()
	count, err := e.ledger.Count(ctx, duelID, userID)
	if err != nil {
		return 0, err
	}
	if count > n {
		return 0, fmt.Errorf("%w: %d answers for %d cards in duel %s",
			domain.ErrCorruptDuelState, count, n, duelID)
	}
	if count == n {
		return 0, domain.ErrAlreadyComplete
	}

	pos, err := e.ledger.Append(ctx, duelID, userID, choice)
	if err != nil {
		return 0, err
	}

	if pos == n {
		if err := e.maybeFinalize(ctx, duel, userID); err != nil {
			return pos, err
		}
	}
	return pos, nil
}

// maybeFinalize runs after a participant reaches the end of the snapshot.
// Both final submissions can get here at the same instant; the finalize
// claim guarantees a single writer, the loser takes the already-done path.
func (e *Engine) maybeFinalize(ctx context.Context, duel domain.Duel, userID string) error {
	opponent, err := duel.Opponent(userID)
	if err != nil {
		return err
	}
	theirs, err := e.ledger.Count(ctx, duel.ID, opponent)
	if err != nil {
		return err
	}
	if theirs != duel.QuestionCount() {
		return nil
	}

	won, err := e.duels.ClaimFinalize(ctx, duel.ID)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}
	return e.finalize(ctx, duel)
}

// finalize computes the outcome exactly once: score both ledgers against
// the snapshot, record winner and finish time, then move the duel from both
// active rosters into both archives. The record transition happens before
// archival so a finished duel never lingers in an active list unrecorded.
func (e *Engine) finalize(ctx context.Context, duel domain.Duel) error {
	n := duel.QuestionCount()

	challengerAnswers, err := e.ledger.Answers(ctx, duel.ID, duel.Challenger)
	if err != nil {
		return err
	}
	challengedAnswers, err := e.ledger.Answers(ctx, duel.ID, duel.Challenged)
	if err != nil {
		return err
	}
	if len(challengerAnswers) != n || len(challengedAnswers) != n {
		return fmt.Errorf("%w: finalize of duel %s saw %d/%d answers for %d cards",
			domain.ErrCorruptDuelState, duel.ID,
			len(challengerAnswers), len(challengedAnswers), n)
	}

	challengerScore := correctCount(duel.Cards, challengerAnswers)
	challengedScore := correctCount(duel.Cards, challengedAnswers)

	switch {
	case challengerScore > challengedScore:
		duel.Winner = duel.Challenger
	case challengedScore > challengerScore:
		duel.Winner = duel.Challenged
	default:
		duel.Winner = domain.WinnerDraw
	}
	finished := e.now().UTC()
	duel.FinishTime = &finished

	if err := e.duels.Put(ctx, duel); err != nil {
		return err
	}

	for _, userID := range []string{duel.Challenger, duel.Challenged} {
		if err := e.rosters.Remove(ctx, RosterActive, userID, duel.ID); err != nil {
			return err
		}
		if err := e.rosters.Add(ctx, RosterArchive, userID, duel.ID); err != nil {
			return err
		}
	}

	for _, userID := range []string{duel.Challenger, duel.Challenged} {
		if _, err := e.Recompute(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// Progress returns a participant's own view of a running duel: last choice,
// running correct count and whether they are waiting on the opponent.
func (e *Engine) Progress(ctx context.Context, duelID, userID string) (domain.Progress, error) {
	duel, err := e.duels.Get(ctx, duelID)
	if err != nil {
		return domain.Progress{}, err
	}
	if !duel.Accepted {
		return domain.Progress{}, domain.ErrDuelNotActive
	}
	if !duel.HasParticipant(userID) {
		return domain.Progress{}, domain.ErrNotAuthorized
	}

	answers, err := e.ledger.Answers(ctx, duelID, userID)
	if err != nil {
		return domain.Progress{}, err
	}
	n := duel.QuestionCount()
	if len(answers) > n {
		return domain.Progress{}, fmt.Errorf("%w: %d answers for %d cards in duel %s",
			domain.ErrCorruptDuelState, len(answers), n, duelID)
	}

	progress := domain.Progress{
		DuelID:       duelID,
		Position:     len(answers),
		LastChoice:   -1,
		CorrectCount: correctCount(duel.Cards, answers),
		Waiting:      len(answers) == n && !duel.Finished(),
		Finished:     duel.Finished(),
	}
	if len(answers) > 0 {
		progress.LastChoice = answers[len(answers)-1]
		progress.LastLetter = string(rune('a' + progress.LastChoice))
	}
	return progress, nil
}

// Result returns the outcome view of a finished duel.
func (e *Engine) Result(ctx context.Context, duelID string) (domain.Result, error) {
	duel, err := e.duels.Get(ctx, duelID)
	if err != nil {
		return domain.Result{}, err
	}
	if !duel.Finished() {
		return domain.Result{}, domain.ErrDuelNotFinished
	}

	challengerAnswers, err := e.ledger.Answers(ctx, duelID, duel.Challenger)
	if err != nil {
		return domain.Result{}, err
	}
	challengedAnswers, err := e.ledger.Answers(ctx, duelID, duel.Challenged)
	if err != nil {
		return domain.Result{}, err
	}

	return domain.Result{
		DuelID:            duelID,
		Challenger:        duel.Challenger,
		Challenged:        duel.Challenged,
		BoxName:           duel.BoxName,
		Winner:            duel.Winner,
		FinishTime:        *duel.FinishTime,
		ChallengerAnswers: challengerAnswers,
		ChallengedAnswers: challengedAnswers,
		ChallengerCorrect: correctness(duel.Cards, challengerAnswers),
		ChallengedCorrect: correctness(duel.Cards, challengedAnswers),
		ChallengerScore:   correctCount(duel.Cards, challengerAnswers),
		ChallengedScore:   correctCount(duel.Cards, challengedAnswers),
	}, nil
}

// correctCount scores an answer prefix against the snapshot: one point per
// position where the choice matches the card's correct answer.
func correctCount(cards []domain.Card, answers []int) int {
	score := 0
	for i, choice := range answers {
		if i >= len(cards) {
			break
		}
		if choice == cards[i].CorrectAnswer {
			score++
		}
	}
	return score
}

// correctness maps an answer sequence to per-position booleans.
func correctness(cards []domain.Card, answers []int) []bool {
	out := make([]bool, 0, len(answers))
	for i, choice := range answers {
		if i >= len(cards) {
			break
		}
		out = append(out, choice == cards[i].CorrectAnswer)
	}
	return out
}
