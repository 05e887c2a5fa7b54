package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
)

func TestScoreBoardTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	board := NewScoreBoard()

	_ = board.SetScore(ctx, "carol", 200)
	_ = board.SetScore(ctx, "dave", 200)
	_ = board.SetScore(ctx, "erin", 300)

	if rank, _ := board.Rank(ctx, "erin"); rank != 1 {
		t.Fatalf("expected erin first, got %d", rank)
	}
	if rank, _ := board.Rank(ctx, "carol"); rank != 2 {
		t.Fatalf("tie must keep insertion order, carol at %d", rank)
	}
	if rank, _ := board.Rank(ctx, "dave"); rank != 3 {
		t.Fatalf("tie must keep insertion order, dave at %d", rank)
	}

	top, _ := board.Top(ctx, 5)
	want := []string{"erin", "carol", "dave"}
	for i, id := range want {
		if top[i].UserID != id {
			t.Fatalf("top order mismatch: got %+v, want %v", top, want)
		}
	}
}

func TestScoreBoardTopNonPositiveN(t *testing.T) {
	ctx := context.Background()
	board := NewScoreBoard()
	_ = board.SetScore(ctx, "carol", 200)

	for _, n := range []int{0, -1, -100} {
		top, err := board.Top(ctx, n)
		if err != nil {
			t.Fatalf("Top(%d): %v", n, err)
		}
		if len(top) != 0 {
			t.Fatalf("Top(%d) = %+v, want empty", n, top)
		}
	}
}

func TestScoreBoardUnknownUser(t *testing.T) {
	ctx := context.Background()
	board := NewScoreBoard()
	if _, err := board.Rank(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if _, err := board.Score(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDuelStoreCopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	store := NewDuelStore()

	duel := domain.Duel{
		ID:         "d1",
		Challenger: "carol",
		Challenged: "dave",
		Cards: []domain.Card{
			{Question: "q", Answers: []string{"a", "b", "c"}, CorrectAnswer: 0},
		},
	}
	if err := store.Put(ctx, duel); err != nil {
		t.Fatalf("put: %v", err)
	}

	// mutate the slice we handed in; the stored record must not change
	duel.Cards[0].CorrectAnswer = 2

	got, err := store.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Cards[0].CorrectAnswer != 0 {
		t.Fatalf("stored duel aliases caller memory: %+v", got.Cards[0])
	}

	// and mutations of a fetched copy must not write back
	got.Cards[0].Question = "tampered"
	again, _ := store.Get(ctx, "d1")
	if again.Cards[0].Question != "q" {
		t.Fatalf("fetched duel aliases store memory: %+v", again.Cards[0])
	}
}
