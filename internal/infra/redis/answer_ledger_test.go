package redis

import (
	"context"
	"testing"
)

func TestAnswerLedgerAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	mr, client := newClient(t)
	ledger := NewAnswerLedger(client)

	for i, choice := range []int{1, 0, 2} {
		pos, err := ledger.Append(ctx, "d1", "carol", choice)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if pos != i+1 {
			t.Fatalf("expected position %d, got %d", i+1, pos)
		}
	}
	if !mr.Exists("duel:d1:answers:carol") {
		t.Fatal("expected ledger key to be written")
	}

	answers, err := ledger.Answers(ctx, "d1", "carol")
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	want := []int{1, 0, 2}
	if len(answers) != len(want) {
		t.Fatalf("expected %v, got %v", want, answers)
	}
	for i := range want {
		if answers[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, answers)
		}
	}

	count, err := ledger.Count(ctx, "d1", "carol")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}

func TestAnswerLedgerIsolatesParticipants(t *testing.T) {
	ctx := context.Background()
	_, client := newClient(t)
	ledger := NewAnswerLedger(client)

	_, _ = ledger.Append(ctx, "d1", "carol", 0)
	_, _ = ledger.Append(ctx, "d1", "dave", 2)
	_, _ = ledger.Append(ctx, "d2", "carol", 1)

	if count, _ := ledger.Count(ctx, "d1", "carol"); count != 1 {
		t.Fatalf("expected carol's d1 log to hold 1 entry, got %d", count)
	}
	answers, _ := ledger.Answers(ctx, "d1", "dave")
	if len(answers) != 1 || answers[0] != 2 {
		t.Fatalf("expected dave's d1 log [2], got %v", answers)
	}
	if count, _ := ledger.Count(ctx, "d2", "dave"); count != 0 {
		t.Fatalf("expected empty log, got %d", count)
	}
}
