package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
)

func TestRecomputeAppliesWeights(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.identity.SetUser("carol", []string{"box-1", "box-2"}, 3, 50)
	f.identity.SetRating("box-1", 4)
	f.identity.SetRating("box-2", 1)

	// 50 + 100*(4+1) + 200*3 + 100*2 = 1350
	score, err := f.engine.Recompute(ctx, "carol")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if score != 1350 {
		t.Fatalf("expected score 1350, got %d", score)
	}

	stored, err := f.engine.Score(ctx, "carol")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if stored != score {
		t.Fatalf("materialized score %d does not match recompute result %d", stored, score)
	}
}

func TestRecomputeReflectsInputChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.identity.SetUser("carol", []string{"box-1"}, 0, 0)
	f.identity.SetRating("box-1", 0)

	if score, _ := f.engine.Recompute(ctx, "carol"); score != 100 {
		t.Fatalf("expected 100 for a single unrated box, got %d", score)
	}

	f.identity.SetRating("box-1", 2)
	if score, _ := f.engine.Recompute(ctx, "carol"); score != 300 {
		t.Fatalf("expected 300 after rating change, got %d", score)
	}
}

func TestRankAndTop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.identity.SetUser("carol", nil, 2, 0) // 400
	f.identity.SetUser("dave", nil, 0, 50) // 50
	f.identity.SetUser("erin", nil, 1, 0)  // 200

	for _, user := range []string{"carol", "dave", "erin"} {
		if _, err := f.engine.Recompute(ctx, user); err != nil {
			t.Fatalf("recompute %s: %v", user, err)
		}
	}

	if rank, _ := f.engine.Rank(ctx, "carol"); rank != 1 {
		t.Fatalf("expected carol at rank 1, got %d", rank)
	}
	if rank, _ := f.engine.Rank(ctx, "erin"); rank != 2 {
		t.Fatalf("expected erin at rank 2, got %d", rank)
	}
	if rank, _ := f.engine.Rank(ctx, "dave"); rank != 3 {
		t.Fatalf("expected dave at rank 3, got %d", rank)
	}

	top, err := f.engine.Top(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []domain.ScoreEntry{{UserID: "carol", Score: 400}, {UserID: "erin", Score: 200}}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), top)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Fatalf("top mismatch at %d: got %+v, want %+v", i, top[i], want[i])
		}
	}
}

func TestRankUnknownUser(t *testing.T) {
	f := newFixture(t)
	if _, err := f.engine.Rank(context.Background(), "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found for unranked user, got %v", err)
	}
}
