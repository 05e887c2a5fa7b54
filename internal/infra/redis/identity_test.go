package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
)

func TestIdentityProviderReadsUserHash(t *testing.T) {
	ctx := context.Background()
	_, client := newClient(t)
	identity := NewIdentityProvider(client)

	if err := identity.SaveUser(ctx, "carol", []string{"box-1", "box-2"}, nil, 75); err != nil {
		t.Fatalf("save user: %v", err)
	}

	boxes, err := identity.OwnedBoxes(ctx, "carol")
	if err != nil {
		t.Fatalf("owned boxes: %v", err)
	}
	if len(boxes) != 2 || boxes[0] != "box-1" {
		t.Fatalf("unexpected boxes: %v", boxes)
	}

	offline, err := identity.OfflineScore(ctx, "carol")
	if err != nil || offline != 75 {
		t.Fatalf("expected offline score 75, got %d (%v)", offline, err)
	}

	if _, err := identity.OwnedBoxes(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found for unknown user, got %v", err)
	}
}

func TestFollowerCountScansForwardRelation(t *testing.T) {
	ctx := context.Background()
	_, client := newClient(t)
	identity := NewIdentityProvider(client)

	_ = identity.SaveUser(ctx, "carol", nil, nil, 0)
	_ = identity.SaveUser(ctx, "dave", nil, []string{"carol"}, 0)
	_ = identity.SaveUser(ctx, "erin", nil, []string{"carol", "dave"}, 0)

	followers, err := identity.FollowerCount(ctx, "carol")
	if err != nil {
		t.Fatalf("follower count: %v", err)
	}
	if followers != 2 {
		t.Fatalf("expected 2 followers, got %d", followers)
	}

	if followers, _ := identity.FollowerCount(ctx, "erin"); followers != 0 {
		t.Fatalf("expected 0 followers for erin, got %d", followers)
	}
}

func TestBoxRatingDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	_, client := newClient(t)
	identity := NewIdentityProvider(client)

	if rating, err := identity.BoxRating(ctx, "box-1"); err != nil || rating != 0 {
		t.Fatalf("unrated box should be 0, got %d (%v)", rating, err)
	}

	_ = identity.SaveRating(ctx, "box-1", 7)
	if rating, _ := identity.BoxRating(ctx, "box-1"); rating != 7 {
		t.Fatalf("expected rating 7, got %d", rating)
	}
}
