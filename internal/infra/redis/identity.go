package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	userKey   = "users"
	ratingKey = "ratings"
)

// userRecord is the subset of the platform's user hash entry the ranking
// formula needs. The profile fields written by the user-management side are
// ignored on unmarshal.
type userRecord struct {
	Boxes        []string `json:"cardboxs"`
	Following    []string `json:"following"`
	OfflineScore int      `json:"offline_score"`
}

// IdentityProvider reads ranking inputs from the shared user and rating
// hashes maintained by the rest of the platform:
//
//	HGET users {userID}     -> user json
//	HGET ratings {boxID}    -> integer rating
//
// FollowerCount scans every user record; the follower relation is only
// stored forward (who each user follows).
type IdentityProvider struct {
	client *redis.Client
}

func NewIdentityProvider(client *redis.Client) *IdentityProvider {
	return &IdentityProvider{client: client}
}

func (p *IdentityProvider) FollowerCount(ctx context.Context, userID string) (int, error) {
	records, err := p.client.HGetAll(ctx, userKey).Result()
	if err != nil {
		return 0, err
	}
	followers := 0
	for id, raw := range records {
		if id == userID {
			continue
		}
		var user userRecord
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return 0, fmt.Errorf("unmarshal user %s: %w", id, err)
		}
		for _, followed := range user.Following {
			if followed == userID {
				followers++
				break
			}
		}
	}
	return followers, nil
}

func (p *IdentityProvider) OwnedBoxes(ctx context.Context, userID string) ([]string, error) {
	user, err := p.fetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Boxes, nil
}

func (p *IdentityProvider) OfflineScore(ctx context.Context, userID string) (int, error) {
	user, err := p.fetchUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.OfflineScore, nil
}

func (p *IdentityProvider) BoxRating(ctx context.Context, boxID string) (int, error) {
	raw, err := p.client.HGet(ctx, ratingKey, boxID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil // unrated box
	}
	if err != nil {
		return 0, err
	}
	rating, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse rating of box %s: %w", boxID, err)
	}
	return rating, nil
}

func (p *IdentityProvider) fetchUser(ctx context.Context, userID string) (userRecord, error) {
	raw, err := p.client.HGet(ctx, userKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return userRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return userRecord{}, err
	}
	var user userRecord
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return userRecord{}, fmt.Errorf("unmarshal user %s: %w", userID, err)
	}
	return user, nil
}

// SaveUser writes a user record the way the user-management side does.
// Exposed for tests and seeding.
func (p *IdentityProvider) SaveUser(ctx context.Context, userID string, boxes, following []string, offlineScore int) error {
	raw, err := json.Marshal(userRecord{
		Boxes:        boxes,
		Following:    following,
		OfflineScore: offlineScore,
	})
	if err != nil {
		return err
	}
	return p.client.HSet(ctx, userKey, userID, raw).Err()
}

// SaveRating writes a box rating. Exposed for tests and seeding.
func (p *IdentityProvider) SaveRating(ctx context.Context, boxID string, rating int) error {
	return p.client.HSet(ctx, ratingKey, boxID, rating).Err()
}
