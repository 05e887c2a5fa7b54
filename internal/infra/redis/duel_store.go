package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexRzehak/FlashBoxFactory/internal/app"
	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
	"github.com/redis/go-redis/v9"
)

const duelRecordKey = "duels"

// DuelStore keeps duel records in a Redis hash keyed by duel id, with
// SETNX markers as the accept and finalize claims:
//
//	HSET duels {duelID} {json}
//	SETNX duel:{duelID}:accepted 1
//	SETNX duel:{duelID}:finalized 1
//
// The markers give the single-writer guarantee the engine relies on; the
// record itself is only ever written by the claim winner.
type DuelStore struct {
	client *redis.Client
}

func NewDuelStore(client *redis.Client) *DuelStore {
	return &DuelStore{client: client}
}

func (s *DuelStore) Put(ctx context.Context, duel domain.Duel) error {
	raw, err := json.Marshal(duel)
	if err != nil {
		return fmt.Errorf("marshal duel %s: %w", duel.ID, err)
	}
	return s.client.HSet(ctx, duelRecordKey, duel.ID, raw).Err()
}

func (s *DuelStore) Get(ctx context.Context, duelID string) (domain.Duel, error) {
	raw, err := s.client.HGet(ctx, duelRecordKey, duelID).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Duel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Duel{}, err
	}
	var duel domain.Duel
	if err := json.Unmarshal([]byte(raw), &duel); err != nil {
		return domain.Duel{}, fmt.Errorf("unmarshal duel %s: %w", duelID, err)
	}
	return duel, nil
}

func (s *DuelStore) GetMany(ctx context.Context, duelIDs []string) ([]domain.Duel, error) {
	if len(duelIDs) == 0 {
		return nil, nil
	}
	raws, err := s.client.HMGet(ctx, duelRecordKey, duelIDs...).Result()
	if err != nil {
		return nil, err
	}
	duels := make([]domain.Duel, 0, len(raws))
	for i, raw := range raws {
		str, ok := raw.(string)
		if !ok {
			// id still on a roster but record already gone; skip
			continue
		}
		var duel domain.Duel
		if err := json.Unmarshal([]byte(str), &duel); err != nil {
			return nil, fmt.Errorf("unmarshal duel %s: %w", duelIDs[i], err)
		}
		duels = append(duels, duel)
	}
	return duels, nil
}

func (s *DuelStore) Delete(ctx context.Context, duelID string) error {
	return s.client.HDel(ctx, duelRecordKey, duelID).Err()
}

func (s *DuelStore) ClaimAccept(ctx context.Context, duelID string) (bool, error) {
	return s.client.SetNX(ctx, "duel:"+duelID+":accepted", "1", 0).Result()
}

func (s *DuelStore) ClaimFinalize(ctx context.Context, duelID string) (bool, error) {
	return s.client.SetNX(ctx, "duel:"+duelID+":finalized", "1", 0).Result()
}

// RosterStore keeps the per-user duel id lists:
//
//	RPUSH user:{userID}:pending {duelID}   (and :active)
//	LPUSH user:{userID}:archive {duelID}   (reverse-chronological)
type RosterStore struct {
	client *redis.Client
}

func NewRosterStore(client *redis.Client) *RosterStore {
	return &RosterStore{client: client}
}

func (s *RosterStore) Add(ctx context.Context, roster app.Roster, userID, duelID string) error {
	if roster == app.RosterArchive {
		return s.client.LPush(ctx, rosterKey(roster, userID), duelID).Err()
	}
	return s.client.RPush(ctx, rosterKey(roster, userID), duelID).Err()
}

func (s *RosterStore) Remove(ctx context.Context, roster app.Roster, userID, duelID string) error {
	return s.client.LRem(ctx, rosterKey(roster, userID), 0, duelID).Err()
}

func (s *RosterStore) List(ctx context.Context, roster app.Roster, userID string) ([]string, error) {
	return s.client.LRange(ctx, rosterKey(roster, userID), 0, -1).Result()
}

func rosterKey(roster app.Roster, userID string) string {
	return "user:" + userID + ":" + string(roster)
}
