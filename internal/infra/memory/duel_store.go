package memory

import (
	"context"
	"sync"

	"github.com/AlexRzehak/FlashBoxFactory/internal/app"
	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
)

// DuelStore is an in-memory implementation of app.DuelStore.
type DuelStore struct {
	mu        sync.Mutex
	duels     map[string]domain.Duel
	accepted  map[string]bool
	finalized map[string]bool
}

func NewDuelStore() *DuelStore {
	return &DuelStore{
		duels:     make(map[string]domain.Duel),
		accepted:  make(map[string]bool),
		finalized: make(map[string]bool),
	}
}

func (s *DuelStore) Put(_ context.Context, duel domain.Duel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duels[duel.ID] = copyDuel(duel)
	return nil
}

func (s *DuelStore) Get(_ context.Context, duelID string) (domain.Duel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	duel, ok := s.duels[duelID]
	if !ok {
		return domain.Duel{}, domain.ErrNotFound
	}
	return copyDuel(duel), nil
}

func (s *DuelStore) GetMany(_ context.Context, duelIDs []string) ([]domain.Duel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	duels := make([]domain.Duel, 0, len(duelIDs))
	for _, id := range duelIDs {
		if duel, ok := s.duels[id]; ok {
			duels = append(duels, copyDuel(duel))
		}
	}
	return duels, nil
}

func (s *DuelStore) Delete(_ context.Context, duelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.duels, duelID)
	return nil
}

func (s *DuelStore) ClaimAccept(_ context.Context, duelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accepted[duelID] {
		return false, nil
	}
	s.accepted[duelID] = true
	return true, nil
}

func (s *DuelStore) ClaimFinalize(_ context.Context, duelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized[duelID] {
		return false, nil
	}
	s.finalized[duelID] = true
	return true, nil
}

// copyDuel detaches the cards slice so callers cannot mutate stored state.
func copyDuel(duel domain.Duel) domain.Duel {
	cards := make([]domain.Card, len(duel.Cards))
	copy(cards, duel.Cards)
	for i := range cards {
		answers := make([]string, len(cards[i].Answers))
		copy(answers, cards[i].Answers)
		cards[i].Answers = answers
	}
	duel.Cards = cards
	if duel.FinishTime != nil {
		finished := *duel.FinishTime
		duel.FinishTime = &finished
	}
	return duel
}

// RosterStore is an in-memory implementation of app.RosterStore.
type RosterStore struct {
	mu    sync.Mutex
	lists map[string][]string
}

func NewRosterStore() *RosterStore {
	return &RosterStore{lists: make(map[string][]string)}
}

func (s *RosterStore) Add(_ context.Context, roster app.Roster, userID, duelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := rosterKey(roster, userID)
	if roster == app.RosterArchive {
		// newest first, matching reverse-chronological retrieval
		s.lists[key] = append([]string{duelID}, s.lists[key]...)
		return nil
	}
	s.lists[key] = append(s.lists[key], duelID)
	return nil
}

func (s *RosterStore) Remove(_ context.Context, roster app.Roster, userID, duelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := rosterKey(roster, userID)
	kept := s.lists[key][:0]
	for _, id := range s.lists[key] {
		if id != duelID {
			kept = append(kept, id)
		}
	}
	s.lists[key] = kept
	return nil
}

func (s *RosterStore) List(_ context.Context, roster app.Roster, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.lists[rosterKey(roster, userID)]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func rosterKey(roster app.Roster, userID string) string {
	return userID + ":" + string(roster)
}
