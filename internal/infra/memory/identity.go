package memory

import (
	"context"
	"sync"
)

// IdentityProvider is an in-memory implementation of app.IdentityProvider,
// useful for tests and demos.
type IdentityProvider struct {
	mu            sync.Mutex
	boxes         map[string][]string
	ratings       map[string]int
	followers     map[string]int
	offlineScores map[string]int
}

func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{
		boxes:         make(map[string][]string),
		ratings:       make(map[string]int),
		followers:     make(map[string]int),
		offlineScores: make(map[string]int),
	}
}

// SetUser seeds a user's ranking inputs.
func (p *IdentityProvider) SetUser(userID string, boxes []string, followers, offlineScore int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.boxes[userID] = append([]string(nil), boxes...)
	p.followers[userID] = followers
	p.offlineScores[userID] = offlineScore
}

// SetRating seeds a box rating.
func (p *IdentityProvider) SetRating(boxID string, rating int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ratings[boxID] = rating
}

func (p *IdentityProvider) FollowerCount(_ context.Context, userID string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.followers[userID], nil
}

func (p *IdentityProvider) OwnedBoxes(_ context.Context, userID string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.boxes[userID]...), nil
}

func (p *IdentityProvider) BoxRating(_ context.Context, boxID string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ratings[boxID], nil
}

func (p *IdentityProvider) OfflineScore(_ context.Context, userID string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offlineScores[userID], nil
}
