package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BoxLoader loads card box content from the platform's Postgres catalog.
// Cards live as a JSONB array in the cardboxes table.
type BoxLoader struct {
	pool *pgxpool.Pool
}

func NewBoxLoader(pool *pgxpool.Pool) *BoxLoader {
	return &BoxLoader{pool: pool}
}

func (l *BoxLoader) LoadBox(ctx context.Context, boxID string) (domain.BoxSnapshot, error) {
	var (
		name string
		raw  []byte
	)
	err := l.pool.QueryRow(ctx,
		`SELECT name, cards FROM cardboxes WHERE id=$1`, boxID).Scan(&name, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.BoxSnapshot{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.BoxSnapshot{}, fmt.Errorf("load box %s: %w", boxID, err)
	}

	var cards []domain.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return domain.BoxSnapshot{}, fmt.Errorf("unmarshal cards of box %s: %w", boxID, err)
	}
	return domain.BoxSnapshot{BoxID: boxID, Name: name, Cards: cards}, nil
}
