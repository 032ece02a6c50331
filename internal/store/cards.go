package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/uptrace/bun"

	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/errors"
)

// UpsertAll inserts or replaces every card by ID in one transaction.
// Cards already stored under other IDs are left alone.
func (s *Store) UpsertAll(ctx context.Context, cs []cards.Card) error {
	if len(cs) == 0 {
		return nil
	}
	rows := toRows(cs)

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return upsert(ctx, tx, rows)
	})
	if err != nil {
		return errors.WrapStorage("upsert", err)
	}

	s.logger.Debug().Int("cards", len(rows)).Msg("Upserted cards")
	return nil
}

// ReplaceAll makes the table hold exactly cs, in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, cs []cards.Card) error {
	rows := toRows(cs)

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*cardRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return upsert(ctx, tx, rows)
	})
	if err != nil {
		return errors.WrapStorage("replace", err)
	}

	s.logger.Debug().Int("cards", len(rows)).Msg("Replaced cards")
	return nil
}

func upsert(ctx context.Context, tx bun.Tx, rows []cardRow) error {
	q := tx.NewInsert().Model(&rows).On("CONFLICT (id) DO UPDATE")
	for _, col := range upsertColumns {
		q = q.Set("? = EXCLUDED.?", bun.Ident(col), bun.Ident(col))
	}
	_, err := q.Exec(ctx)
	return err
}

// GetAll returns every cached card ordered by name, then ID.
func (s *Store) GetAll(ctx context.Context) ([]cards.Card, error) {
	var rows []cardRow
	err := s.db.NewSelect().
		Model(&rows).
		OrderExpr("c.name ASC, c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WrapStorage("select", err)
	}

	out := make([]cards.Card, len(rows))
	for i, r := range rows {
		out[i] = r.toCard()
	}
	return out, nil
}

// GetByID looks up one card. A missing card returns ok == false and no error.
func (s *Store) GetByID(ctx context.Context, id string) (cards.Card, bool, error) {
	var row cardRow
	err := s.db.NewSelect().
		Model(&row).
		Where("c.id = ?", id).
		Limit(1).
		Scan(ctx)
	if stderrors.Is(err, sql.ErrNoRows) {
		return cards.Card{}, false, nil
	}
	if err != nil {
		return cards.Card{}, false, errors.WrapStorage("select", err)
	}
	return row.toCard(), true, nil
}

// Count returns the number of cached cards.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.db.NewSelect().Model((*cardRow)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.WrapStorage("count", err)
	}
	return n, nil
}

// Clear deletes every cached card.
func (s *Store) Clear(ctx context.Context) error {
	res, err := s.db.NewDelete().Model((*cardRow)(nil)).Where("1 = 1").Exec(ctx)
	if err != nil {
		return errors.WrapStorage("clear", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		s.logger.Debug().Int64("cards", n).Msg("Cleared card store")
	}
	return nil
}
