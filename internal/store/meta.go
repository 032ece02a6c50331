package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/agentstation/utc"
	"github.com/uptrace/bun"

	"github.com/agentstation/cardmap/pkg/errors"
)

const (
	metaSyncedAt  = "synced_at"
	metaSyncCount = "sync_count"
)

// SyncInfo describes the last successful refresh.
type SyncInfo struct {
	SyncedAt utc.Time `json:"synced_at" yaml:"synced_at"`
	Count    int      `json:"count" yaml:"count"`
}

// RecordSync stores info as the last successful refresh.
func (s *Store) RecordSync(ctx context.Context, info SyncInfo) error {
	rows := []metaRow{
		{Key: metaSyncedAt, Value: info.SyncedAt.Time.UTC().Format(time.RFC3339Nano)},
		{Key: metaSyncCount, Value: strconv.Itoa(info.Count)},
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (meta_key) DO UPDATE").
		Set("meta_value = EXCLUDED.meta_value").
		Exec(ctx)
	return errors.WrapStorage("record sync", err)
}

// LastSync returns the last recorded refresh. ok is false if none was recorded.
func (s *Store) LastSync(ctx context.Context) (SyncInfo, bool, error) {
	var rows []metaRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("m.meta_key IN (?)", bun.In([]string{metaSyncedAt, metaSyncCount})).
		Scan(ctx)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return SyncInfo{}, false, errors.WrapStorage("last sync", err)
	}

	var info SyncInfo
	found := false
	for _, r := range rows {
		switch r.Key {
		case metaSyncedAt:
			t, err := time.Parse(time.RFC3339Nano, r.Value)
			if err != nil {
				return SyncInfo{}, false, errors.WrapParse("time", metaSyncedAt, err)
			}
			info.SyncedAt = utc.Time{Time: t}
			found = true
		case metaSyncCount:
			n, err := strconv.Atoi(r.Value)
			if err != nil {
				return SyncInfo{}, false, errors.WrapParse("int", metaSyncCount, err)
			}
			info.Count = n
		}
	}
	return info, found, nil
}
