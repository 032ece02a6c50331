package cardmap

import (
	"context"
	"slices"

	"github.com/agentstation/utc"

	"github.com/agentstation/cardmap/internal/store"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/constants"
)

// Refresh fetches the first catalog page and writes it to the store. On any
// fetch error the store is left untouched and the error is returned as is.
//
// In RefreshSingleFlight mode (the default) a call that overlaps an in-flight
// refresh for the same credential waits for it and returns its result. ctx
// only limits how long this caller waits. The shared fetch keeps the values
// of the caller that started it but not its cancellation, and is bounded by
// constants.RefreshTimeout instead, so one caller giving up does not fail
// the others.
func (s *Service) Refresh(ctx context.Context, credential string) ([]cards.Card, error) {
	if s.config.refreshMode == RefreshRacing {
		return s.refresh(ctx, credential)
	}

	ch := s.group.DoChan(credential, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.RefreshTimeout)
		defer cancel()
		return s.refresh(shared, credential)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug().Msg("Joined in-flight refresh")
		}
		return slices.Clone(res.Val.([]cards.Card)), nil
	}
}

func (s *Service) refresh(ctx context.Context, credential string) ([]cards.Card, error) {
	page, err := s.fetcher.FetchPage(ctx, credential, constants.DefaultPage, s.config.pageSize)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Catalog refresh failed, keeping cached cards")
		return nil, err
	}
	fetched := page.Cards

	var before []cards.Card
	if s.hooks.registered() {
		if before, err = s.store.GetAll(ctx); err != nil {
			return nil, err
		}
	}

	if s.config.syncMode == SyncMirror {
		err = s.store.ReplaceAll(ctx, fetched)
	} else {
		err = s.store.UpsertAll(ctx, fetched)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Writing refreshed cards failed")
		return nil, err
	}
	s.invalidate()

	if rec, ok := s.store.(SyncRecorder); ok {
		info := store.SyncInfo{SyncedAt: utc.Time{Time: s.config.now().UTC()}, Count: len(fetched)}
		if err := rec.RecordSync(ctx, info); err != nil {
			s.logger.Warn().Err(err).Msg("Recording sync time failed")
		}
	}

	if s.hooks.registered() {
		s.hooks.trigger(before, fetched, s.config.syncMode == SyncMirror)
	}

	s.logger.Info().
		Int("cards", len(fetched)).
		Int("total_remote", page.TotalCount).
		Str("mode", string(s.config.syncMode)).
		Msg("Refreshed card cache")
	return fetched, nil
}

// SearchRemote runs query against the remote catalog's search variant and
// returns the first page of matches. Results are not written to the store.
func (s *Service) SearchRemote(ctx context.Context, credential, query string) ([]cards.Card, error) {
	page, err := s.fetcher.Search(ctx, credential, query, constants.DefaultPage, s.config.pageSize)
	if err != nil {
		return nil, err
	}
	return page.Cards, nil
}
