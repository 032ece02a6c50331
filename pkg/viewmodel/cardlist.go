// Package viewmodel holds presentation state for a card browsing UI: the
// card list, a loading flag and an error message, each an observable Signal.
package viewmodel

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/errors"
	"github.com/agentstation/cardmap/pkg/logging"
)

// Service is the catalog the card list loads from.
type Service interface {
	Cached(ctx context.Context) ([]cards.Card, error)
	CachedByID(ctx context.Context, id string) (cards.Card, bool, error)
	Refresh(ctx context.Context, credential string) ([]cards.Card, error)
}

// CardList is the presentation state of the card list screen.
type CardList struct {
	service    Service
	credential string
	logger     *zerolog.Logger

	cards   *Signal[[]cards.Card]
	loading *Signal[bool]
	err     *Signal[string]

	ctx      context.Context
	cancel   context.CancelFunc
	closed   atomic.Bool
	inflight conc.WaitGroup
}

type options struct {
	dispatch Dispatcher
	logger   *zerolog.Logger
}

// Option configures a CardList.
type Option func(*options)

// WithDispatcher sets how subscriber callbacks are invoked.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) { o.dispatch = d }
}

// WithLogger sets the card list logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a CardList and starts its first Load.
func New(service Service, credential string, opts ...Option) *CardList {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &CardList{
		service:    service,
		credential: credential,
		logger:     o.logger,
		cards:      NewSignal[[]cards.Card](nil, o.dispatch),
		loading:    NewSignal(false, o.dispatch),
		err:        NewSignal("", o.dispatch),
		ctx:        ctx,
		cancel:     cancel,
	}
	v.Load()
	return v
}

// Cards is the card list shown to the user.
func (v *CardList) Cards() *Signal[[]cards.Card] { return v.cards }

// Loading is true while a refresh is in flight.
func (v *CardList) Loading() *Signal[bool] { return v.loading }

// Error is the message to show, or "" for none.
func (v *CardList) Error() *Signal[string] { return v.err }

// Load shows the cached cards right away, then refreshes from the remote
// catalog in the background. A failed refresh only surfaces an error when
// there were no cached cards to show.
//
// No lock is held while subscribers run, so a callback may call Close; the
// rest of the load is then dropped.
func (v *CardList) Load() {
	if v.closed.Load() {
		return
	}

	v.loading.publish(true)
	v.err.publish("")

	cached, err := v.service.Cached(v.ctx)
	if err != nil {
		v.logger.Warn().Err(err).Msg("Reading cached cards failed")
		cached = nil
	}
	v.cards.publish(cached)

	v.inflight.Go(func() {
		fresh, err := v.service.Refresh(v.ctx, v.credential)
		// Close may land at any point below; publish re-checks it before
		// each step and the disposed signals drop the rest.
		publish := func(step func() bool) {
			if !v.closed.Load() {
				step()
			}
		}
		switch {
		case err == nil:
			publish(func() bool { return v.cards.publish(fresh) })
		case len(cached) == 0:
			publish(func() bool { return v.err.publish(errors.Message(err)) })
		default:
			v.logger.Info().Err(err).Int("cached", len(cached)).Msg("Refresh failed, showing cached cards")
		}
		publish(func() bool { return v.loading.publish(false) })
	})
}

// CardByID returns a cached card for the detail screen.
func (v *CardList) CardByID(ctx context.Context, id string) (cards.Card, bool, error) {
	return v.service.CachedByID(ctx, id)
}

// Wait blocks until every Load started so far has finished.
func (v *CardList) Wait() {
	v.inflight.Wait()
}

// Close abandons in-flight refreshes and disposes the signals. Deliveries
// that have not reached their subscriber yet are dropped, including the
// rest of a publication whose earlier callback called Close. It may be
// called from inside a callback and more than once.
func (v *CardList) Close() {
	if v.closed.Swap(true) {
		return
	}
	v.cancel()
	v.cards.dispose()
	v.loading.dispose()
	v.err.dispose()
}
