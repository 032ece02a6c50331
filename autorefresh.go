package cardmap

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agentstation/cardmap/pkg/constants"
	"github.com/agentstation/cardmap/pkg/errors"
)

// AutoRefreshOn refreshes the cache every interval until AutoRefreshOff.
// Calling it again restarts the schedule.
func (s *Service) AutoRefreshOn(credential string, interval time.Duration) error {
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "interval",
			Value:   interval,
			Message: "refresh interval must be positive",
		}
	}

	s.AutoRefreshOff()

	s.autoMu.Lock()
	defer s.autoMu.Unlock()

	stop := make(chan struct{})
	ticker := time.NewTicker(interval)
	s.autoStop = stop
	s.autoTicker = ticker

	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), constants.RefreshTimeout)
				_, err := s.Refresh(ctx, credential)
				cancel()
				if err != nil && !stderrors.Is(err, context.Canceled) {
					s.logger.Error().Err(err).Msg("Auto-refresh failed")
				}
			case <-stop:
				return
			}
		}
	}()

	s.logger.Debug().Dur("interval", interval).Msg("Auto-refresh on")
	return nil
}

// AutoRefreshOff stops automatic refreshes. It is safe to call when off.
func (s *Service) AutoRefreshOff() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()

	if s.autoTicker != nil {
		s.autoTicker.Stop()
		s.autoTicker = nil
	}
	if s.autoStop != nil {
		close(s.autoStop)
		s.autoStop = nil
	}
}
