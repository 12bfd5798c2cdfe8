package finance

import (
	"context"

	"github.com/eddieyong/financetracker/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// SetError shows message until errorTTL passes. A newer call replaces both the message
// and the pending clear, so the clear is always timed from the latest call.
func (s *StoreImpl) SetError(ctx context.Context, message string) {
	s.mu.Lock()
	s.errorMessage = message
	s.errorGen++
	gen := s.errorGen
	if s.errorTimer != nil {
		s.errorTimer.Stop()
	}
	s.errorTimer = s.clock.AfterFunc(s.errorTTL, func() {
		s.clearError(context.WithoutCancel(ctx), gen)
	})
	s.commitLocked(ctx)
	s.mu.Unlock()

	log.Debugf("Error set: %s", message)
	s.publish(ctx, event_bus.ErrorSetType, event_bus.ErrorSet{Message: message})
}

func (s *StoreImpl) clearError(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if gen != s.errorGen {
		s.mu.Unlock()
		return
	}
	message := s.errorMessage
	s.errorMessage = ""
	s.errorTimer = nil
	s.mu.Unlock()

	s.publish(ctx, event_bus.ErrorClearedType, event_bus.ErrorCleared{Message: message})
}
