package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/locsim/internal/ports"
)

// Source starts the primary notification source and falls back to the
// second one when the primary cannot deliver events.
type Source struct {
	primary  ports.NotificationSource
	fallback ports.NotificationSource

	mu     sync.Mutex
	active ports.NotificationSource
}

var _ ports.NotificationSource = (*Source)(nil)

var (
	errNilPrimarySource  = errors.New("primary notification source is nil")
	errNilFallbackSource = errors.New("fallback notification source is nil")
)

func NewSource(primary ports.NotificationSource, fallback ports.NotificationSource) *Source {
	source, err := NewSourceChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return source
}

func NewSourceChecked(primary ports.NotificationSource, fallback ports.NotificationSource) (*Source, error) {
	if primary == nil {
		return nil, errNilPrimarySource
	}
	if fallback == nil {
		return nil, errNilFallbackSource
	}

	return &Source{primary: primary, fallback: fallback}, nil
}

func (s *Source) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil
	}

	err := s.primary.Start(ctx)
	if err == nil {
		s.active = s.primary
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Start(ctx)
	if fallbackErr == nil {
		s.active = s.fallback
		return nil
	}

	return fmt.Errorf("primary source start failed: %w; fallback source start failed: %w", err, fallbackErr)
}

func (s *Source) Stop() error {
	s.mu.Lock()
	active := s.active
	s.active = nil
	s.mu.Unlock()

	if active == nil {
		return nil
	}
	return active.Stop()
}

// Active reports which source delivered events after Start, or nil.
func (s *Source) Active() ports.NotificationSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
