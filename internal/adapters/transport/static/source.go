package static

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

var errNoDevices = errors.New("no static devices configured")

// Source announces a fixed device list as connected when started, and as
// disconnected when stopped.
type Source struct {
	bus     ports.EventBus
	devices []domain.DeviceID

	mu      sync.Mutex
	started bool
}

var _ ports.NotificationSource = (*Source)(nil)

func NewSource(bus ports.EventBus, devices []string) *Source {
	ids := make([]domain.DeviceID, 0, len(devices))
	for _, device := range devices {
		trimmed := strings.TrimSpace(device)
		if trimmed == "" {
			continue
		}
		ids = append(ids, domain.DeviceID(trimmed))
	}

	return &Source{bus: bus, devices: ids}
}

func (s *Source) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(s.devices) == 0 {
		return errNoDevices
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	for _, id := range s.devices {
		ports.PublishDeviceEvent(s.bus, domain.DeviceEvent{Kind: domain.DeviceConnected, DeviceID: id})
	}
	return nil
}

func (s *Source) Stop() error {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()

	if !started {
		return nil
	}
	for _, id := range s.devices {
		ports.PublishDeviceEvent(s.bus, domain.DeviceEvent{Kind: domain.DeviceDisconnected, DeviceID: id})
	}
	return nil
}

func (s *Source) Devices() []domain.DeviceID {
	return append([]domain.DeviceID(nil), s.devices...)
}
