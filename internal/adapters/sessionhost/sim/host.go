package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
	"github.com/google/uuid"
)

type Options struct {
	// DefaultLocation is given to every freshly loaded session. Nil leaves
	// new sessions without a location.
	DefaultLocation *domain.Coordinate
	// EchoSetLocation makes sessions notify their observer synchronously
	// from SetLocation, the way engines that confirm every move behave.
	EchoSetLocation bool
}

// Host is an in-process session host. It only loads sessions for devices it
// has seen connect and not yet disconnect.
type Host struct {
	mu        sync.Mutex
	opts      Options
	reachable map[domain.DeviceID]bool
	current   *Session
	loads     int
}

var _ ports.SessionHost = (*Host)(nil)

func NewHost(opts Options) *Host {
	return &Host{opts: opts, reachable: map[domain.DeviceID]bool{}}
}

// Track follows device lifecycle topics on bus. The returned func removes
// the subscriptions.
func (h *Host) Track(bus ports.EventBus) func() {
	subs := []ports.Subscription{
		bus.Subscribe(ports.TopicDeviceConnected, func(payload any) { h.setReachable(payload, true) }),
		bus.Subscribe(ports.TopicDevicePaired, func(payload any) { h.setReachable(payload, true) }),
		bus.Subscribe(ports.TopicDeviceDisconnected, func(payload any) { h.setReachable(payload, false) }),
	}

	return func() {
		for _, sub := range subs {
			bus.Unsubscribe(sub)
		}
	}
}

func (h *Host) MarkReachable(id domain.DeviceID, reachable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if reachable {
		h.reachable[id] = true
		return
	}

	delete(h.reachable, id)
	if h.current != nil && h.current.deviceID == id {
		h.current.DetachObserver()
		h.current = nil
	}
}

func (h *Host) setReachable(payload any, reachable bool) {
	var id domain.DeviceID
	switch v := payload.(type) {
	case domain.DeviceID:
		id = v
	case string:
		id = domain.DeviceID(v)
	default:
		return
	}
	h.MarkReachable(id, reachable)
}

func (h *Host) LoadSession(ctx context.Context, id domain.DeviceID) (ports.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.loads++
	if !h.reachable[id] {
		return nil, fmt.Errorf("load session for %s: %w", id, domain.ErrDeviceNotFound)
	}

	session := newSession(uuid.NewString(), id)
	session.echo = h.opts.EchoSetLocation
	if h.opts.DefaultLocation != nil {
		session.location = *h.opts.DefaultLocation
		session.hasLocation = true
	}

	if h.current != nil {
		h.current.DetachObserver()
	}
	h.current = session

	return session, nil
}

func (h *Host) CurrentSession() (ports.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return nil, false
	}
	return h.current, true
}

// Loads counts LoadSession calls, failed ones included.
func (h *Host) Loads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loads
}
