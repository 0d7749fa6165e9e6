package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	eventbus "github.com/bnema/locsim/internal/adapters/eventbus/memory"
	"github.com/bnema/locsim/internal/adapters/sessionhost/sim"
	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type recordingView struct {
	calls []string
}

func (v *recordingView) WillChangeLocation(session ports.Session, target domain.Target) {
	v.calls = append(v.calls, fmt.Sprintf("will:%s:%s", session.DeviceID(), target))
}

func (v *recordingView) DidChangeLocation(session ports.Session, target domain.Target) {
	v.calls = append(v.calls, fmt.Sprintf("did:%s:%s", session.DeviceID(), target))
}

func (v *recordingView) reset() {
	v.calls = nil
}

type recordingToggle struct {
	values []bool
}

func (t *recordingToggle) SetAutoFocus(enabled bool) {
	t.values = append(t.values, enabled)
}

type stubSource struct {
	startErr error
	started  int
	stopped  int
	onStart  func()
}

func (s *stubSource) Start(context.Context) error {
	s.started++
	if s.startErr != nil {
		return s.startErr
	}
	if s.onStart != nil {
		s.onStart()
	}
	return nil
}

func (s *stubSource) Stop() error {
	s.stopped++
	return nil
}

type harness struct {
	bus         *eventbus.Bus
	host        *sim.Host
	view        *recordingView
	gate        *recordingGate
	toggle      *recordingToggle
	source      *stubSource
	coordinator *Coordinator
}

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

var defaultLocation = domain.Coordinate{Latitude: 37.3349, Longitude: -122.009}

func newHarness(t *testing.T) *harness {
	t.Helper()

	loc := defaultLocation
	return newHarnessWithHost(t, sim.Options{DefaultLocation: &loc})
}

func newHarnessWithHost(t *testing.T, opts sim.Options) *harness {
	t.Helper()

	h := &harness{
		bus:    eventbus.NewBus(),
		view:   &recordingView{},
		gate:   &recordingGate{},
		toggle: &recordingToggle{},
		source: &stubSource{},
	}
	h.host = sim.NewHost(opts)
	t.Cleanup(h.host.Track(h.bus))

	coordinator, err := NewCoordinator(CoordinatorDeps{
		Host:    h.host,
		View:    h.view,
		Bus:     h.bus,
		Source:  h.source,
		Actions: h.gate,
		Toggle:  h.toggle,
		Clock:   fixedClock{now: testNow},
	})
	require.NoError(t, err)
	require.NoError(t, coordinator.Start(context.Background()))
	t.Cleanup(coordinator.Close)

	h.coordinator = coordinator
	return h
}

func (h *harness) connect(ids ...domain.DeviceID) {
	for _, id := range ids {
		h.bus.Publish(ports.TopicDeviceConnected, id)
	}
}

func (h *harness) status(t *testing.T) Status {
	t.Helper()

	status, err := h.coordinator.Status(context.Background())
	require.NoError(t, err)
	return status
}

func (h *harness) activeSession(t *testing.T) *sim.Session {
	t.Helper()

	current, ok := h.host.CurrentSession()
	require.True(t, ok)
	return current.(*sim.Session)
}

func enabledActions(status Status) []domain.DependentAction {
	enabled := []domain.DependentAction{}
	for _, action := range status.Actions {
		if action.Enabled {
			enabled = append(enabled, action.Action)
		}
	}
	return enabled
}

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}
