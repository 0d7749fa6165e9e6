package application

import (
	"context"
	"errors"
	"testing"
	"time"

	eventbus "github.com/bnema/locsim/internal/adapters/eventbus/memory"
	"github.com/bnema/locsim/internal/adapters/sessionhost/sim"
	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
	"github.com/bnema/locsim/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinatorRequiresCollaborators(t *testing.T) {
	t.Parallel()

	_, err := NewCoordinator(CoordinatorDeps{View: &recordingView{}, Bus: eventbus.NewBus()})
	assert.ErrorContains(t, err, "session host")

	_, err = NewCoordinator(CoordinatorDeps{Host: sim.NewHost(sim.Options{}), Bus: eventbus.NewBus()})
	assert.ErrorContains(t, err, "location view")

	_, err = NewCoordinator(CoordinatorDeps{Host: sim.NewHost(sim.Options{}), View: &recordingView{}})
	assert.ErrorContains(t, err, "event bus")
}

func TestHandOffScenario(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	assert.Empty(t, h.status(t).Devices)

	h.connect("A")
	assert.Equal(t, []domain.DeviceID{"A"}, h.status(t).Devices)

	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))
	status := h.status(t)
	assert.Equal(t, domain.DeviceID("A"), status.ActiveDevice)
	assert.Equal(t, domain.SessionActions(), enabledActions(status))
	assert.Empty(t, h.view.calls)

	h.connect("B")
	assert.Equal(t, []domain.DeviceID{"A", "B"}, h.status(t).Devices)

	require.NoError(t, h.coordinator.SelectDevice(ctx, 1))
	status = h.status(t)

	require.Len(t, status.Cached, 1)
	assert.Equal(t, domain.CachedLocation{DeviceID: "A", Coordinate: defaultLocation, UpdatedAt: testNow}, status.Cached[0])
	assert.Equal(t, []string{"will:A:none", "did:A:none"}, h.view.calls)
	assert.Equal(t, domain.DeviceID("B"), status.ActiveDevice)
	require.NotNil(t, status.Location)
	assert.Equal(t, defaultLocation, *status.Location)
	assert.Equal(t, domain.SessionActions(), enabledActions(status))
}

func TestHandOffQuiescesOutgoingSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.connect("A", "B")

	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))
	outgoing := h.activeSession(t)
	require.NoError(t, h.coordinator.SetLocation(ctx, domain.Coordinate{Latitude: 1, Longitude: 2}))
	_, err := h.coordinator.ToggleAutomove(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.MoveStateAutomatic, outgoing.MoveState())

	require.NoError(t, h.coordinator.SelectDevice(ctx, 1))

	assert.Equal(t, domain.MoveStateManual, outgoing.MoveState())

	// stale reports from the outgoing session must not reach the view
	h.view.reset()
	outgoing.ReportLocation(domain.Coordinate{Latitude: 9, Longitude: 9})
	assert.Empty(t, h.view.calls)

	cached := h.status(t).Cached
	require.Len(t, cached, 1)
	assert.Equal(t, domain.Coordinate{Latitude: 1, Longitude: 2}, cached[0].Coordinate)
}

func TestHandOffRestoresCachedLocation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.connect("A", "B")
	moved := domain.Coordinate{Latitude: 51.5, Longitude: -0.12}

	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))
	require.NoError(t, h.coordinator.SetLocation(ctx, moved))
	require.NoError(t, h.coordinator.SelectDevice(ctx, 1))

	h.view.reset()
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))

	assert.Equal(t, []string{
		"will:B:none",
		"did:B:none",
		"will:A:" + moved.String(),
		"did:A:" + moved.String(),
	}, h.view.calls)

	restored := h.activeSession(t)
	got, ok := restored.Location()
	require.True(t, ok)
	assert.Equal(t, moved, got)
	assert.Equal(t, domain.MoveStateManual, restored.MoveState())

	status := h.status(t)
	assert.Len(t, status.Cached, 2)
	assert.Equal(t, domain.SessionActions(), enabledActions(status))
}

func TestHandOffWithoutCacheSendsNoLocationSignal(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.connect("A")

	require.NoError(t, h.coordinator.SelectDevice(context.Background(), 0))

	assert.Empty(t, h.view.calls)
	assert.Equal(t, domain.MoveStateDisabled, h.activeSession(t).MoveState())
}

func TestReselectingActiveDeviceIsANoOp(t *testing.T) {
	t.Parallel()

	bus := eventbus.NewBus()
	host := mocks.NewMockSessionHost(t)
	view := mocks.NewMockLocationView(t)
	gate := &recordingGate{}

	sessionHost := sim.NewHost(sim.Options{DefaultLocation: &defaultLocation})
	sessionHost.MarkReachable("A", true)
	session, err := sessionHost.LoadSession(context.Background(), "A")
	require.NoError(t, err)

	host.EXPECT().CurrentSession().Return(nil, false).Once()
	host.EXPECT().LoadSession(mockAnyContext(), domain.DeviceID("A")).Return(session, nil).Once()

	coordinator, err := NewCoordinator(CoordinatorDeps{Host: host, View: view, Bus: bus, Source: &stubSource{}, Actions: gate})
	require.NoError(t, err)
	require.NoError(t, coordinator.Start(context.Background()))
	t.Cleanup(coordinator.Close)

	bus.Publish(ports.TopicDeviceConnected, domain.DeviceID("A"))
	require.NoError(t, coordinator.SelectDevice(context.Background(), 0))
	gate.events = nil

	require.NoError(t, coordinator.SelectDevice(context.Background(), 0))
	require.NoError(t, coordinator.SelectDevice(context.Background(), 0))

	status, err := coordinator.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.Cached)
	assert.Equal(t, domain.SessionActions(), enabledActions(status))
	assert.Equal(t, []string{
		"-setLocation", "-recentLocation", "+setLocation", "+recentLocation",
		"-setLocation", "-recentLocation", "+setLocation", "+recentLocation",
	}, gate.events)
	view.AssertNotCalled(t, "WillChangeLocation", mock.Anything, mock.Anything)
}

func TestActionsStayDisabledDuringHandOff(t *testing.T) {
	t.Parallel()

	bus := eventbus.NewBus()
	host := mocks.NewMockSessionHost(t)
	view := &recordingView{}

	sessionHost := sim.NewHost(sim.Options{})
	sessionHost.MarkReachable("A", true)
	sessionHost.MarkReachable("B", true)

	var coordinator *Coordinator
	host.EXPECT().CurrentSession().Return(nil, false).Once()
	host.EXPECT().LoadSession(mockAnyContext(), mock.AnythingOfType("domain.DeviceID")).
		RunAndReturn(func(ctx context.Context, id domain.DeviceID) (ports.Session, error) {
			// LoadSession runs on the executor, so the gate can be read directly
			for _, action := range domain.AllDependentActions() {
				assert.False(t, coordinator.actions.Enabled(action), "%s enabled during hand-off", action)
			}
			return sessionHost.LoadSession(ctx, id)
		}).Twice()

	var err error
	coordinator, err = NewCoordinator(CoordinatorDeps{Host: host, View: view, Bus: bus, Source: &stubSource{}})
	require.NoError(t, err)
	require.NoError(t, coordinator.Start(context.Background()))
	t.Cleanup(coordinator.Close)

	bus.Publish(ports.TopicDeviceConnected, domain.DeviceID("A"))
	bus.Publish(ports.TopicDeviceConnected, domain.DeviceID("B"))

	require.NoError(t, coordinator.SelectDevice(context.Background(), 0))
	require.NoError(t, coordinator.SelectDevice(context.Background(), 1))
}

func TestSessionLoadFailureLeavesNoActiveSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.connect("A", "B")

	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))

	// B is in the registry but the host no longer reaches it
	h.host.MarkReachable("B", false)
	err := h.coordinator.SelectDevice(ctx, 1)
	require.ErrorIs(t, err, domain.ErrSessionLoad)
	require.ErrorIs(t, err, domain.ErrDeviceNotFound)

	status := h.status(t)
	assert.False(t, status.HasSession())
	assert.Empty(t, enabledActions(status))
	require.Len(t, status.Cached, 1)
	assert.Equal(t, domain.DeviceID("A"), status.Cached[0].DeviceID)

	// retry after the device is reachable again
	h.host.MarkReachable("B", true)
	require.NoError(t, h.coordinator.SelectDevice(ctx, 1))
	assert.Equal(t, domain.DeviceID("B"), h.status(t).ActiveDevice)
}

func TestSelectDeviceOutOfRangePanics(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.connect("A")

	assert.Panics(t, func() { _ = h.coordinator.SelectDevice(context.Background(), 1) })

	// the coordinator keeps serving after the caller recovered
	assert.Equal(t, []domain.DeviceID{"A"}, h.status(t).Devices)
}

func TestNewSessionTakesSelectedMoveType(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.connect("A")

	require.NoError(t, h.coordinator.ChangeMoveType(ctx, 2, domain.ControlSecondary))
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))

	assert.Equal(t, domain.MoveTypeDrive, h.activeSession(t).MoveType())
}

func TestChangeMoveTypeSynchronisesControlsAndSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	primary := &fakeControl{}
	secondary := &fakeControl{}
	require.NoError(t, h.coordinator.AttachControl(ctx, domain.ControlPrimary, primary))
	require.NoError(t, h.coordinator.AttachControl(ctx, domain.ControlSecondary, secondary))

	// no session yet: propagation to the session is skipped silently
	secondary.ordinal = 1
	require.NoError(t, h.coordinator.ChangeMoveType(ctx, 1, domain.ControlSecondary))
	assert.Equal(t, 1, primary.ordinal)

	h.connect("A")
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))

	primary.ordinal = 2
	require.NoError(t, h.coordinator.ChangeMoveType(ctx, 2, domain.ControlPrimary))

	assert.Equal(t, 2, primary.ordinal)
	assert.Equal(t, 2, secondary.ordinal)
	assert.Equal(t, domain.MoveTypeDrive, h.activeSession(t).MoveType())
	assert.Equal(t, domain.MoveTypeDrive, h.status(t).MoveType)
}

func TestChangeMoveTypeInvalidOrdinalPanics(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	assert.Panics(t, func() { _ = h.coordinator.ChangeMoveType(context.Background(), 5, domain.ControlPrimary) })
}

func TestDisconnectOfActiveDeviceDropsSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.connect("A", "B")
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))

	h.bus.Publish(ports.TopicDeviceDisconnected, domain.DeviceID("A"))

	status := h.status(t)
	assert.Equal(t, []domain.DeviceID{"B"}, status.Devices)
	assert.False(t, status.HasSession())
	assert.Empty(t, enabledActions(status))
	require.Len(t, status.Cached, 1)
	assert.Equal(t, defaultLocation, status.Cached[0].Coordinate)

	// disconnecting an inactive device leaves the session alone
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))
	h.connect("C")
	h.bus.Publish(ports.TopicDeviceDisconnected, domain.DeviceID("C"))
	assert.Equal(t, domain.DeviceID("B"), h.status(t).ActiveDevice)
}

func TestResetLocation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.coordinator.ResetLocation(ctx))
	assert.Empty(t, h.view.calls)

	h.connect("A")
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))
	require.NoError(t, h.coordinator.SetLocation(ctx, domain.Coordinate{Latitude: 3, Longitude: 4}))
	h.view.reset()

	require.NoError(t, h.coordinator.ResetLocation(ctx))

	assert.Equal(t, []string{"will:A:none", "did:A:none"}, h.view.calls)
	status := h.status(t)
	assert.Nil(t, status.Location)
	assert.Equal(t, domain.MoveStateManual, status.MoveState)
	assert.Equal(t, domain.SessionActions(), enabledActions(status))
	assert.Empty(t, status.Cached)
}

func TestSetLocationEnablesMovement(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	target := domain.Coordinate{Latitude: 35.68, Longitude: 139.76}

	require.ErrorIs(t, h.coordinator.SetLocation(ctx, target), domain.ErrNoActiveSession)

	h.connect("A")
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))
	require.NoError(t, h.coordinator.SetLocation(ctx, target))

	assert.Equal(t, []string{"will:A:" + target.String(), "did:A:" + target.String()}, h.view.calls)
	status := h.status(t)
	assert.ElementsMatch(t, domain.AllDependentActions(), enabledActions(status))
	assert.Equal(t, domain.MoveStateManual, status.MoveState)
	require.NotNil(t, status.Location)
	assert.Equal(t, target, *status.Location)
}

func TestToggleAutomove(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	_, err := h.coordinator.ToggleAutomove(ctx)
	require.ErrorIs(t, err, domain.ErrNoActiveSession)

	h.connect("A")
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))

	// a default location exists but movement was never enabled
	_, err = h.coordinator.ToggleAutomove(ctx)
	require.ErrorIs(t, err, domain.ErrActionDisabled)

	require.NoError(t, h.coordinator.ResetLocation(ctx))
	_, err = h.coordinator.ToggleAutomove(ctx)
	require.ErrorIs(t, err, domain.ErrNoLocation)

	require.NoError(t, h.coordinator.SetLocation(ctx, defaultLocation))
	state, err := h.coordinator.ToggleAutomove(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MoveStateAutomatic, state)

	state, err = h.coordinator.ToggleAutomove(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MoveStateManual, state)
}

func TestToggleAutoFocusMirrorsIntoToggle(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	h.coordinator.ToggleAutoFocus(ctx, true)
	assert.True(t, h.status(t).AutoFocus)

	h.coordinator.ToggleAutoFocus(ctx, false)
	assert.False(t, h.status(t).AutoFocus)
	assert.Equal(t, []bool{true, false}, h.toggle.values)
}

func TestSpooferReportsReachViewWhileActive(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.connect("A")
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))

	moved := domain.Coordinate{Latitude: 10, Longitude: 20}
	h.activeSession(t).ReportLocation(moved)

	// Reports are posted to the executor; Status runs after them.
	status := h.status(t)
	assert.Equal(t, []string{"will:A:" + moved.String(), "did:A:" + moved.String()}, h.view.calls)
	assert.ElementsMatch(t, domain.AllDependentActions(), enabledActions(status))
}

func TestSessionEchoingSetLocationDoesNotDeadlock(t *testing.T) {
	t.Parallel()

	h := newHarnessWithHost(t, sim.Options{EchoSetLocation: true})
	ctx := context.Background()
	h.connect("A")
	require.NoError(t, h.coordinator.SelectDevice(ctx, 0))

	target := domain.Coordinate{Latitude: 1.5, Longitude: -2.25}
	done := make(chan error, 1)
	go func() {
		done <- h.coordinator.SetLocation(ctx, target)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("SetLocation did not return while the session echoed the move")
	}

	h.status(t)
	signal := target.String()
	assert.Equal(t, []string{"will:A:" + signal, "did:A:" + signal, "will:A:" + signal, "did:A:" + signal}, h.view.calls)
}

func TestStartAdoptsHostSession(t *testing.T) {
	t.Parallel()

	sessionHost := sim.NewHost(sim.Options{})
	sessionHost.MarkReachable("A", true)
	_, err := sessionHost.LoadSession(context.Background(), "A")
	require.NoError(t, err)

	coordinator, err := NewCoordinator(CoordinatorDeps{Host: sessionHost, View: &recordingView{}, Bus: eventbus.NewBus()})
	require.NoError(t, err)
	require.NoError(t, coordinator.Start(context.Background()))
	t.Cleanup(coordinator.Close)

	status, err := coordinator.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DeviceID("A"), status.ActiveDevice)
	assert.Equal(t, domain.SessionActions(), enabledActions(status))
}

func TestCloseDetachesFromBus(t *testing.T) {
	t.Parallel()

	bus := eventbus.NewBus()
	source := &stubSource{}
	coordinator, err := NewCoordinator(CoordinatorDeps{Host: sim.NewHost(sim.Options{}), View: &recordingView{}, Bus: bus, Source: source})
	require.NoError(t, err)
	require.NoError(t, coordinator.Start(context.Background()))

	coordinator.Close()

	topics := []string{ports.TopicDeviceConnected, ports.TopicDevicePaired, ports.TopicDeviceDisconnected, ports.TopicAutoFocusChanged}
	for _, topic := range topics {
		assert.Zero(t, bus.Subscribers(topic), topic)
	}
	assert.Equal(t, 1, source.stopped)
	assert.NotPanics(t, func() { bus.Publish(ports.TopicDeviceConnected, domain.DeviceID("late")) })

	_, err = coordinator.Status(context.Background())
	assert.ErrorIs(t, err, ErrExecutorStopped)
}

func TestCoordinatorInertWhenTransportFails(t *testing.T) {
	t.Parallel()

	bus := eventbus.NewBus()
	coordinator, err := NewCoordinator(CoordinatorDeps{
		Host:   sim.NewHost(sim.Options{}),
		View:   &recordingView{},
		Bus:    bus,
		Source: &stubSource{startErr: errors.New("no usb")},
	})
	require.NoError(t, err)
	require.NoError(t, coordinator.Start(context.Background()))
	t.Cleanup(coordinator.Close)

	bus.Publish(ports.TopicDeviceConnected, domain.DeviceID("A"))

	status, err := coordinator.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.Devices)
}
