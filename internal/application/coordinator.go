package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

var errMissingDependency = errors.New("missing coordinator dependency")

type CoordinatorDeps struct {
	Host    ports.SessionHost
	View    ports.LocationView
	Bus     ports.EventBus
	Source  ports.NotificationSource
	Actions ports.ActionGate
	Toggle  ports.AutoFocusToggle
	Clock   ports.Clock
	Logger  *slog.Logger

	InitialMoveType domain.MoveType
}

// Coordinator owns the device registry, the location cache and the reference
// to the active session, and runs the device hand-off. Every exported method
// executes atomically on the coordinator's executor.
type Coordinator struct {
	host     ports.SessionHost
	view     ports.LocationView
	bus      ports.EventBus
	clock    ports.Clock
	logger   *slog.Logger
	exec     *Executor
	listener *NotificationListener

	registry *domain.DeviceRegistry
	cache    *domain.LocationCache
	actions  *ActionGate
	selector *MoveTypeSelector
	session  ports.Session
	relay    *sessionRelay
}

func NewCoordinator(deps CoordinatorDeps) (*Coordinator, error) {
	if deps.Host == nil {
		return nil, fmt.Errorf("%w: session host", errMissingDependency)
	}
	if deps.View == nil {
		return nil, fmt.Errorf("%w: location view", errMissingDependency)
	}
	if deps.Bus == nil {
		return nil, fmt.Errorf("%w: event bus", errMissingDependency)
	}

	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Coordinator{
		host:     deps.Host,
		view:     deps.View,
		bus:      deps.Bus,
		clock:    clock,
		logger:   logger,
		exec:     NewExecutor(),
		registry: domain.NewDeviceRegistry(),
		cache:    domain.NewLocationCache(),
		actions:  NewActionGate(deps.Actions),
		selector: NewMoveTypeSelector(deps.InitialMoveType),
	}
	c.relay = &sessionRelay{coordinator: c}
	c.selector.OnSelect(c.forwardMoveType)
	c.listener = NewNotificationListener(ListenerDeps{
		Bus:       deps.Bus,
		Source:    deps.Source,
		Executor:  c.exec,
		Registry:  c.registry,
		Toggle:    deps.Toggle,
		Logger:    logger,
		OnRemoved: c.deviceRemoved,
	})

	return c, nil
}

// Start runs the executor, adopts a session the host may already hold and
// begins listening for notifications.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.exec.Start(); err != nil {
		return fmt.Errorf("start executor: %w", err)
	}

	err := c.exec.Do(ctx, func() {
		session, ok := c.host.CurrentSession()
		if !ok {
			return
		}
		c.logger.Info("adopting current session", "session", session.ID(), "device", session.DeviceID())
		c.session = session
		session.Observe(c.relay)
		c.actions.EnableAll(domain.SessionActions()...)
	})
	if err != nil {
		c.exec.Stop()
		return fmt.Errorf("adopt current session: %w", err)
	}

	c.listener.Start(ctx)
	return nil
}

// Close unsubscribes every listener before the executor goes away, so no
// notification can reach a stopped coordinator.
func (c *Coordinator) Close() {
	c.listener.Close()
	c.exec.Stop()
}

// AttachControl binds a move-type widget and renders the current selection.
func (c *Coordinator) AttachControl(ctx context.Context, name domain.Control, widget ports.MoveTypeControl) error {
	return c.exec.Do(ctx, func() {
		c.selector.Attach(name, widget)
	})
}

// SelectDevice hands the active session over to the device at index. An
// index outside the registry panics.
func (c *Coordinator) SelectDevice(ctx context.Context, index int) error {
	var err error
	if doErr := c.exec.Do(ctx, func() { err = c.selectDevice(ctx, index) }); doErr != nil {
		return doErr
	}
	return err
}

func (c *Coordinator) selectDevice(ctx context.Context, index int) error {
	c.actions.DisableAll(domain.AllDependentActions()...)

	id, err := c.registry.At(index)
	if err != nil {
		panic(fmt.Errorf("select device: %w", err))
	}

	if old := c.session; old != nil {
		if old.DeviceID() == id {
			c.actions.EnableAll(domain.SessionActions()...)
			return nil
		}

		c.quiesce(old)
		c.view.WillChangeLocation(old, domain.NoTarget)
		c.view.DidChangeLocation(old, domain.NoTarget)
	}

	session, err := c.host.LoadSession(ctx, id)
	if err != nil {
		c.session = nil
		c.logger.Warn("session load failed", "device", id, "err", err)
		return fmt.Errorf("%w for %s: %w", domain.ErrSessionLoad, id, err)
	}
	c.session = session

	moveType := c.selector.Current()
	if !moveType.Valid() {
		moveType = domain.MoveTypeWalk
	}
	session.SetMoveType(moveType)

	if cached, ok := c.cache.Get(id); ok {
		session.SetLocation(cached)
		c.view.WillChangeLocation(session, domain.TargetAt(cached))
		c.view.DidChangeLocation(session, domain.TargetAt(cached))
		session.SetMoveState(domain.MoveStateManual)
	}

	session.Observe(c.relay)
	c.actions.EnableAll(domain.SessionActions()...)
	c.logger.Info("device selected", "device", id, "session", session.ID())

	return nil
}

// quiesce halts the outgoing session, cuts its callbacks and remembers where
// it was.
func (c *Coordinator) quiesce(session ports.Session) {
	session.SetMoveState(domain.MoveStateManual)
	session.DetachObserver()

	if location, ok := session.Location(); ok {
		c.cache.Set(session.DeviceID(), location, c.clock.Now())
	}
}

// deviceRemoved runs on the executor after a disconnect removed id.
func (c *Coordinator) deviceRemoved(id domain.DeviceID) {
	if c.session == nil || c.session.DeviceID() != id {
		return
	}

	c.logger.Info("active device disconnected", "device", id, "session", c.session.ID())
	c.quiesce(c.session)
	c.session = nil
	c.actions.DisableAll(domain.AllDependentActions()...)
}

func (c *Coordinator) ChangeMoveType(ctx context.Context, ordinal int, origin domain.Control) error {
	return c.exec.Do(ctx, func() {
		c.selector.Change(ordinal, origin)
	})
}

func (c *Coordinator) forwardMoveType(moveType domain.MoveType) {
	if c.session == nil {
		return
	}
	c.session.SetMoveType(moveType)
}

// ResetLocation clears the active session's location. Without a session it
// does nothing.
func (c *Coordinator) ResetLocation(ctx context.Context) error {
	return c.exec.Do(ctx, func() {
		session := c.session
		if session == nil {
			return
		}

		session.SetMoveState(domain.MoveStateManual)
		c.view.WillChangeLocation(session, domain.NoTarget)
		session.ClearLocation()
		c.view.DidChangeLocation(session, domain.NoTarget)
		c.actions.DisableAll(domain.MovementActions()...)
	})
}

func (c *Coordinator) SetLocation(ctx context.Context, coordinate domain.Coordinate) error {
	var err error
	doErr := c.exec.Do(ctx, func() {
		session := c.session
		if session == nil {
			err = domain.ErrNoActiveSession
			return
		}
		if !c.actions.Enabled(domain.ActionSetLocation) {
			err = fmt.Errorf("%w: %s", domain.ErrActionDisabled, domain.ActionSetLocation)
			return
		}

		c.moveTo(session, coordinate)
		session.SetMoveState(domain.MoveStateManual)
	})
	if doErr != nil {
		return doErr
	}
	return err
}

func (c *Coordinator) moveTo(session ports.Session, coordinate domain.Coordinate) {
	target := domain.TargetAt(coordinate)
	c.view.WillChangeLocation(session, target)
	session.SetLocation(coordinate)
	c.view.DidChangeLocation(session, target)
	c.actions.EnableAll(domain.MovementActions()...)
}

// ToggleAutomove flips the active session between manual and automatic
// movement and returns the new state.
func (c *Coordinator) ToggleAutomove(ctx context.Context) (domain.MoveState, error) {
	var (
		state domain.MoveState
		err   error
	)
	doErr := c.exec.Do(ctx, func() {
		session := c.session
		if session == nil {
			err = domain.ErrNoActiveSession
			return
		}
		if _, ok := session.Location(); !ok {
			err = domain.ErrNoLocation
			return
		}
		if !c.actions.Enabled(domain.ActionToggleAutomove) {
			err = fmt.Errorf("%w: %s", domain.ErrActionDisabled, domain.ActionToggleAutomove)
			return
		}

		state = domain.MoveStateAutomatic
		if session.MoveState() == domain.MoveStateAutomatic {
			state = domain.MoveStateManual
		}
		session.SetMoveState(state)
	})
	if doErr != nil {
		return "", doErr
	}
	return state, err
}

// ToggleAutoFocus publishes the preference; the listener mirrors it into the
// toggle. It must not be called from inside the executor.
func (c *Coordinator) ToggleAutoFocus(_ context.Context, enabled bool) {
	c.bus.Publish(ports.TopicAutoFocusChanged, enabled)
}

// sessionRelay forwards spoofer-reported locations of the active session to
// the view. Reports from a session that is no longer active are dropped. The
// work is posted rather than awaited because a session may report from inside
// SetLocation, which already runs on the executor.
type sessionRelay struct {
	coordinator *Coordinator
}

var _ ports.SessionObserver = (*sessionRelay)(nil)

func (r *sessionRelay) SessionLocationChanged(session ports.Session, coordinate domain.Coordinate) {
	c := r.coordinator
	err := c.exec.Post(func() {
		if c.session == nil || c.session != session {
			return
		}
		target := domain.TargetAt(coordinate)
		c.view.WillChangeLocation(session, target)
		c.view.DidChangeLocation(session, target)
		c.actions.EnableAll(domain.MovementActions()...)
	})
	if err != nil {
		c.logger.Warn("drop session location report", "session", session.ID(), "err", err)
	}
}
