package sim

import (
	"sync"

	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

type Session struct {
	mu          sync.Mutex
	id          string
	deviceID    domain.DeviceID
	location    domain.Coordinate
	hasLocation bool
	moveType    domain.MoveType
	moveState   domain.MoveState
	observer    ports.SessionObserver
	echo        bool
}

var _ ports.Session = (*Session)(nil)

func newSession(id string, deviceID domain.DeviceID) *Session {
	return &Session{
		id:        id,
		deviceID:  deviceID,
		moveType:  domain.MoveTypeWalk,
		moveState: domain.MoveStateDisabled,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) DeviceID() domain.DeviceID {
	return s.deviceID
}

func (s *Session) Location() (domain.Coordinate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location, s.hasLocation
}

func (s *Session) SetLocation(coordinate domain.Coordinate) {
	s.mu.Lock()
	s.location = coordinate
	s.hasLocation = true
	observer := s.observer
	s.mu.Unlock()

	if s.echo && observer != nil {
		observer.SessionLocationChanged(s, coordinate)
	}
}

func (s *Session) ClearLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = domain.Coordinate{}
	s.hasLocation = false
}

func (s *Session) MoveType() domain.MoveType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveType
}

func (s *Session) SetMoveType(moveType domain.MoveType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveType = moveType
}

func (s *Session) MoveState() domain.MoveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveState
}

func (s *Session) SetMoveState(state domain.MoveState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveState = state
}

func (s *Session) Observe(observer ports.SessionObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = observer
}

func (s *Session) DetachObserver() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = nil
}

// ReportLocation is the spoofing engine's entry point: it moves the session
// and notifies the attached observer, if any, outside the session lock.
func (s *Session) ReportLocation(coordinate domain.Coordinate) {
	s.mu.Lock()
	s.location = coordinate
	s.hasLocation = true
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer.SessionLocationChanged(s, coordinate)
	}
}
