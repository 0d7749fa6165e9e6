package ports

import (
	"context"

	"github.com/bnema/locsim/internal/domain"
)

// SessionObserver receives location updates reported by the spoofing engine
// for one session. A session may call it from any goroutine, including
// synchronously from inside SetLocation or ClearLocation; implementations
// must not block waiting on the caller.
type SessionObserver interface {
	SessionLocationChanged(session Session, coordinate domain.Coordinate)
}

// Session binds one device to its spoofing state. Sessions are owned by the
// SessionHost; the coordinator only keeps a reference to the active one.
type Session interface {
	ID() string
	DeviceID() domain.DeviceID
	Location() (domain.Coordinate, bool)
	SetLocation(coordinate domain.Coordinate)
	ClearLocation()
	MoveType() domain.MoveType
	SetMoveType(moveType domain.MoveType)
	MoveState() domain.MoveState
	SetMoveState(state domain.MoveState)
	Observe(observer SessionObserver)
	DetachObserver()
}

type SessionHost interface {
	LoadSession(ctx context.Context, id domain.DeviceID) (Session, error)
	CurrentSession() (Session, bool)
}
