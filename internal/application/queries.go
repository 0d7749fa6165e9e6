package application

import (
	"context"

	"github.com/bnema/locsim/internal/domain"
)

type Status struct {
	Devices      []domain.DeviceID
	ActiveDevice domain.DeviceID
	SessionID    string
	Location     *domain.Coordinate
	MoveType     domain.MoveType
	MoveState    domain.MoveState
	Cached       []domain.CachedLocation
	Actions      []ActionStatus
	AutoFocus    bool
}

func (s Status) HasSession() bool {
	return s.SessionID != ""
}

func (c *Coordinator) Status(ctx context.Context) (Status, error) {
	var status Status
	err := c.exec.Do(ctx, func() {
		status = Status{
			Devices:   c.registry.IDs(),
			MoveType:  c.selector.Current(),
			Cached:    c.cache.Entries(),
			Actions:   c.actions.Snapshot(),
			AutoFocus: c.listener.AutoFocus(),
		}
		if c.session == nil {
			return
		}

		status.ActiveDevice = c.session.DeviceID()
		status.SessionID = c.session.ID()
		status.MoveType = c.session.MoveType()
		status.MoveState = c.session.MoveState()
		if location, ok := c.session.Location(); ok {
			status.Location = &location
		}
	})
	if err != nil {
		return Status{}, err
	}
	return status, nil
}
