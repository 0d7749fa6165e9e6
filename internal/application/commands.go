package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

type StepAction string

const (
	StepConnect     StepAction = "connect"
	StepPair        StepAction = "pair"
	StepDisconnect  StepAction = "disconnect"
	StepSelect      StepAction = "select"
	StepMove        StepAction = "move"
	StepReset       StepAction = "reset"
	StepAutoFocus   StepAction = "autofocus"
	StepSetLocation StepAction = "set-location"
	StepAutomove    StepAction = "automove"
)

// Step is one scripted or typed input to the coordinator. Device steps are
// published on the bus as if the transport had produced them.
type Step struct {
	Action     StepAction
	Device     domain.DeviceID
	Index      int
	Ordinal    int
	Control    domain.Control
	Enabled    bool
	Coordinate domain.Coordinate
}

func (s Step) Validate() error {
	switch s.Action {
	case StepConnect, StepPair, StepDisconnect:
		if strings.TrimSpace(string(s.Device)) == "" {
			return fmt.Errorf("%s: %w", s.Action, domain.ErrInvalidDeviceID)
		}
	case StepSelect:
		if s.Index < 0 {
			return fmt.Errorf("select: index must not be negative")
		}
	case StepMove:
		if _, err := domain.MoveTypeFromOrdinal(s.Ordinal); err != nil {
			return fmt.Errorf("move: %w", err)
		}
		if s.Control != domain.ControlPrimary && s.Control != domain.ControlSecondary {
			return fmt.Errorf("move: unknown control %q", s.Control)
		}
	case StepReset, StepAutoFocus, StepSetLocation, StepAutomove:
	default:
		return fmt.Errorf("unsupported step action %q", s.Action)
	}

	return nil
}

// Apply validates step and routes it. Selecting an index the registry does
// not hold is rejected here instead of reaching the hand-off.
func (c *Coordinator) Apply(ctx context.Context, step Step) error {
	if err := step.Validate(); err != nil {
		return err
	}

	switch step.Action {
	case StepConnect:
		ports.PublishDeviceEvent(c.bus, domain.DeviceEvent{Kind: domain.DeviceConnected, DeviceID: step.Device})
	case StepPair:
		ports.PublishDeviceEvent(c.bus, domain.DeviceEvent{Kind: domain.DevicePaired, DeviceID: step.Device})
	case StepDisconnect:
		ports.PublishDeviceEvent(c.bus, domain.DeviceEvent{Kind: domain.DeviceDisconnected, DeviceID: step.Device})
	case StepSelect:
		var selectErr error
		err := c.exec.Do(ctx, func() {
			if step.Index >= c.registry.Len() {
				selectErr = fmt.Errorf("%w: %d (devices: %d)", domain.ErrDeviceIndexOutOfRange, step.Index, c.registry.Len())
				return
			}
			selectErr = c.selectDevice(ctx, step.Index)
		})
		if err != nil {
			return err
		}
		return selectErr
	case StepMove:
		return c.ChangeMoveType(ctx, step.Ordinal, step.Control)
	case StepReset:
		return c.ResetLocation(ctx)
	case StepAutoFocus:
		c.ToggleAutoFocus(ctx, step.Enabled)
	case StepSetLocation:
		return c.SetLocation(ctx, step.Coordinate)
	case StepAutomove:
		_, err := c.ToggleAutomove(ctx)
		return err
	}

	return nil
}

// ApplyAll stops at the first failing step. Session load failures are
// recoverable and only logged.
func (c *Coordinator) ApplyAll(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		err := c.Apply(ctx, step)
		if err == nil {
			continue
		}
		if errors.Is(err, domain.ErrSessionLoad) {
			c.logger.Warn("continuing after session load failure", "step", i+1, "err", err)
			continue
		}
		return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
	}
	return nil
}
