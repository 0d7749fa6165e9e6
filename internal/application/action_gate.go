package application

import (
	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

type ActionStatus struct {
	Action  domain.DependentAction
	Enabled bool
}

// ActionGate tracks the enabled flag of every dependent action and forwards
// actual transitions to an optional UI sink. All actions start disabled.
type ActionGate struct {
	enabled map[domain.DependentAction]bool
	sink    ports.ActionGate
}

var _ ports.ActionGate = (*ActionGate)(nil)

func NewActionGate(sink ports.ActionGate) *ActionGate {
	g := &ActionGate{enabled: map[domain.DependentAction]bool{}, sink: sink}
	for _, action := range domain.AllDependentActions() {
		g.enabled[action] = false
		if sink != nil {
			sink.Disable(action)
		}
	}
	return g
}

func (g *ActionGate) Enable(action domain.DependentAction) {
	g.set(action, true)
}

func (g *ActionGate) Disable(action domain.DependentAction) {
	g.set(action, false)
}

func (g *ActionGate) EnableAll(actions ...domain.DependentAction) {
	for _, action := range actions {
		g.Enable(action)
	}
}

func (g *ActionGate) DisableAll(actions ...domain.DependentAction) {
	for _, action := range actions {
		g.Disable(action)
	}
}

func (g *ActionGate) Enabled(action domain.DependentAction) bool {
	return g.enabled[action]
}

func (g *ActionGate) Snapshot() []ActionStatus {
	actions := domain.AllDependentActions()
	statuses := make([]ActionStatus, 0, len(actions))
	for _, action := range actions {
		statuses = append(statuses, ActionStatus{Action: action, Enabled: g.enabled[action]})
	}
	return statuses
}

func (g *ActionGate) set(action domain.DependentAction, enabled bool) {
	if !action.Valid() {
		return
	}
	if g.enabled[action] == enabled {
		return
	}

	g.enabled[action] = enabled
	if g.sink == nil {
		return
	}
	if enabled {
		g.sink.Enable(action)
	} else {
		g.sink.Disable(action)
	}
}
