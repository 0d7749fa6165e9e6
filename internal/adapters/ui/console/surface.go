package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

// Surface is the terminal stand-in for the simulator window. Location and
// preference changes are always printed; control and action updates only
// when verbose.
type Surface struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool

	actions  map[domain.DependentAction]bool
	controls map[domain.Control]*Control
}

func NewSurface(out io.Writer, verbose bool) *Surface {
	if out == nil {
		out = io.Discard
	}
	return &Surface{
		out:      out,
		verbose:  verbose,
		actions:  map[domain.DependentAction]bool{},
		controls: map[domain.Control]*Control{},
	}
}

func (s *Surface) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Surface) tracef(format string, args ...any) {
	if !s.verbose {
		return
	}
	s.printf(format, args...)
}

// Control returns the widget registered under name, creating it on first use.
func (s *Surface) Control(name domain.Control) *Control {
	s.mu.Lock()
	defer s.mu.Unlock()

	if control, ok := s.controls[name]; ok {
		return control
	}
	control := &Control{name: name, surface: s}
	s.controls[name] = control
	return control
}

func (s *Surface) View() ports.LocationView {
	return locationView{surface: s}
}

func (s *Surface) Toggle() ports.AutoFocusToggle {
	return autoFocusToggle{surface: s}
}

func (s *Surface) Actions() ports.ActionGate {
	return actionSink{surface: s}
}

func (s *Surface) ActionEnabled(action domain.DependentAction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions[action]
}

// Control mirrors one move-type picker.
type Control struct {
	name     domain.Control
	surface  *Surface
	mu       sync.Mutex
	selected int
	renders  int
}

var _ ports.MoveTypeControl = (*Control)(nil)

func (c *Control) SelectedOrdinal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Control) SetSelectedOrdinal(ordinal int) {
	c.mu.Lock()
	c.selected = ordinal
	c.renders++
	c.mu.Unlock()

	c.surface.tracef("control %s: %s", c.name, domain.MoveType(ordinal))
}

// Renders counts how often the control was redrawn.
func (c *Control) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

type locationView struct {
	surface *Surface
}

func (v locationView) WillChangeLocation(session ports.Session, target domain.Target) {
	v.surface.tracef("device %s: moving to %s", session.DeviceID(), target)
}

func (v locationView) DidChangeLocation(session ports.Session, target domain.Target) {
	v.surface.printf("device %s: location %s", session.DeviceID(), target)
}

type autoFocusToggle struct {
	surface *Surface
}

func (t autoFocusToggle) SetAutoFocus(enabled bool) {
	value := "off"
	if enabled {
		value = "on"
	}
	t.surface.printf("autofocus: %s", value)
}

type actionSink struct {
	surface *Surface
}

func (a actionSink) Enable(action domain.DependentAction) {
	a.set(action, true)
}

func (a actionSink) Disable(action domain.DependentAction) {
	a.set(action, false)
}

func (a actionSink) set(action domain.DependentAction, enabled bool) {
	a.surface.mu.Lock()
	a.surface.actions[action] = enabled
	a.surface.mu.Unlock()

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	a.surface.tracef("action %s %s", action, state)
}
