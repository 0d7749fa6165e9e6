package application

import (
	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

type boundControl struct {
	name   domain.Control
	widget ports.MoveTypeControl
}

// MoveTypeSelector owns the one authoritative move type. The redundant
// controls only render it.
type MoveTypeSelector struct {
	current  domain.MoveType
	controls []boundControl
	onSelect func(domain.MoveType)
}

func NewMoveTypeSelector(initial domain.MoveType) *MoveTypeSelector {
	if !initial.Valid() {
		initial = domain.MoveTypeWalk
	}
	return &MoveTypeSelector{current: initial}
}

// Attach binds widget under name, replacing any widget already bound to it,
// and renders the current value into it.
func (s *MoveTypeSelector) Attach(name domain.Control, widget ports.MoveTypeControl) {
	bound := boundControl{name: name, widget: widget}
	replaced := false
	for i := range s.controls {
		if s.controls[i].name == name {
			s.controls[i] = bound
			replaced = true
		}
	}
	if !replaced {
		s.controls = append(s.controls, bound)
	}

	render(widget, s.current.Ordinal())
}

// OnSelect registers the hook that receives every selection.
func (s *MoveTypeSelector) OnSelect(fn func(domain.MoveType)) {
	s.onSelect = fn
}

// Change applies a selection coming from origin. Every control, origin
// included, is written only if it shows something else: a widget the user
// clicked is left alone, one named by a typed command is brought in line.
// An ordinal outside the enumeration panics.
func (s *MoveTypeSelector) Change(ordinal int, origin domain.Control) domain.MoveType {
	moveType := domain.MustMoveType(ordinal)
	s.current = moveType

	for _, control := range s.controls {
		render(control.widget, ordinal)
	}

	if s.onSelect != nil {
		s.onSelect(moveType)
	}

	return moveType
}

func (s *MoveTypeSelector) Current() domain.MoveType {
	return s.current
}

func render(widget ports.MoveTypeControl, ordinal int) {
	if widget.SelectedOrdinal() == ordinal {
		return
	}
	widget.SetSelectedOrdinal(ordinal)
}
