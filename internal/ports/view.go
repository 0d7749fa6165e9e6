package ports

import "github.com/bnema/locsim/internal/domain"

type LocationView interface {
	WillChangeLocation(session Session, target domain.Target)
	DidChangeLocation(session Session, target domain.Target)
}

type ActionGate interface {
	Enable(action domain.DependentAction)
	Disable(action domain.DependentAction)
}

// MoveTypeControl is one of the redundant widgets showing the move type by
// ordinal position.
type MoveTypeControl interface {
	SelectedOrdinal() int
	SetSelectedOrdinal(ordinal int)
}

type AutoFocusToggle interface {
	SetAutoFocus(enabled bool)
}
