package domain

type DependentAction string

const (
	ActionSetLocation          DependentAction = "setLocation"
	ActionToggleAutomove       DependentAction = "toggleAutomove"
	ActionMoveUp               DependentAction = "moveUp"
	ActionMoveDown             DependentAction = "moveDown"
	ActionMoveCounterclockwise DependentAction = "moveCounterclockwise"
	ActionMoveClockwise        DependentAction = "moveClockwise"
	ActionRecentLocation       DependentAction = "recentLocation"
)

func AllDependentActions() []DependentAction {
	return []DependentAction{
		ActionSetLocation,
		ActionToggleAutomove,
		ActionMoveUp,
		ActionMoveDown,
		ActionMoveCounterclockwise,
		ActionMoveClockwise,
		ActionRecentLocation,
	}
}

// SessionActions are usable as soon as a session is loaded.
func SessionActions() []DependentAction {
	return []DependentAction{ActionSetLocation, ActionRecentLocation}
}

// MovementActions need a session that already has a location.
func MovementActions() []DependentAction {
	return []DependentAction{
		ActionToggleAutomove,
		ActionMoveUp,
		ActionMoveDown,
		ActionMoveCounterclockwise,
		ActionMoveClockwise,
	}
}

func (a DependentAction) Valid() bool {
	for _, known := range AllDependentActions() {
		if a == known {
			return true
		}
	}
	return false
}
