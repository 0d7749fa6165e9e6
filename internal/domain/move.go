package domain

import (
	"fmt"
	"strings"
)

// MoveType is addressed by ordinal because the move-type controls report
// their selection by position.
type MoveType int

const (
	MoveTypeWalk MoveType = iota
	MoveTypeCycle
	MoveTypeDrive
)

var moveTypeNames = [...]string{"walk", "cycle", "drive"}

func (m MoveType) Valid() bool {
	return m >= MoveTypeWalk && m <= MoveTypeDrive
}

func (m MoveType) Ordinal() int {
	return int(m)
}

func (m MoveType) String() string {
	if !m.Valid() {
		return fmt.Sprintf("MoveType(%d)", int(m))
	}
	return moveTypeNames[m]
}

func MoveTypeFromOrdinal(ordinal int) (MoveType, error) {
	m := MoveType(ordinal)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: ordinal %d", ErrInvalidMoveType, ordinal)
	}
	return m, nil
}

// MustMoveType panics on an ordinal outside the enumeration. Controls only
// ever offer valid positions, so a bad ordinal means the UI and the core
// disagree about the choices.
func MustMoveType(ordinal int) MoveType {
	m, err := MoveTypeFromOrdinal(ordinal)
	if err != nil {
		panic(err)
	}
	return m
}

func ParseMoveType(raw string) (MoveType, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, candidate := range moveTypeNames {
		if candidate == name {
			return MoveType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMoveType, raw)
}

type MoveState string

const (
	MoveStateManual    MoveState = "manual"
	MoveStateAutomatic MoveState = "automatic"
	MoveStateDisabled  MoveState = "disabled"
)

// Control names one of the two redundant move-type controls.
type Control string

const (
	ControlPrimary   Control = "primary"
	ControlSecondary Control = "secondary"
)

func ParseControl(raw string) (Control, error) {
	switch Control(strings.ToLower(strings.TrimSpace(raw))) {
	case ControlPrimary, "":
		return ControlPrimary, nil
	case ControlSecondary:
		return ControlSecondary, nil
	default:
		return "", fmt.Errorf("unknown control %q", raw)
	}
}
