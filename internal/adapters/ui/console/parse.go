package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/locsim/internal/application"
	"github.com/bnema/locsim/internal/domain"
)

type CommandKind int

const (
	CommandEmpty CommandKind = iota
	CommandStep
	CommandStatus
	CommandHelp
	CommandQuit
)

type Command struct {
	Kind CommandKind
	Step application.Step
}

var errUsage = errors.New("usage")

const Help = `commands:
  connect ID        announce a connected device
  pair ID           announce a paired device
  disconnect ID     announce a disconnected device
  select N          hand the session over to device N
  move TYPE [primary|secondary]
                    pick walk/cycle/drive (or 0-2) from a control
  set LAT,LON       move the active session
  reset             clear the active session's location
  automove          toggle automatic movement
  autofocus on|off  change the autofocus preference
  status            print the coordinator state
  quit              leave`

// ParseLine turns one console line into a command. Blank lines and lines
// starting with # are empty commands.
func ParseLine(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return Command{Kind: CommandEmpty}, nil
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "status":
		return Command{Kind: CommandStatus}, nil
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	case "connect", "pair", "disconnect":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: %s ID", errUsage, verb)
		}
		step := application.Step{Action: application.StepConnect, Device: domain.DeviceID(args[0])}
		switch verb {
		case "pair":
			step.Action = application.StepPair
		case "disconnect":
			step.Action = application.StepDisconnect
		}
		return stepCommand(step)
	case "select":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: select N", errUsage)
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("select: parse index %q: %w", args[0], err)
		}
		return stepCommand(application.Step{Action: application.StepSelect, Index: index})
	case "move":
		return parseMove(args)
	case "set":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%w: set LAT,LON", errUsage)
		}
		coordinate, err := domain.ParseCoordinate(strings.Join(args, ""))
		if err != nil {
			return Command{}, fmt.Errorf("set: %w", err)
		}
		return stepCommand(application.Step{Action: application.StepSetLocation, Coordinate: coordinate})
	case "reset":
		return stepCommand(application.Step{Action: application.StepReset})
	case "automove":
		return stepCommand(application.Step{Action: application.StepAutomove})
	case "autofocus":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: autofocus on|off", errUsage)
		}
		enabled, err := parseSwitch(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("autofocus: %w", err)
		}
		return stepCommand(application.Step{Action: application.StepAutoFocus, Enabled: enabled})
	default:
		return Command{}, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
}

func parseMove(args []string) (Command, error) {
	if len(args) == 0 || len(args) > 2 {
		return Command{}, fmt.Errorf("%w: move TYPE [primary|secondary]", errUsage)
	}

	ordinal, err := strconv.Atoi(args[0])
	if err != nil {
		moveType, parseErr := domain.ParseMoveType(args[0])
		if parseErr != nil {
			return Command{}, fmt.Errorf("move: %w", parseErr)
		}
		ordinal = moveType.Ordinal()
	}

	control := domain.ControlPrimary
	if len(args) == 2 {
		control, err = domain.ParseControl(args[1])
		if err != nil {
			return Command{}, fmt.Errorf("move: %w", err)
		}
	}

	return stepCommand(application.Step{Action: application.StepMove, Ordinal: ordinal, Control: control})
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", raw)
	}
}

func stepCommand(step application.Step) (Command, error) {
	if err := step.Validate(); err != nil {
		return Command{}, err
	}
	return Command{Kind: CommandStep, Step: step}, nil
}
