package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/locsim/internal/application"
	"github.com/bnema/locsim/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	scenarioFileMode = 0o644
	scenarioDirMode  = 0o755
	tempFilePattern  = ".scenario-*.toml.tmp"
)

var ErrEmptyScenario = errors.New("scenario has no steps")

type Scenario struct {
	Name  string
	Steps []application.Step
}

func Load(ctx context.Context, path string) (Scenario, error) {
	if err := ctx.Err(); err != nil {
		return Scenario{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}

	return Decode(data)
}

func Decode(data []byte) (Scenario, error) {
	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return Scenario{}, err
	}
	file.applyDefaults()

	if len(file.Steps) == 0 {
		return Scenario{}, ErrEmptyScenario
	}

	steps := make([]application.Step, 0, len(file.Steps))
	for i, entry := range file.Steps {
		step, err := fromSchema(entry)
		if err != nil {
			return Scenario{}, fmt.Errorf("scenario step %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}

	return Scenario{Name: file.Name, Steps: steps}, nil
}

// Save writes the scenario atomically through a temp file in the target
// directory.
func Save(ctx context.Context, path string, scenario Scenario) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := fileSchema{Name: scenario.Name, Steps: make([]stepSchema, 0, len(scenario.Steps))}
	for _, step := range scenario.Steps {
		file.Steps = append(file.Steps, toSchema(step))
	}
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode scenario file: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, scenarioDirMode); err != nil {
		return fmt.Errorf("create scenario directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp scenario file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp scenario file: %w", err)
	}
	if err := tempFile.Chmod(scenarioFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp scenario file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp scenario file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace scenario file: %w", err)
	}

	cleanup = false
	return nil
}

func fromSchema(entry stepSchema) (application.Step, error) {
	step := application.Step{
		Action:  application.StepAction(strings.ToLower(strings.TrimSpace(entry.Action))),
		Device:  domain.DeviceID(strings.TrimSpace(entry.Device)),
		Index:   entry.Index,
		Ordinal: entry.Ordinal,
		Enabled: entry.Enabled,
	}

	if step.Action == application.StepMove {
		control, err := domain.ParseControl(entry.Control)
		if err != nil {
			return application.Step{}, err
		}
		step.Control = control
	}

	if step.Action == application.StepSetLocation {
		coordinate, err := domain.ParseCoordinate(entry.Coordinate)
		if err != nil {
			return application.Step{}, err
		}
		step.Coordinate = coordinate
	}

	if err := step.Validate(); err != nil {
		return application.Step{}, err
	}
	return step, nil
}

func toSchema(step application.Step) stepSchema {
	entry := stepSchema{
		Action:  string(step.Action),
		Device:  string(step.Device),
		Index:   step.Index,
		Ordinal: step.Ordinal,
		Control: string(step.Control),
		Enabled: step.Enabled,
	}
	if step.Action == application.StepSetLocation {
		entry.Coordinate = step.Coordinate.String()
	}
	return entry
}
