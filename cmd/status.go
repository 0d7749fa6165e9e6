package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/locsim/internal/adapters/render/status"
	"github.com/bnema/locsim/internal/application"
	"github.com/bnema/locsim/internal/domain"
	"github.com/spf13/cobra"
)

type coordinateOutput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type cachedLocationOutput struct {
	Device    string           `json:"device"`
	Location  coordinateOutput `json:"location"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type statusOutput struct {
	Devices      []string               `json:"devices"`
	ActiveDevice string                 `json:"active_device,omitempty"`
	SessionID    string                 `json:"session_id,omitempty"`
	Location     *coordinateOutput      `json:"location,omitempty"`
	MoveType     string                 `json:"move_type"`
	MoveState    string                 `json:"move_state,omitempty"`
	AutoFocus    bool                   `json:"autofocus"`
	Cached       []cachedLocationOutput `json:"cached"`
	Actions      map[string]bool        `json:"actions"`
}

func toStatusOutput(status application.Status) statusOutput {
	out := statusOutput{
		Devices:      make([]string, 0, len(status.Devices)),
		ActiveDevice: string(status.ActiveDevice),
		SessionID:    status.SessionID,
		MoveType:     status.MoveType.String(),
		MoveState:    string(status.MoveState),
		AutoFocus:    status.AutoFocus,
		Cached:       make([]cachedLocationOutput, 0, len(status.Cached)),
		Actions:      make(map[string]bool, len(status.Actions)),
	}
	for _, id := range status.Devices {
		out.Devices = append(out.Devices, string(id))
	}
	if status.Location != nil {
		location := toCoordinateOutput(*status.Location)
		out.Location = &location
	}
	for _, entry := range status.Cached {
		out.Cached = append(out.Cached, cachedLocationOutput{
			Device:    string(entry.DeviceID),
			Location:  toCoordinateOutput(entry.Coordinate),
			UpdatedAt: entry.UpdatedAt.UTC(),
		})
	}
	for _, action := range status.Actions {
		out.Actions[string(action.Action)] = action.Enabled
	}
	return out
}

func toCoordinateOutput(c domain.Coordinate) coordinateOutput {
	return coordinateOutput{Latitude: c.Latitude, Longitude: c.Longitude}
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toStatusOutput(status))
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
