package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/locsim/internal/application"
	"github.com/bnema/locsim/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
	// Width truncates every line when positive.
	Width int
}

var moveTypes = []domain.MoveType{domain.MoveTypeWalk, domain.MoveTypeCycle, domain.MoveTypeDrive}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Location Simulator"),
		s.header.Render(fmt.Sprintf("devices: %d", len(status.Devices))),
	}

	lines = append(lines, s.section.Render(renderDevices(status, s)))
	lines = append(lines, s.section.Render(renderSession(status, s)))
	if len(status.Cached) > 0 {
		lines = append(lines, s.section.Render(renderCache(status.Cached, opts, s)))
	}
	lines = append(lines, s.section.Render(renderActions(status.Actions, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderDevices(status application.Status, s styles) string {
	if len(status.Devices) == 0 {
		return s.empty.Render("No devices connected.")
	}

	rows := make([]string, 0, len(status.Devices))
	for i, id := range status.Devices {
		if id == status.ActiveDevice {
			rows = append(rows, s.active.Render(fmt.Sprintf("* %d %s", i, id)))
			continue
		}
		rows = append(rows, s.device.Render(fmt.Sprintf("  %d %s", i, id)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderSession(status application.Status, s styles) string {
	if !status.HasSession() {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			s.empty.Render("No active session."),
			moveTypeLine(status.MoveType, s),
			autoFocusLine(status.AutoFocus, s),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.active.Render(fmt.Sprintf("Session %s (%s)", shortID(status.SessionID), status.ActiveDevice)),
		s.detail.Render("location: "+locationLabel(status.Location)),
		s.detail.Render("movement: "+moveStateLabel(status.MoveState)),
		moveTypeLine(status.MoveType, s),
		autoFocusLine(status.AutoFocus, s),
	)
}

func moveTypeLine(current domain.MoveType, s styles) string {
	parts := []string{s.key.Render("move type:")}
	for _, moveType := range moveTypes {
		if moveType == current {
			parts = append(parts, s.selected.Render("["+moveType.String()+"]"))
			continue
		}
		parts = append(parts, s.empty.Render(moveType.String()))
	}
	return strings.Join(parts, " ")
}

func autoFocusLine(enabled bool, s styles) string {
	value := "off"
	if enabled {
		value = "on"
	}
	return s.key.Render("autofocus:") + " " + s.detail.Render(value)
}

func renderCache(entries []domain.CachedLocation, opts RenderOptions, s styles) string {
	rows := []string{s.header.Render("remembered locations")}
	for _, entry := range entries {
		line := s.detail.Render(fmt.Sprintf("%s %s", entry.DeviceID, entry.Coordinate))
		if !opts.Now.IsZero() && !entry.UpdatedAt.IsZero() {
			line += " " + s.empty.Render(formatAge(entry.UpdatedAt, opts.Now))
		}
		rows = append(rows, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderActions(actions []application.ActionStatus, s styles) string {
	parts := make([]string, 0, len(actions)+1)
	parts = append(parts, s.key.Render("actions:"))
	for _, action := range actions {
		if action.Enabled {
			parts = append(parts, s.enabled.Render("+"+string(action.Action)))
			continue
		}
		parts = append(parts, s.disabled.Render("-"+string(action.Action)))
	}
	return strings.Join(parts, " ")
}

func locationLabel(location *domain.Coordinate) string {
	if location == nil {
		return "none"
	}
	return location.String()
}

func moveStateLabel(state domain.MoveState) string {
	if state == "" {
		return string(domain.MoveStateDisabled)
	}
	return string(state)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// formatAge labels a cache entry. The cache lives as long as the process, so
// hours is the coarsest unit.
func formatAge(at, now time.Time) string {
	elapsed := now.Sub(at)
	if elapsed < time.Minute {
		return "(just now)"
	}
	if elapsed < time.Hour {
		return fmt.Sprintf("(%d min ago)", int(math.Floor(elapsed.Minutes())))
	}

	hours := int(math.Floor(elapsed.Hours()))
	if hours == 1 {
		return "(1 hour ago)"
	}
	return fmt.Sprintf("(%d hours ago)", hours)
}
