package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	scenariotoml "github.com/bnema/locsim/internal/adapters/scenario/toml"
	"github.com/bnema/locsim/internal/adapters/ui/console"
	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	var (
		bridgeURL string
		devices   []string
		verbose   bool
		record    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the coordinator and read commands from stdin",
		Long:  "run starts the coordinator, listens for device events from the bridge (or the configured static devices) and reads console commands from stdin until quit or end of input.\n\n" + console.Help,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("bridge") {
				bridgeURL = app.cfg.BridgeURL
			}
			if !cmd.Flags().Changed("device") {
				devices = app.cfg.StaticDevices
			}

			opts := runtimeOptions{
				out:       cmd.OutOrStdout(),
				logOut:    cmd.ErrOrStderr(),
				bridgeURL: bridgeURL,
				devices:   devices,
				verbose:   verbose,
			}
			if record != "" {
				opts.recorder = &stepRecorder{}
			}

			var rt *runtime
			start := func(ctx context.Context) error {
				var err error
				rt, err = app.startRuntime(ctx, opts)
				return err
			}

			if bridgeURL == "" {
				if err := start(cmd.Context()); err != nil {
					return err
				}
			} else {
				dialStart := func(ctx context.Context) (bool, error) {
					if err := start(ctx); err != nil {
						return false, err
					}
					return rt.bridgeFellBack(), nil
				}
				outcome, err := runBridgeSpinner(cmd.Context(), cmd.ErrOrStderr(), bridgeURL, dialStart)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), outcome)
			}
			defer rt.Close()

			if err := runConsole(cmd, app, rt, cmd.InOrStdin(), opts.recorder); err != nil {
				return err
			}

			if record == "" {
				return nil
			}
			recorded := opts.recorder.Steps()
			if len(recorded) == 0 {
				return fmt.Errorf("record %s: no commands were applied", record)
			}
			if err := scenariotoml.Save(cmd.Context(), record, scenariotoml.Scenario{Name: "recorded", Steps: recorded}); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "recorded %d steps to %s\n", len(recorded), record)
			return err
		},
	}

	cmd.Flags().StringVar(&bridgeURL, "bridge", "", "Device bridge websocket URL (overrides bridge.url)")
	cmd.Flags().StringSliceVar(&devices, "device", nil, "Static device id announced at start (repeatable, overrides devices.static)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Trace control and action updates")
	cmd.Flags().StringVar(&record, "record", "", "Write the applied commands as a replayable scenario")

	return cmd
}

// runConsole applies one command per input line. A failing line is reported
// and the loop continues. Applied steps go to recorder when it is not nil.
func runConsole(cmd *cobra.Command, app *app, rt *runtime, input io.Reader, recorder *stepRecorder) error {
	out := cmd.OutOrStdout()

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		command, err := console.ParseLine(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		switch command.Kind {
		case console.CommandEmpty:
		case console.CommandHelp:
			fmt.Fprintln(out, console.Help)
		case console.CommandQuit:
			return nil
		case console.CommandStatus:
			status, err := rt.coordinator.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("load status: %w", err)
			}
			if err := writeStatusOutput(cmd, app, status, false); err != nil {
				return err
			}
		case console.CommandStep:
			if err := rt.coordinator.Apply(cmd.Context(), command.Step); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			if recorder != nil {
				recorder.addApplied(command.Step)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read console input: %w", err)
	}

	return nil
}
