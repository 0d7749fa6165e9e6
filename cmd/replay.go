package cmd

import (
	"fmt"
	"io"

	scenariotoml "github.com/bnema/locsim/internal/adapters/scenario/toml"
	"github.com/spf13/cobra"
)

func newReplayCmd(app *app) *cobra.Command {
	var (
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "replay <scenario.toml>",
		Short: "Run a scripted device scenario and print the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := scenariotoml.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var events io.Writer = cmd.OutOrStdout()
			if asJSON {
				events = io.Discard
			}

			rt, err := app.startRuntime(cmd.Context(), runtimeOptions{
				out:     events,
				logOut:  cmd.ErrOrStderr(),
				verbose: verbose,
			})
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.coordinator.ApplyAll(cmd.Context(), scenario.Steps); err != nil {
				return fmt.Errorf("replay %s: %w", args[0], err)
			}

			status, err := rt.coordinator.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("load status: %w", err)
			}

			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the final state as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Trace control and action updates")

	return cmd
}
