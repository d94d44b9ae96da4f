package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/rewax/internal/replay"
)

func replayCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay scripted events against a demo",
		Long: `Mount the demo named by a replay script into an in-memory document,
then run its steps in order. After each step the container markup and
the number of patches applied are printed.

Script format:

  demo: counter
  steps:
    - click: inc
    - input: {id: draft, value: "text"}
    - redraw: true
    - expect: ">1<"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			sc, err := replay.ParseFile(args[0])
			if err != nil {
				return err
			}
			return replay.NewPlayer(cmd.OutOrStdout(), cfg.RuntimeOptions()...).Run(sc)
		},
	}
	return cmd
}
