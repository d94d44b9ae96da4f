package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rewax/internal/demo"
	"github.com/vango-dev/rewax/pkg/rewax"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <demo>",
		Short: "Print the static markup of a demo component",
		Long: `Render a demo once without a container and print the result: the
component markup wrapped in a <div> carrying the instance id.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: demo.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return renderDemo(cmd.OutOrStdout(), args[0], cfg.RuntimeOptions()...)
		},
	}
	return cmd
}

func renderDemo(w io.Writer, name string, opts ...rewax.Option) error {
	component, err := demo.Lookup(name)
	if err != nil {
		return err
	}

	rt := rewax.NewRuntime(opts...)
	s := rt.NewInstance()
	out, err := s.Render(func() string { return component(s) }, nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

func demosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the bundled demo components",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range demo.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
