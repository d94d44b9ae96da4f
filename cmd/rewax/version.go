package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rewax/internal/demo"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the rewax version",
		Long:  `Print the rewax release, the commit and date it was built from, and the bundled demos.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(w, version)
				return
			}
			fmt.Fprintf(w, "rewax %s (commit %s, built %s)\n", version, commit, date)
			fmt.Fprintf(w, "  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(w, "  demos: %s\n", strings.Join(demo.Names(), ", "))
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the release")
	return cmd
}
