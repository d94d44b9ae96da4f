package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/rewax/internal/config"
	rerrors "github.com/vango-dev/rewax/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	configPath string
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "rewax",
		Short: "Render and replay rewax components",
		Long: `rewax re-runs stateless render functions and reconciles their markup
against a host document, keeping hook state between runs.

This tool renders the bundled demo components and replays scripted
host events against them in an in-memory document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor || !colorTerminal(os.Stderr) {
				rerrors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to rewax.yaml (default: ./rewax.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		renderCmd(flags),
		replayCmd(flags),
		demosCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the file named by --config, or ./rewax.yaml if present.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	if flags.configPath != "" {
		return config.LoadFile(flags.configPath)
	}
	return config.Load(".")
}

func colorTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printError prints coded errors in the long form and others on one line.
func printError(w io.Writer, err error) {
	var coded *rerrors.Error
	if errors.As(err, &coded) {
		if coded.Error() != err.Error() {
			fmt.Fprintf(w, "%s\n\n", err)
		}
		fmt.Fprint(w, coded.Format())
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err)
}
