package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/justinpbarnett/scriptrun/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	log.SetFlags(0)
	log.SetPrefix("scriptrun: ")

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scriptrun",
		Short:         "Run scripts through an external toolchain and stream their output",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (default: ./scriptrun.yaml, then ~/.config/scriptrun/config.yaml)")

	root.AddCommand(
		newRunCmd(),
		newDoctorCmd(),
		newInitCmd(),
		newVersionCmd(),
		newUpdateCmd(),
	)
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
