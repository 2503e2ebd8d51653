package main

import (
	"errors"
	"fmt"

	"github.com/justinpbarnett/scriptrun/internal/update"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and check for updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scriptrun version %s\n", Version)

			if Version == "dev" {
				fmt.Fprintln(out, "Development build, update check skipped.")
				return nil
			}
			rel, err := update.Check(cmd.Context(), Version, update.Repo)
			if err != nil {
				fmt.Fprintf(out, "Update check failed: %v\n", err)
				return nil
			}
			if rel != nil {
				fmt.Fprintf(out, "Update available: v%s. Run \"scriptrun update\" to install.\n", rel.Version)
			} else {
				fmt.Fprintln(out, "You are up to date.")
			}
			return nil
		},
	}
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Replace this binary with the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rel, err := update.Apply(cmd.Context(), Version, update.Repo)
			if errors.Is(err, update.ErrDevBuild) {
				return err
			}
			if err != nil {
				return fmt.Errorf("update: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated to v%s.\n", rel.Version)
			return nil
		},
	}
}
