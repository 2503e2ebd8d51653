package main

import (
	"fmt"

	"github.com/justinpbarnett/scriptrun/internal/toolchain"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured toolchain is usable",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	info, err := toolchain.Detect(cmd.Context(), cfg.Runner.Executable, cfg.Runner.VersionArgs)
	if err != nil {
		fmt.Fprintf(out, "  toolchain: %v\n", err)
		return &exitError{code: 1}
	}
	fmt.Fprintf(out, "  toolchain: %s\n", info.Path)
	fmt.Fprintf(out, "  version:   %s\n", info.VersionString())

	if cfg.Runner.MinVersion == "" {
		return nil
	}
	ok, err := info.Satisfies(cfg.Runner.MinVersion)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(out, "  required:  %s (not satisfied)\n", cfg.Runner.MinVersion)
		return &exitError{code: 1}
	}
	fmt.Fprintf(out, "  required:  %s (ok)\n", cfg.Runner.MinVersion)
	return nil
}
