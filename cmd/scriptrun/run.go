package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/scriptrun/internal/clipboard"
	"github.com/justinpbarnett/scriptrun/internal/config"
	"github.com/justinpbarnett/scriptrun/internal/engine"
	"github.com/justinpbarnett/scriptrun/internal/output"
	"github.com/justinpbarnett/scriptrun/internal/tui"
	"github.com/spf13/cobra"
)

const exitCancelled = 130

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Run a script and stream its output",
		Long: `Run a script through the configured toolchain. The script is read from
the given file, or from stdin when the argument is "-" or omitted.

The exit status mirrors the script's: 130 when cancelled, 1 when the
toolchain could not be run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}
	cmd.Flags().Bool("plain", false, "print output without the interactive view")
	cmd.Flags().Bool("copy", false, "copy the output to the clipboard when done")
	cmd.Flags().Duration("timeout", 0, "cancel the run after this long (0 disables)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	plain, _ := cmd.Flags().GetBool("plain")
	copyOut, _ := cmd.Flags().GetBool("copy")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	fromStdin := len(args) == 0 || args[0] == "-"
	script, err := readScript(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	e, err := engine.New(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tr := output.NewTranscript(cfg.Output.TranscriptLines)
	req := engine.Request{Script: script}
	out := cmd.OutOrStdout()

	var res engine.Result
	if plain || !isTerminal(out) {
		styles := tui.DefaultStyles(colorEnabled(cfg) && isTerminal(out))
		res = runPlain(ctx, e, req, tr, styles, out)
	} else {
		res, err = runInteractive(ctx, e, req, tr, cfg, fromStdin)
		if err != nil {
			return err
		}
	}

	if first, ok := tr.FirstError(); ok && first.Location != nil && !res.Success() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d error lines, first at %s\n", tr.Errors(), first.Location)
	}
	if copyOut {
		if err := clipboard.Copy(tr.Text(), cmd.ErrOrStderr()); err != nil {
			log.Printf("warning: copy to clipboard: %v", err)
		} else if n := tr.Dropped(); n > 0 {
			log.Printf("copied the last %d lines, %d earlier lines were not kept", tr.Len(), n)
		}
	}
	return exitFor(res)
}

func readScript(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read script from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

// runPlain streams rendered lines to out. Interrupts cancel the run.
func runPlain(ctx context.Context, e *engine.Engine, req engine.Request, tr *output.Transcript, styles tui.Styles, out io.Writer) engine.Result {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	return e.Run(ctx, req, engine.Callbacks{
		OnEvent: func(ev output.Event) {
			tr.Append(ev)
			fmt.Fprintln(out, tui.RenderLine(ev, styles))
		},
		OnResult: func(res engine.Result) {
			fmt.Fprintln(out, tui.RenderSummary(res, styles))
		},
	})
}

func runInteractive(ctx context.Context, e *engine.Engine, req engine.Request, tr *output.Transcript, cfg *config.Config, fromStdin bool) (engine.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []tea.ProgramOption{}
	if fromStdin {
		opts = append(opts, tea.WithInputTTY())
	}
	m := tui.NewRunModel(tui.DefaultStyles(colorEnabled(cfg)), cfg.UI.Spinner, tr, cancel)
	p := tea.NewProgram(m, opts...)

	x := e.Start(ctx, req, tui.Callbacks(p))
	if _, err := p.Run(); err != nil {
		x.Cancel()
		x.Wait()
		return engine.Result{}, fmt.Errorf("run view: %w", err)
	}

	// A forced quit leaves the run to be stopped here.
	select {
	case <-x.Done():
	case <-time.After(100 * time.Millisecond):
		x.Cancel()
	}
	return x.Wait(), nil
}

func colorEnabled(cfg *config.Config) bool {
	return cfg.UI.Color == nil || *cfg.UI.Color
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func exitFor(res engine.Result) error {
	switch {
	case res.Outcome == engine.OutcomeCancelled:
		return &exitError{code: exitCancelled}
	case res.Outcome == engine.OutcomeFailed:
		return &exitError{code: 1}
	case res.ExitCode != 0:
		return &exitError{code: res.ExitCode}
	}
	return nil
}
