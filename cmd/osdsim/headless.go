//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"flightosd/app"
	"flightosd/hal"
	"flightosd/screen"
)

var (
	headlessScript  string
	headlessHz      int
	headlessTicks   uint64
	headlessUnicode bool

	headlessCmd = &cobra.Command{
		Use:   "headless",
		Short: "Run without a window and print the final screen",
		Long: `Runs the engine with no display attached and prints the last flushed
screen as text.

With --script the run is deterministic: each comma separated step is held
for one content pass on a simulated clock. Steps are gesture names
(menu, up, down, left, right, select, back) plus wait, arm and disarm.`,
		Example: `  osdsim headless --script menu,select,down,right,right
  osdsim headless --hz 50 --ticks 500`,
		RunE: runHeadless,
	}
)

func init() {
	headlessCmd.Flags().StringVar(&headlessScript, "script", "", "comma separated steps to play")
	headlessCmd.Flags().IntVar(&headlessHz, "hz", 60, "tick rate")
	headlessCmd.Flags().Uint64Var(&headlessTicks, "ticks", 60, "stop after N ticks (0 = until interrupted)")
	headlessCmd.Flags().BoolVar(&headlessUnicode, "unicode", false, "print symbols as unicode instead of ASCII")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	glyphs := screen.ASCIIGlyphs
	if headlessUnicode {
		glyphs = screen.UnicodeGlyphs
	}

	if headlessScript != "" {
		steps, err := app.ParseScript(headlessScript)
		if err != nil {
			return err
		}
		clock := hal.NewManualClock(0)
		s, err := newSession(cmd, sessionOptions{clock: clock})
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.sys.RunScript(clock, steps); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.sys.Text(glyphs))
		return nil
	}

	s, err := newSession(cmd, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	err = hal.RunHeadless(ctx, app.Guard(s.h, s.sys.Step), hal.HeadlessConfig{Hz: headlessHz, Ticks: headlessTicks})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.sys.Text(glyphs))
	return nil
}
