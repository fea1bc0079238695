//go:build !tinygo

package main

import (
	"time"

	"github.com/spf13/cobra"

	"flightosd/internal/tui"
)

var (
	tuiTick time.Duration

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Show the OSD in the terminal",
		Long: `Shows the OSD grid in the terminal. Logs go to --log-file, or nowhere.
Press ? for the key list.`,
		RunE: runTUI,
	}
)

func init() {
	tuiCmd.Flags().DurationVar(&tuiTick, "tick", 20*time.Millisecond, "engine polling interval")
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, sessionOptions{quietLog: true})
	if err != nil {
		return err
	}
	defer s.Close()
	return tui.Run(tui.Options{System: s.sys, Tick: tuiTick})
}
