//go:build !tinygo

package main

import (
	"github.com/spf13/cobra"

	"flightosd/app"
	"flightosd/hal"
)

var (
	windowScale int

	windowCmd = &cobra.Command{
		Use:   "window",
		Short: "Open a desktop window rendering the OSD",
		Long: `Opens a window showing the OSD rasterized onto a 320x240 framebuffer.
Held keys hold their stick gesture until released.

Keys: m menu, arrows pitch and roll, enter yaw right, backspace yaw left,
a arm switch, w/s throttle.`,
		RunE: runWindow,
	}
)

func init() {
	windowCmd.Flags().IntVar(&windowScale, "scale", 2, "window scale factor")
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, sessionOptions{latching: true})
	if err != nil {
		return err
	}
	defer s.Close()
	return hal.RunWindow(s.h, app.Guard(s.h, s.sys.Step), windowScale)
}
