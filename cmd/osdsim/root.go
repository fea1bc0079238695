//go:build !tinygo

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flightosd/app"
	"flightosd/hal"
	"flightosd/internal/buildinfo"
	"flightosd/internal/settings"
	"flightosd/msp"
	"flightosd/sim"
)

var (
	settingsPath string
	flashPath    string
	logFile      string
	noVTX        bool
	noRC         bool
	serialPort   string
	serialBaud   int
	taps         int

	rootCmd = &cobra.Command{
		Use:   "osdsim",
		Short: "Stick-driven OSD menu simulator",
		Long: `Runs the on-screen display engine against a simulated flight controller,
or against a real one over MSP when --serial is given.

Without a subcommand the terminal front-end starts when stdout is a
terminal, otherwise one second of headless ticks runs and the final
screen is printed.`,
		Version:           buildinfo.Short(),
		RunE:              runDefault,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsPath, "settings", "", "settings file (default ~/.config/flightosd/osdsim.toml)")
	pf.StringVar(&flashPath, "flash", "", "flash image holding the saved config")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")
	pf.BoolVar(&noVTX, "no-vtx", false, "build without the VTX page")
	pf.BoolVar(&noRC, "no-rc", false, "build without the RC tuning page")
	pf.StringVar(&serialPort, "serial", "", "read sticks and telemetry from a flight controller over MSP")
	pf.IntVar(&serialBaud, "baud", 0, "MSP baud rate")
	pf.IntVar(&taps, "taps", 0, "content passes a key press holds its gesture")

	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(portsCmd)
}

func runDefault(cmd *cobra.Command, args []string) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return runTUI(cmd, args)
	}
	return runHeadless(cmd, args)
}

// session is one wired simulator run.
type session struct {
	h   hal.HAL
	sys *app.System

	closers []io.Closer
	cancel  context.CancelFunc
	done    chan struct{}
}

// goRun runs fn in the background until Close. Close waits for it to return
// before closing anything fn may still be using.
func (s *session) goRun(parent context.Context, fn func(context.Context) error) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		_ = fn(ctx)
	}()
}

func (s *session) Close() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

type sessionOptions struct {
	// quietLog drops logs unless a log file is set, for front-ends that own
	// the terminal.
	quietLog bool
	latching bool
	clock    hal.Clock
}

func loadSettings(cmd *cobra.Command) (settings.Settings, error) {
	st, err := settings.Load(settingsPath)
	if err != nil {
		return settings.Settings{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("flash") {
		st.FlashPath = flashPath
	}
	if flags.Changed("log-file") {
		st.LogFile = logFile
	}
	if noVTX {
		st.VTX = false
	}
	if noRC {
		st.RCTuning = false
	}
	if flags.Changed("serial") {
		st.SerialPort = serialPort
	}
	if serialBaud > 0 {
		st.SerialBaud = serialBaud
	}
	if taps > 0 {
		st.Taps = taps
	}
	return st, nil
}

func newSession(cmd *cobra.Command, opts sessionOptions) (*session, error) {
	st, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	s := &session{}

	var out io.Writer = os.Stderr
	switch {
	case st.LogFile != "":
		if err := os.MkdirAll(filepath.Dir(st.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(st.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.closers = append(s.closers, f)
		out = f
	case opts.quietLog:
		out = io.Discard
	}

	if st.FlashPath != "" {
		if err := os.MkdirAll(filepath.Dir(st.FlashPath), 0o755); err != nil {
			s.Close()
			return nil, fmt.Errorf("create flash dir: %w", err)
		}
	}
	s.h = hal.New(hal.HostConfig{FlashPath: st.FlashPath, LogOutput: out, Clock: opts.clock})

	cfg := app.Config{
		VTX:      st.VTX,
		RCTuning: st.RCTuning,
		Taps:     st.Taps,
		Latching: opts.latching,
		Flight: sim.FlightConfig{
			VBat:       st.VBat,
			MinVBat:    st.MinVBat,
			DrainEvery: st.DrainEvery,
			RSSI:       st.RSSI,
			Load:       st.Load,
		},
	}

	if st.SerialPort != "" {
		port, err := msp.OpenSerial(st.SerialPort, st.SerialBaud, st.PollInterval)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, port)

		sampler := msp.NewSampler(msp.NewClient(port), st.PollInterval, s.h.Logger())
		s.goRun(cmd.Context(), sampler.Run)
		cfg.Sensors = sampler
		hal.Logf(s.h.Logger(), "msp: polling %s at %d baud", st.SerialPort, st.SerialBaud)
	}

	s.sys = app.New(s.h, cfg)
	return s, nil
}
