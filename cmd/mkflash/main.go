//go:build !tinygo

// Command mkflash writes a flash image holding a committed OSD configuration,
// ready for osdsim --flash.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"flightosd/config"
)

const (
	defaultFlashPath = "flash.bin"
	defaultFlashSize = 64 * 1024
	defaultEraseSize = 4096
)

type flashFile struct {
	f         *os.File
	size      uint32
	eraseSize uint32

	scratch []byte
}

func openFlashFile(path string, size uint32, eraseSize uint32) (*flashFile, error) {
	if eraseSize == 0 || eraseSize%256 != 0 {
		return nil, fmt.Errorf("flash: invalid erase size %d", eraseSize)
	}
	if size == 0 || size%eraseSize != 0 {
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", size, eraseSize)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash file %q: %w", path, err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("truncate flash file %q to %d: %w", path, size, err)
	}

	ff := &flashFile{
		f:         f,
		size:      size,
		eraseSize: eraseSize,
		scratch:   make([]byte, eraseSize),
	}
	for i := range ff.scratch {
		ff.scratch[i] = 0xFF
	}
	if err := ff.Erase(0, size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("erase flash file %q: %w", path, err)
	}
	return ff, nil
}

func (f *flashFile) Close() error { return f.f.Close() }

func (f *flashFile) SizeBytes() uint32       { return f.size }
func (f *flashFile) EraseBlockBytes() uint32 { return f.eraseSize }

func (f *flashFile) ReadAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, int64(off))
}

func (f *flashFile) WriteAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}

	prev := make([]byte, len(p))
	if _, err := f.f.ReadAt(prev, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if prev[i]&p[i] != p[i] {
			return 0, errors.New("flash write requires erase")
		}
	}
	return f.f.WriteAt(p, int64(off))
}

func (f *flashFile) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if off%f.eraseSize != 0 || size%f.eraseSize != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	if off >= f.size || off+size > f.size {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	for size > 0 {
		if _, err := f.f.WriteAt(f.scratch, int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
		off += f.eraseSize
		size -= f.eraseSize
	}
	return nil
}

type options struct {
	out        string
	size       uint32
	erase      uint32
	controller string
	vtxChannel uint8
	batteryLow uint16
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "mkflash",
		Short: "Write a flash image holding an OSD configuration",
		Long: `Writes an erased flash image and commits the default configuration into
it, with the given overrides applied.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", opts.out, opts.size)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", defaultFlashPath, "output flash image path")
	f.Uint32Var(&opts.size, "size", defaultFlashSize, "flash image size in bytes")
	f.Uint32Var(&opts.erase, "erase", defaultEraseSize, "erase block size in bytes")
	f.StringVar(&opts.controller, "controller", config.Default().PID.Controller.String(), "PID controller (mw23, mwrewrite, lux)")
	f.Uint8Var(&opts.vtxChannel, "vtx-channel", 0, "VTX channel index, 0-39")
	f.Uint16Var(&opts.batteryLow, "battery-warning", config.Default().BatteryWarning, "low voltage warning in deci-volts")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.out == "" {
		return errors.New("--out is required")
	}
	ctrl, ok := config.ParseController(opts.controller)
	if !ok {
		return fmt.Errorf("unknown controller %q", opts.controller)
	}
	if opts.vtxChannel >= config.VTXChannelCount {
		return fmt.Errorf("vtx channel %d out of range 0-%d", opts.vtxChannel, config.VTXChannelCount-1)
	}

	cfg := config.Default()
	cfg.PID.Controller = ctrl
	cfg.VTXChannel = opts.vtxChannel
	cfg.BatteryWarning = opts.batteryLow

	ff, err := openFlashFile(opts.out, opts.size, opts.erase)
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	if err := config.NewFlashStore(ff, &cfg).Commit(); err != nil {
		return err
	}
	return nil
}
