package msp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"flightosd/hal"
	"flightosd/osd"

	"go.bug.st/serial"
)

// Client issues requests and waits for the matching reply. Frames for other
// commands are dropped.
type Client struct {
	mu sync.Mutex
	w  io.Writer
	r  *bufio.Reader

	// MaxSkipped bounds how many unrelated frames a request reads past.
	MaxSkipped int
}

// NewClient talks MSP over rw.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{w: rw, r: bufio.NewReader(rw), MaxSkipped: 8}
}

// Request sends cmd with an empty payload and returns the reply payload.
func (c *Client) Request(cmd uint8) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, err := Encode(ToFC, cmd, nil)
	if err != nil {
		return nil, err
	}
	if _, err := c.w.Write(req); err != nil {
		return nil, fmt.Errorf("msp: write cmd %d: %w", cmd, err)
	}
	for skipped := 0; skipped <= c.MaxSkipped; skipped++ {
		f, err := ReadFrame(c.r)
		if err != nil {
			if errors.Is(err, ErrChecksum) {
				continue
			}
			return nil, fmt.Errorf("msp: read cmd %d: %w", cmd, err)
		}
		if f.Cmd != cmd || f.Direction == ToFC {
			continue
		}
		if f.Direction == Failed {
			return nil, fmt.Errorf("cmd %d: %w", cmd, ErrRejected)
		}
		return f.Payload, nil
	}
	return nil, fmt.Errorf("msp: cmd %d: no reply: %w", cmd, ErrTimeout)
}

// Status requests MSP_STATUS.
func (c *Client) Status() (Status, error) {
	p, err := c.Request(CmdStatus)
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(p)
}

// RC requests MSP_RC.
func (c *Client) RC() ([]uint16, error) {
	p, err := c.Request(CmdRC)
	if err != nil {
		return nil, err
	}
	return ParseRC(p)
}

// Analog requests MSP_ANALOG.
func (c *Client) Analog() (Analog, error) {
	p, err := c.Request(CmdAnalog)
	if err != nil {
		return Analog{}, err
	}
	return ParseAnalog(p)
}

// Poll reads one full telemetry snapshot.
func (c *Client) Poll() (osd.Telemetry, error) {
	var tel osd.Telemetry

	st, err := c.Status()
	if err != nil {
		return tel, err
	}
	rc, err := c.RC()
	if err != nil {
		return tel, err
	}
	an, err := c.Analog()
	if err != nil {
		return tel, err
	}

	tel.Armed = st.Armed()
	tel.SystemLoad = st.SystemLoad
	for i := 0; i < len(tel.Channels) && i < len(rc); i++ {
		tel.Channels[i] = rc[i]
	}
	tel.VBat = uint16(an.VBat)
	tel.RSSI = an.RSSI
	return tel, nil
}

// Sampler polls a Client in the background and serves the latest snapshot
// without blocking the OSD tick.
type Sampler struct {
	client   *Client
	interval time.Duration
	log      hal.Logger

	mu     sync.Mutex
	tel    osd.Telemetry
	failed bool
}

// NewSampler starts from sticks centered and throttle low.
func NewSampler(c *Client, interval time.Duration, log hal.Logger) *Sampler {
	s := &Sampler{client: c, interval: interval, log: log}
	for i := range s.tel.Channels {
		s.tel.Channels[i] = 1500
	}
	s.tel.Channels[osd.StickThrottle] = 1000
	return s
}

// Sample returns the last good snapshot.
func (s *Sampler) Sample() osd.Telemetry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tel
}

// Run polls until ctx is done. Poll errors are logged once per outage and
// the last good snapshot is kept.
func (s *Sampler) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		s.pollOnce()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (s *Sampler) pollOnce() {
	tel, err := s.client.Poll()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if !s.failed {
			hal.Logf(s.log, "msp: poll: %v", err)
		}
		s.failed = true
		return
	}
	if s.failed {
		hal.Logf(s.log, "msp: link restored")
	}
	s.failed = false
	s.tel = tel
}

// OpenSerial opens a flight controller port at 8N1.
func OpenSerial(port string, baud int, timeout time.Duration) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", port, err)
	}
	if timeout > 0 {
		if err := p.SetReadTimeout(timeout); err != nil {
			p.Close()
			return nil, fmt.Errorf("set read timeout: %w", err)
		}
	}
	return p, nil
}

// Ports lists the serial ports of the host.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
