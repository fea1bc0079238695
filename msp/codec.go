// Package msp speaks MultiWii Serial Protocol v1 to a flight controller.
package msp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Commands used by the OSD.
const (
	CmdStatus uint8 = 101
	CmdRC     uint8 = 105
	CmdAnalog uint8 = 110
)

// Frame directions.
const (
	ToFC   byte = '<'
	FromFC byte = '>'
	Failed byte = '!'
)

const maxPayload = 255

var (
	ErrChecksum = errors.New("msp: checksum mismatch")
	ErrTimeout  = errors.New("msp: timeout")
	// ErrRejected means the flight controller answered with an error frame.
	ErrRejected = errors.New("msp: command rejected")
)

// Frame is one decoded message.
type Frame struct {
	Direction byte
	Cmd       uint8
	Payload   []byte
}

// Encode builds a v1 frame: "$M", direction, size, command, payload and the
// XOR of size, command and payload.
func Encode(direction byte, cmd uint8, payload []byte) ([]byte, error) {
	if len(payload) > maxPayload {
		return nil, fmt.Errorf("msp: payload of %d bytes", len(payload))
	}
	out := make([]byte, 0, 6+len(payload))
	out = append(out, '$', 'M', direction, byte(len(payload)), cmd)
	sum := byte(len(payload)) ^ cmd
	for _, b := range payload {
		sum ^= b
	}
	out = append(out, payload...)
	out = append(out, sum)
	return out, nil
}

// ReadFrame reads the next frame from r, skipping any noise before the
// preamble.
func ReadFrame(r *bufio.Reader) (Frame, error) {
	for {
		b, err := readByte(r)
		if err != nil {
			return Frame{}, err
		}
		if b != '$' {
			continue
		}
		if b, err = readByte(r); err != nil {
			return Frame{}, err
		}
		if b != 'M' {
			continue
		}
		break
	}

	var hdr [3]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Frame{}, mapReadErr(err)
	}
	f := Frame{Direction: hdr[0], Cmd: hdr[2]}
	switch f.Direction {
	case ToFC, FromFC, Failed:
	default:
		return Frame{}, fmt.Errorf("msp: bad direction %q", f.Direction)
	}

	size := int(hdr[1])
	body := make([]byte, size+1)
	if _, err := io.ReadFull(r, body); err != nil {
		return Frame{}, mapReadErr(err)
	}
	sum := hdr[1] ^ hdr[2]
	for _, b := range body[:size] {
		sum ^= b
	}
	if sum != body[size] {
		return Frame{}, fmt.Errorf("cmd %d: %w", f.Cmd, ErrChecksum)
	}
	f.Payload = body[:size]
	return f, nil
}

func readByte(r *bufio.Reader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, mapReadErr(err)
	}
	return b, nil
}

// A serial port with a read timeout returns (0, nil) when idle, which bufio
// reports as io.ErrNoProgress.
func mapReadErr(err error) error {
	if errors.Is(err, io.ErrNoProgress) {
		return ErrTimeout
	}
	return err
}
