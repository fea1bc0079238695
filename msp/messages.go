package msp

import (
	"encoding/binary"
	"fmt"
)

// Status is the MSP_STATUS reply.
type Status struct {
	CycleTime  uint16
	I2CErrors  uint16
	Sensors    uint16
	ModeFlags  uint32
	Profile    uint8
	SystemLoad uint16 // percent, zero on firmware that does not send it
}

// Armed reports the ARM box, which is always box 0.
func (s Status) Armed() bool { return s.ModeFlags&1 != 0 }

// ParseStatus decodes an MSP_STATUS payload.
func ParseStatus(p []byte) (Status, error) {
	if len(p) < 11 {
		return Status{}, fmt.Errorf("msp: status payload of %d bytes", len(p))
	}
	s := Status{
		CycleTime: binary.LittleEndian.Uint16(p[0:]),
		I2CErrors: binary.LittleEndian.Uint16(p[2:]),
		Sensors:   binary.LittleEndian.Uint16(p[4:]),
		ModeFlags: binary.LittleEndian.Uint32(p[6:]),
		Profile:   p[10],
	}
	if len(p) >= 13 {
		s.SystemLoad = binary.LittleEndian.Uint16(p[11:])
	}
	return s, nil
}

// ParseRC decodes an MSP_RC payload into channel values in microseconds.
func ParseRC(p []byte) ([]uint16, error) {
	if len(p)%2 != 0 {
		return nil, fmt.Errorf("msp: rc payload of %d bytes", len(p))
	}
	ch := make([]uint16, len(p)/2)
	for i := range ch {
		ch[i] = binary.LittleEndian.Uint16(p[2*i:])
	}
	return ch, nil
}

// Analog is the MSP_ANALOG reply.
type Analog struct {
	VBat     uint8 // deci-volts
	MAhDrawn uint16
	RSSI     uint16 // 0..1023
	Amperage int16  // centi-amps
}

// ParseAnalog decodes an MSP_ANALOG payload.
func ParseAnalog(p []byte) (Analog, error) {
	if len(p) < 7 {
		return Analog{}, fmt.Errorf("msp: analog payload of %d bytes", len(p))
	}
	a := Analog{
		VBat:     p[0],
		MAhDrawn: binary.LittleEndian.Uint16(p[1:]),
		RSSI:     binary.LittleEndian.Uint16(p[3:]),
		Amperage: int16(binary.LittleEndian.Uint16(p[5:])),
	}
	return a, nil
}
