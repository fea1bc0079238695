package sim

import (
	"flightosd/hal"
	"flightosd/vtx"
)

// VTX records what the OSD asks of the video transmitter.
type VTX struct {
	log hal.Logger

	Inits int
	Freq  uint16
}

// NewVTX logs tuning requests to log.
func NewVTX(log hal.Logger) *VTX { return &VTX{log: log} }

func (v *VTX) Init() {
	v.Inits++
	hal.Logf(v.log, "vtx: init")
}

func (v *VTX) SetChannel(freqMHz uint16) {
	v.Freq = freqMHz
	hal.Logf(v.log, "vtx: tuned to %d MHz", freqMHz)
}

var _ vtx.Driver = (*VTX)(nil)
