package osd

import (
	"fmt"

	"flightosd/config"
)

const (
	pageStatus   = "STATUS"
	pageVTX      = "VTX SETTINGS"
	pagePID      = "PID SETTINGS"
	pageRCTuning = "RC RATES"
)

var singleColumn = []Column{{X: 15}}

// buildPages assembles the page catalog from the enabled features. It runs
// once per engine; the result is never modified afterwards.
func (e *Engine) buildPages(rcTuning bool) []Page {
	cfg := e.cfg
	pages := []Page{
		NewPage(pageStatus, singleColumn,
			NewRow("AVG LOAD", KindReadOnly, statusField(func() string {
				return fmt.Sprintf("%d", e.tel.SystemLoad)
			})),
			NewRow("BATT", KindReadOnly, statusField(func() string {
				return formatVoltage(e.tel.VBat)
			})),
		),
	}

	if e.vtx != nil {
		pages = append(pages, NewPage(pageVTX, singleColumn,
			NewRow("BAND", KindVTX, vtxBandField{ch: &e.vtxChannel}),
			NewRow("CHANNEL", KindVTX, vtxSlotField{ch: &e.vtxChannel}),
			NewRow("FREQUENCY", KindReadOnly, statusField(func() string {
				return fmt.Sprintf("%d M", e.vtxChannel.Frequency())
			})),
		))
	}

	pages = append(pages, NewPage(pagePID,
		[]Column{{Title: "P", X: 13}, {Title: "I", X: 19}, {Title: "D", X: 25}},
		NewRow("ROLL", KindPIDGain, pidField{pid: &cfg.PID, axis: config.Roll}),
		NewRow("PITCH", KindPIDGain, pidField{pid: &cfg.PID, axis: config.Pitch}),
		NewRow("YAW", KindPIDGain, pidField{pid: &cfg.PID, axis: config.Yaw}),
		NewRow("ROLL_RATE", KindRate, rateField{rates: &cfg.Rates, axis: config.Roll}),
		NewRow("PITCH_RATE", KindRate, rateField{rates: &cfg.Rates, axis: config.Pitch}),
		NewRow("YAW_RATE", KindRate, rateField{rates: &cfg.Rates, axis: config.Yaw}),
	))

	if rcTuning {
		r := &cfg.Rates
		pages = append(pages, NewPage(pageRCTuning, singleColumn,
			NewRow("RC_RATE", KindSetting, uint8Field{v: &r.RCRate, max: config.RCRateMax}),
			NewRow("RC_EXPO", KindSetting, uint8Field{v: &r.RCExpo, max: config.ExpoMax}),
			NewRow("YAW_EXPO", KindSetting, uint8Field{v: &r.RCYawExpo, max: config.ExpoMax}),
			NewRow("THR_MID", KindSetting, uint8Field{v: &r.ThrMid, max: config.ThrMidMax}),
			NewRow("THR_EXPO", KindSetting, uint8Field{v: &r.ThrExpo, max: config.ExpoMax}),
			NewRow("TPA_RATE", KindSetting, uint8Field{v: &r.TPARate, max: config.TPAMax}),
			NewRow("TPA_BREAK", KindSetting, uint16Field{
				v:    &r.TPABreakpoint,
				min:  config.PWMRangeMin,
				max:  config.PWMRangeMax,
				step: 10,
			}),
		))
	}
	return pages
}

func formatVoltage(deciVolts uint16) string {
	return fmt.Sprintf("%d.%1d", deciVolts/10, deciVolts%10)
}
