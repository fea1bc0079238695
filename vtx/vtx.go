// Package vtx holds the RTC6705 5.8 GHz channel plan: five bands of eight
// channels, addressed by a flat 0-based index (band*8 + channel).
package vtx

const (
	ChannelsPerBand = 8
	BandCount       = 5
	ChannelCount    = BandCount * ChannelsPerBand
)

var bandNames = [BandCount]string{
	"BOSCAM A",
	"BOSCAM B",
	"BOSCAM E",
	"FATSHARK",
	"RACEBAND",
}

var frequencies = [ChannelCount]uint16{
	5865, 5845, 5825, 5805, 5785, 5765, 5745, 5725, // A
	5733, 5752, 5771, 5790, 5809, 5828, 5847, 5866, // B
	5705, 5685, 5665, 5645, 5885, 5905, 5925, 5945, // E
	5740, 5760, 5780, 5800, 5820, 5840, 5860, 5880, // F
	5658, 5695, 5732, 5769, 5806, 5843, 5880, 5917, // R
}

// Driver tunes the video transmitter.
type Driver interface {
	Init()
	SetChannel(freqMHz uint16)
}

// Channel is a flat index into the channel plan.
type Channel uint8

// Band returns the 0-based band of c.
func (c Channel) Band() int { return int(c) / ChannelsPerBand }

// Slot returns the 0-based channel within the band.
func (c Channel) Slot() int { return int(c) % ChannelsPerBand }

// BandName returns the display name of c's band.
func (c Channel) BandName() string {
	if c.Band() >= BandCount {
		return "?"
	}
	return bandNames[c.Band()]
}

// Frequency returns c's carrier in MHz, or 0 when c is out of range.
func (c Channel) Frequency() uint16 {
	if int(c) >= ChannelCount {
		return 0
	}
	return frequencies[c]
}

// StepBand moves to the same slot in the next or previous band, saturating
// at the first and last band.
func (c Channel) StepBand(increase bool) Channel {
	if increase {
		if c.Band() < BandCount-1 {
			return c + ChannelsPerBand
		}
		return c
	}
	if c.Band() > 0 {
		return c - ChannelsPerBand
	}
	return c
}

// StepSlot moves to the next or previous channel within the band, saturating
// at the band edges.
func (c Channel) StepSlot(increase bool) Channel {
	if increase {
		if c.Slot() < ChannelsPerBand-1 {
			return c + 1
		}
		return c
	}
	if c.Slot() > 0 {
		return c - 1
	}
	return c
}
