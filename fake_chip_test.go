package psgmml

import (
	"fmt"
)

// fakeChip records register writes and produces a deterministic ramp of
// samples, so tests can assert both the write sequence and the exact
// number of samples pulled.
type fakeChip struct {
	rate uint

	volumes     [numChannels]uint8
	tonePeriods [numChannels]uint16
	modes       [numChannels]OutputMode
	noisePeriod uint8

	writes        []string
	samplesPulled int
	sampleCounter int16
}

func (c *fakeChip) SampleRate() uint {
	if c.rate == 0 {
		return 44100
	}
	return c.rate
}

func (c *fakeChip) ClockRate() uint { return 3579545 }

func (c *fakeChip) SetTonePeriod(channel int, period uint16) {
	c.tonePeriods[channel] = period
	c.writes = append(c.writes, fmt.Sprintf("tone[%d]=%d", channel, period))
}

func (c *fakeChip) SetVolume(channel int, volume uint8) {
	c.volumes[channel] = volume
	c.writes = append(c.writes, fmt.Sprintf("volume[%d]=%d", channel, volume))
}

func (c *fakeChip) SetOutputMode(channel int, mode OutputMode) {
	c.modes[channel] = mode
	c.writes = append(c.writes, fmt.Sprintf("mode[%d]=%d", channel, mode))
}

func (c *fakeChip) SetNoisePeriod(period uint8) {
	c.noisePeriod = period
	c.writes = append(c.writes, fmt.Sprintf("noise=%d", period))
}

func (c *fakeChip) NextSample() int16 {
	c.samplesPulled++
	c.sampleCounter++
	return c.sampleCounter
}

func (c *fakeChip) NextSampleFloat() float32 {
	c.samplesPulled++
	return 0.5
}
