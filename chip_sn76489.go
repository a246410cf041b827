package psgmml

import (
	sn76489 "github.com/user-none/go-chip-sn76489"
)

// SN76489Chip adapts the SN76489 PSG from github.com/user-none/go-chip-sn76489
// to the Chip interface, so songs can be rendered without writing a chip
// back end by hand.
//
// The SN76489 register model is close to what the engine targets, with a
// few gaps the adapter papers over:
//   - tone periods are 10-bit, so larger periods are clamped to 0x3FF;
//   - volume is an attenuation (0 is loudest), so levels are inverted;
//   - noise is a dedicated fourth channel with a 2-bit shift rate instead
//     of a chip-wide 8-bit period, so the period is quantized and the
//     loudest noise-routed channel drives the noise channel volume.
type SN76489Chip struct {
	chip *sn76489.SN76489

	sampleRate uint
	clockRate  uint

	clocksPerSample float64
	clockError      float64

	modes   [numChannels]OutputMode
	volumes [numChannels]uint8
}

// NewSN76489Chip creates an adapter around the Sega chip variant.
// Typical values: clockRate 3579545, sampleRate 44100.
func NewSN76489Chip(clockRate, sampleRate uint) *SN76489Chip {
	return &SN76489Chip{
		chip:            sn76489.New(int(clockRate), int(sampleRate), 1, sn76489.Sega),
		sampleRate:      sampleRate,
		clockRate:       clockRate,
		clocksPerSample: float64(clockRate) / float64(sampleRate),
	}
}

func (c *SN76489Chip) SampleRate() uint { return c.sampleRate }

func (c *SN76489Chip) ClockRate() uint { return c.clockRate }

func (c *SN76489Chip) SetTonePeriod(channel int, period uint16) {
	reg := clampMax(period, 0x3FF)
	c.chip.Write(0x80 | uint8(channel)<<5 | uint8(reg&0x0F))
	c.chip.Write(uint8(reg >> 4))
}

func (c *SN76489Chip) SetVolume(channel int, volume uint8) {
	c.volumes[channel] = clampMax(volume, 15)
	c.applyMix()
}

func (c *SN76489Chip) SetOutputMode(channel int, mode OutputMode) {
	c.modes[channel] = mode
	c.applyMix()
}

// SetNoisePeriod quantizes the 8-bit period to the chip's three fixed
// white-noise shift rates (0 is the highest noise pitch on both models).
func (c *SN76489Chip) SetNoisePeriod(period uint8) {
	var rate uint8
	switch {
	case period < 0x10:
		rate = 0
	case period < 0x40:
		rate = 1
	default:
		rate = 2
	}
	c.chip.Write(0xE0 | 0x04 | rate)
}

// applyMix rewrites the four attenuation registers from the per-channel
// volume and routing state. Channels without tone routing are muted on
// their tone slot; the noise slot carries the loudest noise-routed channel.
func (c *SN76489Chip) applyMix() {
	var noise uint8
	for channel := 0; channel < numChannels; channel++ {
		var tone uint8
		switch c.modes[channel] {
		case OutputTone:
			tone = c.volumes[channel]
		case OutputNoise:
			noise = max(noise, c.volumes[channel])
		case OutputToneNoise:
			tone = c.volumes[channel]
			noise = max(noise, c.volumes[channel])
		}
		c.chip.Write(0x90 | uint8(channel)<<5 | (15 - tone))
	}
	c.chip.Write(0xF0 | (15 - noise))
}

// step advances the chip clock by one output sample's worth of cycles,
// carrying the fractional remainder between samples.
func (c *SN76489Chip) step() {
	c.clockError += c.clocksPerSample
	n := int(c.clockError)
	c.clockError -= float64(n)
	for i := 0; i < n; i++ {
		c.chip.Clock()
	}
}

func (c *SN76489Chip) NextSample() int16 {
	c.step()
	return int16(clamp(float64(c.chip.Sample())*32767, -32768, 32767))
}

func (c *SN76489Chip) NextSampleFloat() float32 {
	c.step()
	return c.chip.Sample()
}
