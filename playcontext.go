package psgmml

// PlayContext multiplexes up to 3 channel interpreters into the sample
// stream of one Chip. Create it with Sequencer.Play.
//
// Playback is pull-based and single-threaded: the caller repeatedly asks
// for samples (or drives ticks directly) and the context interleaves chip
// register updates at exact tick boundaries. Given the same song data and
// call sequence the output is bit-for-bit reproducible.
type PlayContext struct {
	parts [numChannels]*part
	chip  Chip
	ticks samplesPerTick

	maxLoopCount int
}

func newPlayContext(parts [numChannels]*part, chip Chip) *PlayContext {
	for channel := 0; channel < numChannels; channel++ {
		chip.SetOutputMode(channel, OutputTone)
		chip.SetVolume(channel, 0)
		chip.SetTonePeriod(channel, 0)
	}
	chip.SetNoisePeriod(0)
	return &PlayContext{
		parts: parts,
		chip:  chip,
		ticks: newSamplesPerTick(chip.SampleRate()),
	}
}

// SetMaxLoopCount bounds otherwise-infinite songs: once any channel has
// passed an infinite repeat count times, every channel is force-silenced
// and sample production stops. A count of 0 removes the limit.
func (c *PlayContext) SetMaxLoopCount(count int) {
	c.maxLoopCount = count
	c.applyMaxLoopCount()
}

// fillSamples is the shared sample loop; the int16 and float32 paths only
// differ in the pull function.
func fillSamples[T any](c *PlayContext, buffer []T, pull func(Chip) T) int {
	n := 0
	for n < len(buffer) {
		fill := min(c.ticks.samples, len(buffer)-n)
		for i := 0; i < fill; i++ {
			buffer[n+i] = pull(c.chip)
		}
		n += fill
		if !c.ticks.consume(fill) {
			if c.applyMaxLoopCount() {
				break
			}
			if !c.Tick() {
				break
			}
			c.ticks.next()
		}
	}
	return n
}

// NextSamples fills buffer with 16-bit PCM samples and returns how many
// were produced. A short count means the song ended.
func (c *PlayContext) NextSamples(buffer []int16) int {
	return fillSamples(c, buffer, Chip.NextSample)
}

// NextSamplesFloat is NextSamples for a float32 sample path.
func (c *PlayContext) NextSamplesFloat(buffer []float32) int {
	return fillSamples(c, buffer, Chip.NextSampleFloat)
}

// Tick advances every active channel by one music tick and reports
// whether any channel is still playing. Channels that hit their
// terminator are removed.
func (c *PlayContext) Tick() bool {
	playing := false
	for i, p := range c.parts {
		if p == nil {
			continue
		}
		if p.tick(c.chip) {
			playing = true
		} else {
			c.parts[i] = nil
		}
	}
	return playing
}

// IsPlaying reports whether any channel slot is still occupied.
func (c *PlayContext) IsPlaying() bool {
	for _, p := range c.parts {
		if p != nil {
			return true
		}
	}
	return false
}

// End force-silences every channel.
func (c *PlayContext) End() {
	for _, p := range c.parts {
		if p != nil {
			p.end(c.chip)
		}
	}
}

func (c *PlayContext) applyMaxLoopCount() bool {
	if c.maxLoopCount <= 0 {
		return false
	}
	if int(c.infiniteLoopCount()) >= c.maxLoopCount {
		c.End()
		return true
	}
	return false
}

func (c *PlayContext) infiniteLoopCount() uint16 {
	var count uint16
	for _, p := range c.parts {
		if p != nil && p.infiniteLoopCount > count {
			count = p.infiniteLoopCount
		}
	}
	return count
}
