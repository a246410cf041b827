package psgmml

// One music tick lasts exactly 5994/100 Hz worth of samples (~59.94 Hz,
// the NTSC frame rate the score format is authored against).
const tickRateX100 = 5994

// samplesPerTick converts music ticks to whole sample counts with an
// error-accumulation divider: per-tick counts are quotient or quotient+1,
// and the running sum has zero drift against the true ratio.
type samplesPerTick struct {
	quotient  uint32
	remainder uint32
	err       int32
	samples   int
}

func newSamplesPerTick(sampleRate uint) samplesPerTick {
	rateX100 := uint32(sampleRate) * 100
	t := samplesPerTick{
		quotient:  rateX100 / tickRateX100,
		remainder: rateX100 % tickRateX100,
		err:       -tickRateX100,
	}
	t.next()
	return t
}

// consume subtracts produced samples from the current tick's budget and
// reports whether any budget remains.
func (t *samplesPerTick) consume(n int) bool {
	t.samples -= n
	return t.samples != 0
}

// next computes the sample budget of the next tick.
func (t *samplesPerTick) next() {
	t.err += int32(t.remainder)
	n := t.quotient
	if t.err >= 0 {
		t.err -= tickRateX100
		n++
	}
	t.samples = int(n)
}
