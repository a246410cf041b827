package psgmml

// pitchLFO is a triangle-wave vibrato generator.
// effect is the signed value the part adds to the tone period on every
// tick the LFO fires.
type pitchLFO struct {
	enabled      bool
	delay        uint8
	speed        uint8
	depth        uint8
	displacement int16

	waitCount           uint8
	depthCount          uint8
	currentDisplacement int16
	effect              int16
}

func (l *pitchLFO) setEnable(enabled bool) {
	l.enabled = enabled
	l.reset()
}

func (l *pitchLFO) setParameter(delay, speed, depth uint8, displacement int16) {
	l.enabled = true
	l.delay = delay
	l.speed = speed
	l.depth = depth
	l.displacement = displacement
	l.reset()
}

func (l *pitchLFO) reset() {
	l.waitCount = l.delay
	l.depthCount = l.depth >> 1
	l.currentDisplacement = l.displacement
	l.effect = 0
}

// update advances the LFO by one tick and reports whether effect changed,
// telling the caller to recompute the channel's tone period.
//
// A delay (or speed) of 0 behaves like 1 and fires on the next update
// instead of underflowing the wait counter. Likewise a depth of 0 or 1
// reverses the displacement sign on every step.
func (l *pitchLFO) update() bool {
	if !l.enabled {
		return false
	}
	if l.waitCount > 1 {
		l.waitCount--
		return false
	}
	l.waitCount = l.speed
	l.effect += l.currentDisplacement
	if l.depthCount > 1 {
		l.depthCount--
	} else {
		l.depthCount = l.depth
		l.currentDisplacement = -l.currentDisplacement
	}
	return true
}
