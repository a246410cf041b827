package psgmml

type envelopePhase uint8

const (
	phaseAttack envelopePhase = iota
	phaseDecay
	phaseSustain
	phaseRelease
)

// envelope is the per-channel ADSR amplitude state machine.
// current is the 0-255 output level; the part scales it by the channel
// volume when writing to the chip.
type envelope struct {
	current uint8
	phase   envelopePhase

	attackLevel  uint8
	attackRate   uint8
	decayRate    uint8
	sustainLevel uint8
	sustainRate  uint8
	releaseRate  uint8
}

// init loads the default patch: full volume, no decay, instant release.
func (e *envelope) init() {
	*e = envelope{
		attackLevel: 0xFF,
		attackRate:  0xFF,
		releaseRate: 0xFF,
	}
}

// set scans the 7-byte patch records starting at tableAddr for patchNumber
// and loads its parameters. A record starting with 0xFF terminates the
// table; in that case the envelope keeps its previous parameters and
// set reports false.
func (e *envelope) set(patchNumber uint8, data SongData, tableAddr uint16) bool {
	addr := tableAddr
	for {
		switch n := data.ReadByte(addr); {
		case n == patchNumber:
			e.attackLevel = data.ReadByte(addr + 1)
			e.attackRate = data.ReadByte(addr + 2)
			e.decayRate = data.ReadByte(addr + 3)
			e.sustainLevel = data.ReadByte(addr + 4)
			e.sustainRate = data.ReadByte(addr + 5)
			e.releaseRate = data.ReadByte(addr + 6)
			return true
		case n == 0xFF:
			return false
		default:
			addr += 7
		}
	}
}

// attack retriggers the envelope. An attack level of 255 skips the
// attack ramp entirely and starts in the decay phase.
func (e *envelope) attack() {
	e.current = e.attackLevel
	if e.current == 0xFF {
		e.phase = phaseDecay
	} else {
		e.phase = phaseAttack
	}
}

func (e *envelope) release() {
	e.phase = phaseRelease
}

// update advances the envelope by one amplitude step.
// Note that the sustain phase is not a hold: it keeps decaying at the
// sustain rate until silence or the next attack.
func (e *envelope) update() {
	switch e.phase {
	case phaseAttack:
		next := uint16(e.current) + uint16(e.attackRate)
		if next > 0xFF {
			e.current = 0xFF
			e.phase = phaseDecay
		} else {
			e.current = uint8(next)
		}
	case phaseDecay:
		next := satSub(e.current, e.decayRate)
		if next < e.sustainLevel {
			e.current = e.sustainLevel
			e.phase = phaseSustain
		} else {
			e.current = next
		}
	case phaseSustain:
		e.current = satSub(e.current, e.sustainRate)
	case phaseRelease:
		e.current = satSub(e.current, e.releaseRate)
	}
}
