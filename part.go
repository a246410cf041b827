package psgmml

import "math"

// Score bytecode opcodes. Bytes 0x00-0x7F are rests, 0x80-0xDF are
// note-ons; anything not listed here terminates the channel.
const (
	opSetPatch    = 0xE0
	opSetVolume   = 0xE1
	opRepeatStart = 0xE2
	opRepeatBreak = 0xE3
	opRepeatEnd   = 0xE4
	opNoisePeriod = 0xE5
	opVolumeUp    = 0xE6
	opVolumeDown  = 0xE7
	opTie         = 0xE8
	opDetune      = 0xE9
	opLFOParam    = 0xEA
	opLFOEnable   = 0xEB
	opOutputMode  = 0xEC
)

// tonePeriodTable maps a chromatic pitch class (C..B) to its octave-0
// tone period. Higher octaves shift the period right.
var tonePeriodTable = [12]uint16{
	3816, 3602, 3400, 3209, 3029, 2859, 2698, 2547, 2404, 2269, 2142, 2022,
}

// part is the per-channel bytecode interpreter. It owns the channel's
// envelope, pitch LFO and repeat stack, and a cursor into the song data.
// All mutation happens inside tick.
type part struct {
	data      SongData
	patchAddr uint16

	env     envelope
	lfo     pitchLFO
	repeats repeatStack

	channel int
	cursor  uint16

	length uint8 // remaining ticks of the current note or rest
	tied   bool
	ended  bool

	octave            uint8
	volume            uint8
	tonePeriod        uint16
	detune            int16
	infiniteLoopCount uint16
}

func newPart(data SongData, patchAddr uint16, channel int, startAddr uint16) *part {
	p := &part{
		data:      data,
		patchAddr: patchAddr,
		channel:   channel,
		cursor:    startAddr,
		length:    1,
	}
	p.env.init()
	return p
}

func splitTonePeriod(note uint8) (period uint16, octave uint8) {
	return tonePeriodTable[note%12], note / 12
}

func (p *part) nextByte() byte {
	b := p.data.ReadByte(p.cursor)
	p.cursor++
	return b
}

func (p *part) nextSignedWord() int16 {
	v := int16(p.data.ReadWord(p.cursor))
	p.cursor += 2
	return v
}

func (p *part) applyVolume(chip Chip) {
	chip.SetVolume(p.channel, uint8((uint16(p.env.current)*uint16(p.volume))>>8))
}

func (p *part) updateVolume(chip Chip) {
	p.env.update()
	p.applyVolume(chip)
}

func (p *part) applyTonePeriod(chip Chip) {
	period := (int(p.tonePeriod) + int(p.detune) + int(p.lfo.effect)) >> p.octave
	chip.SetTonePeriod(p.channel, uint16(clamp(period, 1, 4095)))
}

func (p *part) updateTonePeriod(chip Chip) {
	if p.lfo.update() {
		p.applyTonePeriod(chip)
	}
}

func (p *part) end(chip Chip) {
	chip.SetVolume(p.channel, 0)
	p.ended = true
}

// tick advances the channel by one music tick and reports whether it is
// still playing. Inside a note or rest it evolves the LFO and envelope
// and re-emits the registers; on a tick boundary it consumes bytecode
// until the next duration-bearing opcode (note, rest or terminator).
func (p *part) tick(chip Chip) bool {
	if p.ended {
		return false
	}
	p.length--
	if p.length != 0 {
		p.updateTonePeriod(chip)
		p.updateVolume(chip)
		return true
	}
	for {
		switch data := p.nextByte(); {
		case data <= 0x7F: // rest for data+1 ticks
			if !p.tied {
				p.env.release()
			}
			p.length = data + 1
			return true

		case data <= 0xDF: // note-on, pitch data-0x80
			p.tonePeriod, p.octave = splitTonePeriod(data - 0x80)
			if !p.tied {
				p.env.attack()
				p.lfo.reset()
			}
			p.length = p.nextByte()
			// A tie marker after the duration suppresses the retrigger
			// of the next note or the release of the next rest.
			if p.data.ReadByte(p.cursor) == opTie {
				p.cursor++
				p.tied = true
			} else {
				p.tied = false
			}
			p.applyTonePeriod(chip)
			p.applyVolume(chip)
			return true

		case data == opSetPatch:
			// A patch number missing from the table keeps the
			// previous parameters.
			p.env.set(p.nextByte(), p.data, p.patchAddr)

		case data == opSetVolume:
			p.volume = p.nextByte()

		case data == opRepeatStart:
			count := p.nextByte()
			p.repeats.start(count, p.cursor)

		case data == opRepeatBreak:
			p.repeats.breakIfLast(&p.cursor)

		case data == opRepeatEnd:
			if p.repeats.end(&p.cursor) && p.infiniteLoopCount != math.MaxUint16 {
				p.infiniteLoopCount++
			}

		case data == opNoisePeriod:
			chip.SetNoisePeriod(p.nextByte())

		case data == opVolumeUp:
			p.volume = clampMax(p.volume+1, 15)

		case data == opVolumeDown:
			p.volume = satSub(p.volume, 1)

		case data == opDetune:
			p.detune = p.nextSignedWord()

		case data == opLFOParam:
			delay := p.nextByte()
			speed := p.nextByte()
			depth := p.nextByte()
			p.lfo.setParameter(delay, speed, depth, p.nextSignedWord())

		case data == opLFOEnable:
			p.lfo.setEnable(p.nextByte() != 0)

		case data == opOutputMode:
			chip.SetOutputMode(p.channel, decodeOutputMode(p.nextByte()))

		default:
			// Unknown opcodes (including a stray tie marker) terminate
			// the channel.
			p.end(chip)
			return false
		}
	}
}

func decodeOutputMode(b byte) OutputMode {
	switch b {
	case 0x01:
		return OutputTone
	case 0x02:
		return OutputNoise
	case 0x03:
		return OutputToneNoise
	default:
		return OutputNone
	}
}
