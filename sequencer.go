package psgmml

import "strings"

// Sequencer holds the parsed song header: the patch table address and the
// bytecode start address of every used channel. It is immutable once
// constructed; playback state lives in the PlayContext it creates.
type Sequencer struct {
	data      SongData
	patchAddr uint16
	parts     [numChannels]partAddr
}

type partAddr struct {
	addr uint16
	ok   bool
}

// NewSequencer parses the song header from data.
//
// The header is a null-terminated title followed by one flag byte, the
// 16-bit patch table offset and three 16-bit part offsets. Offsets are
// relative to the title terminator; a part offset of 0 marks an unused
// channel. The data is trusted; use mmlfile.Load to validate a blob of
// unknown origin first.
func NewSequencer(data SongData) *Sequencer {
	var index uint16
	for data.ReadByte(index) != 0 {
		index++
	}
	bodyOffset := index
	index += 2 // skip the title terminator and the unused flag byte

	s := &Sequencer{
		data:      data,
		patchAddr: data.ReadWord(index) + bodyOffset,
	}
	index += 2
	for i := range s.parts {
		offset := data.ReadWord(index + uint16(i)*2)
		if offset != 0 {
			s.parts[i] = partAddr{addr: offset + bodyOffset, ok: true}
		}
	}
	return s
}

// Title returns the song title. Newline bytes are normalized to spaces.
func (s *Sequencer) Title() string {
	var b strings.Builder
	for index := uint16(0); ; index++ {
		ch := s.data.ReadByte(index)
		if ch == 0 {
			return b.String()
		}
		if ch == '\n' {
			ch = ' '
		}
		b.WriteByte(ch)
	}
}

// Play creates a playback session driving chip. The chip is reset to a
// silent state and is owned by the returned context until the session ends.
func (s *Sequencer) Play(chip Chip) *PlayContext {
	var parts [numChannels]*part
	for i, pa := range s.parts {
		if pa.ok {
			parts[i] = newPart(s.data, s.patchAddr, i, pa.addr)
		}
	}
	return newPlayContext(parts, chip)
}
