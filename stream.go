package psgmml

import (
	"errors"
	"io"
)

// Stream wraps a playback session, making it possible to Read() its PCM bytes.
//
// The Read() method produces 16-bit little endian stereo PCM bytes; this is
// what the ebiten/audio package expects. Use Stream as an io.Reader argument
// for audio.NewPlayer().
type Stream struct {
	seq  *Sequencer
	chip Chip
	ctx  *PlayContext

	scratch [512]int16

	settings streamSettings

	bytePos int // Used to report the current pos via Seek()
}

type streamSettings struct {
	loop         bool
	maxLoopCount int
}

const streamBytesPerSample = 4 // 16-bit LE, mono duplicated to L/R

// NewStream binds a sequencer to a chip and prepares playback from the
// start of the song.
func NewStream(seq *Sequencer, chip Chip) *Stream {
	s := &Stream{seq: seq, chip: chip}
	s.rewind()
	return s
}

// SetLooping enables a simple looping from the beginning of the stream.
// When looping is enabled, Read will never return EOF.
//
// Songs that are meant to loop usually carry their own infinite repeat in
// the score; use this flag only for songs that simply run out. Combine an
// infinite repeat with SetMaxLoopCount for fixed-length rendering instead.
func (s *Stream) SetLooping(loop bool) {
	s.settings.loop = loop
}

// SetMaxLoopCount bounds songs with infinite repeats; see
// PlayContext.SetMaxLoopCount. The limit survives Rewind.
func (s *Stream) SetMaxLoopCount(count int) {
	s.settings.maxLoopCount = count
	s.ctx.SetMaxLoopCount(count)
}

// Seek partially implements io.Seeker.
//
// You can use it for two things:
//  1. (0, SeekStart) for rewind
//  2. (0, SeekCurrent) to get the byte pos inside the stream
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		if offset == 0 {
			s.Rewind()
			return 0, nil
		}

	case io.SeekCurrent:
		if offset == 0 {
			return int64(s.bytePos), nil
		}
	}

	return 0, errors.New("unsupported Seek call")
}

// Read puts next PCM bytes into provided slice.
//
// Every sample pulled from the chip occupies 4 bytes: a 16-bit little
// endian value duplicated to the left and right channels. A slice smaller
// than 4 bytes gives no effect; bigger slices fit as many samples as
// possible.
//
// When the song has no samples to produce, io.EOF error is returned.
func (s *Stream) Read(b []byte) (int, error) {
	written := 0
	for len(b) >= streamBytesPerSample {
		want := min(len(b)/streamBytesPerSample, len(s.scratch))
		n := s.ctx.NextSamples(s.scratch[:want])
		for _, v := range s.scratch[:n] {
			putPCM(b, uint16(v), uint16(v))
			b = b[streamBytesPerSample:]
		}
		written += n * streamBytesPerSample
		if n < want {
			s.bytePos += written
			if s.settings.loop {
				s.Rewind()
				return written, nil
			}
			return written, io.EOF
		}
	}
	s.bytePos += written
	return written, nil
}

// Rewind prepares the stream to play the song right from the start.
// Doing rewind is relatively cheap: it recreates the per-channel
// interpreter state without touching the song data.
func (s *Stream) Rewind() {
	s.rewind()
}

func (s *Stream) rewind() {
	s.ctx = s.seq.Play(s.chip)
	if s.settings.maxLoopCount > 0 {
		s.ctx.SetMaxLoopCount(s.settings.maxLoopCount)
	}
	s.bytePos = 0
}
