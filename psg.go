package psgmml

// numChannels is the number of tone channels the engine drives.
// The score format has one bytecode stream per channel.
const numChannels = 3

// OutputMode selects which generators a PSG channel mixes into its output.
type OutputMode uint8

const (
	OutputNone OutputMode = iota
	OutputTone
	OutputNoise
	OutputToneNoise
)

// Chip is the register-level contract between the sequencer and a PSG
// synthesis implementation.
//
// The engine holds a Chip for the whole playback session and is its only
// writer. Register setters must be cheap: they are called from the per-tick
// path. One of the sample-pull methods is called exactly once per output
// sample, after all register updates for that sample have been applied.
type Chip interface {
	// SampleRate reports the output sample rate in Hz (e.g. 44100).
	SampleRate() uint

	// ClockRate reports the emulated chip clock in Hz (e.g. 3579545).
	ClockRate() uint

	// SetTonePeriod sets the tone period divider of a channel (0-2).
	// The engine only ever passes periods in [1, 4095].
	SetTonePeriod(channel int, period uint16)

	// SetVolume sets the 4-bit channel volume; 0 is silent, 15 is loudest.
	SetVolume(channel int, volume uint8)

	// SetOutputMode routes the tone and/or noise generators to a channel.
	SetOutputMode(channel int, mode OutputMode)

	// SetNoisePeriod sets the chip-wide noise generator period.
	SetNoisePeriod(period uint8)

	// NextSample produces the next 16-bit PCM sample.
	NextSample() int16

	// NextSampleFloat produces the next PCM sample as a float32.
	NextSampleFloat() float32
}

// SongData is a random-access reader over a compiled song blob.
//
// Addresses are 16-bit indexes into the blob. The engine trusts the data:
// it never reads outside the ranges the song header and bytecode imply,
// and out-of-range indexes are the provider's responsibility.
// mmlfile.Data is the usual implementation.
type SongData interface {
	ReadByte(index uint16) byte

	// ReadWord reads a little-endian 16-bit value.
	ReadWord(index uint16) uint16
}
