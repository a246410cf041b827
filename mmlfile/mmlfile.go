// Package mmlfile provides the compiled song-data container consumed by
// the psgmml engine.
//
// A song blob is byte-addressable through a 16-bit index space:
// a null-terminated title, one flag byte, the 16-bit patch-table offset,
// three 16-bit part offsets (0 = channel unused; all offsets relative to
// the title terminator), the 0xFF-terminated patch table and the
// per-channel bytecode streams.
package mmlfile

import (
	"encoding/binary"
)

// Data is an immutable compiled song blob. It implements the
// random-access reader the engine expects (psgmml.SongData).
//
// Reads trust the index to be in range; construct Data through Load when
// the blob comes from an untrusted source.
type Data []byte

func (d Data) ReadByte(index uint16) byte {
	return d[index]
}

// ReadWord reads a little-endian 16-bit value.
func (d Data) ReadWord(index uint16) uint16 {
	return binary.LittleEndian.Uint16(d[index:])
}
