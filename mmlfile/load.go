package mmlfile

import (
	"bytes"
	"fmt"
)

const (
	maxDataSize = 0x10000 // the engine addresses the blob with 16-bit indexes

	patchRecordSize = 7
)

// Load validates the structure of a compiled song blob and wraps it into
// a Data. It checks everything the trusting engine core assumes: the
// title is terminated, the header is complete, the patch table is inside
// the blob and 0xFF-terminated, and every used part offset is in range.
//
// Bytecode streams are not validated; an unknown opcode simply ends its
// channel during playback.
func Load(data []byte) (Data, error) {
	if len(data) > maxDataSize {
		return nil, errorf(maxDataSize, "data exceeds the 16-bit index space (%d bytes)", len(data))
	}

	titleEnd := bytes.IndexByte(data, 0)
	if titleEnd == -1 {
		return nil, errorf(len(data), "missing title terminator")
	}

	// Title terminator, flag byte, patch offset, three part offsets.
	headerEnd := titleEnd + 10
	if len(data) < headerEnd {
		return nil, errorf(len(data), "truncated header")
	}

	d := Data(data)

	patchAddr := int(d.ReadWord(uint16(titleEnd+2))) + titleEnd
	for addr := patchAddr; ; addr += patchRecordSize {
		if addr >= len(data) {
			return nil, errorf(addr, "unterminated patch table")
		}
		if data[addr] == 0xFF {
			break
		}
		if addr+patchRecordSize > len(data) {
			return nil, errorf(addr, "truncated patch record")
		}
	}

	for i := 0; i < 3; i++ {
		offset := int(d.ReadWord(uint16(titleEnd + 4 + i*2)))
		if offset == 0 {
			continue
		}
		if offset+titleEnd >= len(data) {
			return nil, errorf(offset+titleEnd, "part %d offset out of range", i)
		}
	}

	return d, nil
}

func errorf(offset int, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	}
}
