package psgmml

import (
	"encoding/binary"
)

type numeric interface {
	uint8 | uint16 | int | float64
}

func clampMax[T numeric](v, max T) T {
	if v > max {
		return max
	}
	return v
}

func clamp[T numeric](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func satSub(v, delta uint8) uint8 {
	if v < delta {
		return 0
	}
	return v - delta
}

func putPCM(b []byte, left, right uint16) {
	binary.LittleEndian.PutUint16(b[0:], left)
	binary.LittleEndian.PutUint16(b[2:], right)
}
