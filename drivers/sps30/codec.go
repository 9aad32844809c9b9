package sps30

import "math"

// Fixed-size big-endian decoders for clean (checksum-stripped) payload
// regions. Wrong input length is a contract violation and fails fast
// rather than truncating or padding.

func bytesToFloat(b []byte) (float32, error) {
	if len(b) != 4 {
		return 0, &PayloadSizeError{Got: len(b), Want: 4}
	}
	u := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return math.Float32frombits(u), nil
}

func bytesToU32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, &PayloadSizeError{Got: len(b), Want: 4}
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func u32ToBytes(v uint32) [4]byte {
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// cString interprets b up to the first NUL as text.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
