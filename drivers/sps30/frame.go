package sps30

// Wire framing: an opcode followed by 2-byte data groups, each group
// trailed by its CRC-8. Responses use the same layout without the
// opcode. All checksum validation for read paths happens in
// decodeFrame; operations never see raw checksum bytes.

// encodeFrame serializes an opcode and payload into bus-ready bytes:
// opcode high, opcode low, then (b1, b2, crc) per payload pair. An
// odd-length payload is padded with a trailing 0x00.
func encodeFrame(op uint16, payload []byte) []byte {
	out := make([]byte, 0, 2+(len(payload)+1)/2*3)
	out = append(out, byte(op>>8), byte(op))
	for i := 0; i < len(payload); i += 2 {
		b1 := payload[i]
		b2 := byte(0x00)
		if i+1 < len(payload) {
			b2 = payload[i+1]
		}
		out = append(out, b1, b2, crc8(b1, b2))
	}
	return out
}

// decodeFrame splits raw checksum-interleaved bytes into triplets,
// verifies each CRC, and returns the concatenated data bytes with the
// checksum bytes stripped. Bytes missing from an incomplete trailing
// triplet read as 0x00. The first mismatching triplet aborts the decode.
func decodeFrame(raw []byte) ([]byte, error) {
	out := make([]byte, 0, len(raw)/3*2)
	for i := 0; i < len(raw); i += 3 {
		var b1, b2, sum byte
		b1 = raw[i]
		if i+1 < len(raw) {
			b2 = raw[i+1]
		}
		if i+2 < len(raw) {
			sum = raw[i+2]
		}
		if !crcValid(b1, b2, sum) {
			return nil, &ChecksumError{
				Triplet: i / 3,
				B1:      b1,
				B2:      b2,
				Got:     sum,
				Want:    crc8(b1, b2),
			}
		}
		out = append(out, b1, b2)
	}
	return out, nil
}

// interleavedLen returns the raw byte count carrying n clean data
// bytes: one checksum byte per 2-byte group.
func interleavedLen(n int) int {
	return (n + 1) / 2 * 3
}
