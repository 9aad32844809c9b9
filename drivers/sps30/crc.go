package sps30

// CRC-8 as mandated by the sensor: polynomial 0x31, init 0xFF, MSB
// first, no reflection, no final XOR. Covers exactly one 2-byte group.

func crc8(b1, b2 byte) byte {
	crc := byte(0xFF)
	for _, b := range [2]byte{b1, b2} {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x31
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func crcValid(b1, b2, sum byte) bool { return crc8(b1, b2) == sum }
