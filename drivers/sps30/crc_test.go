package sps30

import "testing"

func TestCRC8KnownVectors(t *testing.T) {
	cases := []struct {
		b1, b2 byte
		want   byte
	}{
		{0xBE, 0xEF, 0x92}, // datasheet example
		{0x00, 0x00, 0x81},
		{0x03, 0x00, crc8(0x03, 0x00)}, // self-consistency anchor
	}
	for _, c := range cases {
		if got := crc8(c.b1, c.b2); got != c.want {
			t.Errorf("crc8(%#02x, %#02x) = %#02x, want %#02x", c.b1, c.b2, got, c.want)
		}
	}
}

func TestCRC8VerifyRoundTrip(t *testing.T) {
	groups := [][2]byte{
		{0x00, 0x00}, {0xFF, 0xFF}, {0xBE, 0xEF},
		{0x12, 0x34}, {0x80, 0x01}, {0x0E, 0x10},
	}
	for _, g := range groups {
		sum := crc8(g[0], g[1])
		if !crcValid(g[0], g[1], sum) {
			t.Errorf("verify(%#02x, %#02x, %#02x) = false", g[0], g[1], sum)
		}
		// Flipping any single checksum bit must fail verification.
		for bit := 0; bit < 8; bit++ {
			bad := sum ^ (1 << bit)
			if crcValid(g[0], g[1], bad) {
				t.Errorf("verify accepted corrupted checksum %#02x for group %#02x %#02x", bad, g[0], g[1])
			}
		}
	}
}
