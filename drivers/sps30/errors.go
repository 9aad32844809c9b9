package sps30

import "errors"

// Errors returned by the driver.
var (
	// ErrNotReady is returned by ReadMeasurement when the sensor has no
	// fresh sample; poll DataReady first.
	ErrNotReady = errors.New("sps30: data not ready")
	// ErrTimeout is returned by QuickMeasurement after the data-ready
	// poll budget is exhausted.
	ErrTimeout = errors.New("sps30: measurement timeout")
)

// ChecksumError reports a response triplet whose checksum byte does not
// match the recomputed value. Triplet is the zero-based index into the
// raw response.
type ChecksumError struct {
	Triplet int
	B1, B2  byte
	Got     byte
	Want    byte
}

func (e *ChecksumError) Error() string {
	// No fmt: keep the driver usable on MCU builds.
	s := "sps30: checksum mismatch in triplet " + itoa(e.Triplet)
	s += " (data " + hexByte(e.B1) + " " + hexByte(e.B2)
	s += ", got " + hexByte(e.Got) + ", want " + hexByte(e.Want) + ")"
	return s
}

// PayloadSizeError reports a fixed-size decode fed the wrong number of
// bytes. This is a programming-contract violation, not a bus condition.
type PayloadSizeError struct {
	Got  int
	Want int
}

func (e *PayloadSizeError) Error() string {
	return "sps30: payload size " + itoa(e.Got) + ", want " + itoa(e.Want)
}

const hexDigits = "0123456789abcdef"

func hexByte(b byte) string {
	return "0x" + string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
