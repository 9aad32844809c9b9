package sps30

import (
	"errors"
	"testing"
)

func TestBytesToFloat(t *testing.T) {
	cases := []struct {
		in   []byte
		want float32
	}{
		{[]byte{0x3F, 0x80, 0x00, 0x00}, 1.0},
		{[]byte{0xC0, 0x20, 0x00, 0x00}, -2.5},
		{[]byte{0x00, 0x00, 0x00, 0x00}, 0.0},
		{[]byte{0x42, 0xC8, 0x00, 0x00}, 100.0},
	}
	for _, c := range cases {
		got, err := bytesToFloat(c.in)
		if err != nil {
			t.Fatalf("bytesToFloat(% x) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("bytesToFloat(% x) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBytesToFloatSizeContract(t *testing.T) {
	for _, in := range [][]byte{nil, {0x3F}, {0x3F, 0x80, 0x00}, {0x3F, 0x80, 0x00, 0x00, 0x00}} {
		_, err := bytesToFloat(in)
		var pe *PayloadSizeError
		if !errors.As(err, &pe) {
			t.Fatalf("bytesToFloat(len %d): expected PayloadSizeError, got %v", len(in), err)
		}
		if pe.Want != 4 || pe.Got != len(in) {
			t.Fatalf("PayloadSizeError = %+v", pe)
		}
	}
}

func TestBytesToU32(t *testing.T) {
	got, err := bytesToU32([]byte{0x00, 0x00, 0x0E, 0x10})
	if err != nil {
		t.Fatalf("bytesToU32 error: %v", err)
	}
	if got != 3600 {
		t.Fatalf("bytesToU32 = %d, want 3600", got)
	}
	if _, err := bytesToU32([]byte{1, 2}); err == nil {
		t.Fatal("bytesToU32 accepted short input")
	}
}

func TestU32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 3600, 604800, 0xFFFFFFFF} {
		b := u32ToBytes(v)
		got, err := bytesToU32(b[:])
		if err != nil {
			t.Fatalf("bytesToU32 error: %v", err)
		}
		if got != v {
			t.Fatalf("round trip %d -> %d", v, got)
		}
	}
}

func TestCString(t *testing.T) {
	if s := cString([]byte{'A', 'B', 0x00, 'C'}); s != "AB" {
		t.Fatalf("cString = %q, want \"AB\"", s)
	}
	if s := cString([]byte{'A', 'B'}); s != "AB" {
		t.Fatalf("cString without NUL = %q, want \"AB\"", s)
	}
	if s := cString([]byte{0x00}); s != "" {
		t.Fatalf("cString = %q, want empty", s)
	}
}
