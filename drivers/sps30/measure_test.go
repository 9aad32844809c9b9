package sps30

import (
	"context"
	"errors"
	"testing"
	"time"
)

var testReading = [10]float32{1.5, 2.5, 3.25, 4.75, 10, 20.5, 30.25, 40, 50.5, 0.75}

func TestDataReady(t *testing.T) {
	f := newFakeBus()
	d, _ := newTestDevice(f)

	if err := d.StartMeasurement(); err != nil {
		t.Fatalf("StartMeasurement error: %v", err)
	}
	ready, err := d.DataReady()
	if err != nil {
		t.Fatalf("DataReady error: %v", err)
	}
	if !ready {
		t.Fatal("expected ready with readyAfter=0")
	}
}

func TestDataReadyPermissiveFlag(t *testing.T) {
	// Flag bytes other than 1 read as not ready; 0xFF is not an error.
	for _, flag := range []byte{0x00, 0x02, 0xFF} {
		f := newFakeBus()
		fl := flag
		f.readyOverride = &fl
		d, _ := newTestDevice(f)

		ready, err := d.DataReady()
		if err != nil {
			t.Fatalf("DataReady(flag=%#02x) error: %v", flag, err)
		}
		if ready {
			t.Fatalf("DataReady(flag=%#02x) = true, want false", flag)
		}
	}
}

func TestReadMeasurement(t *testing.T) {
	f := newFakeBus()
	f.reading = testReading
	d, _ := newTestDevice(f)

	if err := d.StartMeasurement(); err != nil {
		t.Fatalf("StartMeasurement error: %v", err)
	}
	m, err := d.ReadMeasurement()
	if err != nil {
		t.Fatalf("ReadMeasurement error: %v", err)
	}
	got := [10]float32{
		m.MassPM1p0, m.MassPM2p5, m.MassPM4p0, m.MassPM10p0,
		m.NumberPM0p5, m.NumberPM1p0, m.NumberPM2p5, m.NumberPM4p0, m.NumberPM10p0,
		m.TypicalParticleSize,
	}
	if got != testReading {
		t.Fatalf("reading = %v, want %v", got, testReading)
	}
}

func TestReadMeasurementNotReady(t *testing.T) {
	f := newFakeBus()
	f.readyAfter = 5
	d, _ := newTestDevice(f)

	if err := d.StartMeasurement(); err != nil {
		t.Fatalf("StartMeasurement error: %v", err)
	}
	_, err := d.ReadMeasurement()
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("error = %v, want ErrNotReady", err)
	}
	if f.opCount(opReadMeasurement) != 0 {
		t.Fatal("measurement read issued despite not ready")
	}
}

func TestReadMeasurementChecksumFailure(t *testing.T) {
	f := newFakeBus()
	f.reading = testReading
	f.corruptTriplet = 7
	d, _ := newTestDevice(f)

	if err := d.StartMeasurement(); err != nil {
		t.Fatalf("StartMeasurement error: %v", err)
	}
	_, err := d.ReadMeasurement()
	var ce *ChecksumError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want ChecksumError", err)
	}
	if ce.Triplet != 7 {
		t.Fatalf("failing triplet = %d, want 7", ce.Triplet)
	}
}

func TestQuickMeasurement(t *testing.T) {
	f := newFakeBus()
	f.reading = testReading
	f.readyAfter = 3
	d, _ := newTestDevice(f)

	m, err := d.QuickMeasurement(context.Background())
	if err != nil {
		t.Fatalf("QuickMeasurement error: %v", err)
	}
	if m.MassPM2p5 != 2.5 || m.TypicalParticleSize != 0.75 {
		t.Fatalf("reading = %+v", m)
	}
	if f.opCount(opStartMeasurement) != 1 {
		t.Fatalf("start issued %d times", f.opCount(opStartMeasurement))
	}
	if f.opCount(opStopMeasurement) != 1 {
		t.Fatal("sensor not stopped after successful cycle")
	}
	if f.measuring {
		t.Fatal("fake still measuring after stop")
	}
}

func TestQuickMeasurementTimeout(t *testing.T) {
	f := newFakeBus()
	never := byte(0)
	f.readyOverride = &never
	d, _ := newTestDevice(f)

	_, err := d.QuickMeasurement(context.Background())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
	if f.polls != readyPollLimit {
		t.Fatalf("poll attempts = %d, want %d", f.polls, readyPollLimit)
	}
	if f.opCount(opReadMeasurement) != 0 {
		t.Fatal("measurement read issued despite timeout")
	}
	// Timeout leaves the sensor measuring; no implicit stop.
	if f.opCount(opStopMeasurement) != 0 {
		t.Fatal("unexpected stop command after timeout")
	}
	if !f.measuring {
		t.Fatal("fake not measuring after timeout")
	}
}

func TestQuickMeasurementCancelled(t *testing.T) {
	f := newFakeBus()
	never := byte(0)
	f.readyOverride = &never

	ctx, cancel := context.WithCancel(context.Background())
	d := New(f, Config{Delay: func(time.Duration) { cancel() }})

	_, err := d.QuickMeasurement(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if f.polls != 1 {
		t.Fatalf("poll attempts = %d, want 1", f.polls)
	}
}
