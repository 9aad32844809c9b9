package sps30

import (
	"context"
	"time"
)

// Measurement is one decoded sample. Mass concentrations are µg/m³,
// number concentrations #/cm³, typical particle size µm.
type Measurement struct {
	MassPM1p0  float32
	MassPM2p5  float32
	MassPM4p0  float32
	MassPM10p0 float32

	NumberPM0p5  float32
	NumberPM1p0  float32
	NumberPM2p5  float32
	NumberPM4p0  float32
	NumberPM10p0 float32

	TypicalParticleSize float32
}

// StartMeasurement puts the sensor into continuous sampling with
// float32 output. The first sample is ready no sooner than one second
// later; poll DataReady.
func (d *Device) StartMeasurement() error {
	return d.command(opStartMeasurement, []byte{formatFloat, 0x00}, settleDefault)
}

// StopMeasurement returns the sensor to idle.
func (d *Device) StopMeasurement() error {
	return d.command(opStopMeasurement, nil, settleDefault)
}

// DataReady reports whether a fresh sample is available. Any flag
// value other than 1 reads as not ready.
func (d *Device) DataReady() (bool, error) {
	data, err := d.read(opReadDataReady, lenDataReady, settleDefault)
	if err != nil {
		return false, err
	}
	return data[1] == 1, nil
}

// ReadMeasurement fetches the latest sample. It checks DataReady once
// and returns ErrNotReady without reading if no sample is pending; it
// never polls. Reading consumes the ready flag on the device.
func (d *Device) ReadMeasurement() (Measurement, error) {
	ready, err := d.DataReady()
	if err != nil {
		return Measurement{}, err
	}
	if !ready {
		return Measurement{}, ErrNotReady
	}
	data, err := d.read(opReadMeasurement, lenMeasurement, settleDefault)
	if err != nil {
		return Measurement{}, err
	}

	var f [10]float32
	for i := range f {
		v, err := bytesToFloat(data[i*4 : i*4+4])
		if err != nil {
			return Measurement{}, err
		}
		f[i] = v
	}
	return Measurement{
		MassPM1p0:           f[0],
		MassPM2p5:           f[1],
		MassPM4p0:           f[2],
		MassPM10p0:          f[3],
		NumberPM0p5:         f[4],
		NumberPM1p0:         f[5],
		NumberPM2p5:         f[6],
		NumberPM4p0:         f[7],
		NumberPM10p0:        f[8],
		TypicalParticleSize: f[9],
	}, nil
}

// QuickMeasurement runs one full measurement cycle: start sampling,
// poll DataReady once per second for at most 30 polls, then read and
// stop. On poll exhaustion it returns ErrTimeout and leaves the sensor
// measuring; the caller decides whether to StopMeasurement or let it
// keep sampling. Cancelling ctx aborts the wait, not the command
// already on the wire.
func (d *Device) QuickMeasurement(ctx context.Context) (Measurement, error) {
	if err := d.StartMeasurement(); err != nil {
		return Measurement{}, err
	}
	for i := 0; i < readyPollLimit; i++ {
		ready, err := d.DataReady()
		if err != nil {
			return Measurement{}, err
		}
		if ready {
			m, err := d.ReadMeasurement()
			if err != nil {
				return Measurement{}, err
			}
			if err := d.StopMeasurement(); err != nil {
				return Measurement{}, err
			}
			return m, nil
		}
		if err := d.pollWait(ctx, readyPollInterval); err != nil {
			return Measurement{}, err
		}
	}
	return Measurement{}, ErrTimeout
}

// pollWait blocks for dur or until ctx is cancelled. A configured
// Delay hook replaces the timer so tests run without real waits.
func (d *Device) pollWait(ctx context.Context, dur time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.injected {
		d.delay(dur)
		return ctx.Err()
	}
	t := time.NewTimer(dur)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
