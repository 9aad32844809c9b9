// Package sps30sim simulates an SPS30 particulate sensor at the block
// transport level. It validates command framing (including checksums)
// the way the real device does, walks the idle/measuring/sleeping
// state machine, and answers reads with CRC-correct frames.
//
// The simulator backs host demos and integration-style tests; it is
// not a timing model. Data readiness is expressed in ready-flag polls,
// not wall-clock seconds.
package sps30sim

import (
	"errors"
	"math"
	"sync"

	"airsense-go/drivers/sps30"
)

// Compile-time check.
var _ sps30.Transport = (*Sensor)(nil)

// Device-side opcodes. Kept separate from the driver on purpose: the
// simulator plays the sensor, not the host.
const (
	opStartMeasurement  = 0x0010
	opStopMeasurement   = 0x0104
	opReadDataReady     = 0x0202
	opReadMeasurement   = 0x0300
	opSleep             = 0x1001
	opWakeUp            = 0x1103
	opStartFanCleaning  = 0x5607
	opAutoCleanInterval = 0x8004
	opReadProductType   = 0xD002
	opReadSerialNumber  = 0xD033
	opReadVersion       = 0xD100
	opReadDeviceStatus  = 0xD206
	opClearDeviceStatus = 0xD210
	opReset             = 0xD304
)

type state uint8

const (
	stateIdle state = iota
	stateMeasuring
	stateSleeping
)

var (
	errAddress   = errors.New("sps30sim: no device at address")
	errFraming   = errors.New("sps30sim: bad command frame")
	errSleeping  = errors.New("sps30sim: device is sleeping")
	errNoCommand = errors.New("sps30sim: read without readable command")
	errBadState  = errors.New("sps30sim: command invalid in current state")
)

// Config seeds the simulated device.
type Config struct {
	Address uint16 // default 0x69
	Serial  string
	// ReadyPolls is how many data-ready polls answer "not ready" after
	// measurement start or after a sample is consumed. 0 means a
	// sample is available on the first poll.
	ReadyPolls int
	// Sample supplies the next reading (10 values in wire order). The
	// default returns a fixed plausible indoor-air sample.
	Sample func() [10]float32
}

// Sensor is one simulated device.
type Sensor struct {
	mu sync.Mutex

	addr       uint16
	serial     string
	interval   uint32
	status     uint32
	readyPolls int
	sample     func() [10]float32

	st     state
	lastOp uint16
	polls  int
	fresh  [10]float32
	ready  bool
}

func New(cfg Config) *Sensor {
	addr := cfg.Address
	if addr == 0 {
		addr = sps30.AddressDefault
	}
	serial := cfg.Serial
	if serial == "" {
		serial = "SIM0001DEADBEEF"
	}
	sample := cfg.Sample
	if sample == nil {
		sample = func() [10]float32 {
			return [10]float32{2.9, 3.1, 3.1, 3.1, 19.8, 23.2, 23.4, 23.4, 23.4, 0.54}
		}
	}
	return &Sensor{
		addr:       addr,
		serial:     serial,
		interval:   604800, // factory default: one week
		readyPolls: cfg.ReadyPolls,
		sample:     sample,
		st:         stateIdle,
	}
}

// WriteBlock accepts a framed command, checking every payload group
// checksum like the hardware does.
func (s *Sensor) WriteBlock(addr uint16, first byte, rest []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if addr != s.addr {
		return errAddress
	}
	if len(rest) < 1 {
		return errFraming
	}
	op := uint16(first)<<8 | uint16(rest[0])
	payload, err := unframe(rest[1:])
	if err != nil {
		return err
	}

	if s.st == stateSleeping && op != opWakeUp {
		return errSleeping
	}

	switch op {
	case opStartMeasurement:
		if len(payload) != 2 || payload[0] != 0x03 {
			return errFraming
		}
		s.st = stateMeasuring
		s.polls = 0
		s.ready = false
	case opStopMeasurement:
		s.st = stateIdle
		s.ready = false
	case opSleep:
		if s.st != stateIdle {
			return errBadState
		}
		s.st = stateSleeping
	case opWakeUp:
		s.st = stateIdle
	case opStartFanCleaning:
		if s.st != stateMeasuring {
			return errBadState
		}
	case opAutoCleanInterval:
		if len(payload) == 4 {
			s.interval = uint32(payload[0])<<24 | uint32(payload[1])<<16 |
				uint32(payload[2])<<8 | uint32(payload[3])
		}
	case opClearDeviceStatus:
		s.status = 0
	case opReset:
		s.st = stateIdle
		s.polls = 0
		s.ready = false
	case opReadDataReady, opReadMeasurement, opReadProductType,
		opReadSerialNumber, opReadVersion, opReadDeviceStatus:
		// Pointer set only; answered by the next ReadBlock.
	default:
		return errFraming
	}
	s.lastOp = op
	return nil
}

// ReadBlock answers the pending command with a CRC-framed response.
func (s *Sensor) ReadBlock(addr uint16, start byte, n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if addr != s.addr {
		return nil, errAddress
	}
	if s.st == stateSleeping {
		return nil, errSleeping
	}
	if start != byte(s.lastOp>>8) {
		return nil, errNoCommand
	}

	var clean []byte
	switch s.lastOp {
	case opReadDataReady:
		flag := byte(0)
		if s.st == stateMeasuring {
			if !s.ready {
				s.polls++
				if s.polls > s.readyPolls {
					s.fresh = s.sample()
					s.ready = true
				}
			}
			if s.ready {
				flag = 1
			}
		}
		clean = []byte{0x00, flag}
	case opReadMeasurement:
		clean = make([]byte, 0, 40)
		for _, v := range s.fresh {
			clean = appendFloat(clean, v)
		}
		// Reading consumes the sample; the next one needs new polls.
		s.ready = false
		s.polls = 0
	case opAutoCleanInterval:
		clean = []byte{
			byte(s.interval >> 24), byte(s.interval >> 16),
			byte(s.interval >> 8), byte(s.interval),
		}
	case opReadProductType:
		clean = pad([]byte("00080000"), 8)
	case opReadSerialNumber:
		clean = pad([]byte(s.serial), 32)
	case opReadVersion:
		clean = []byte{2, 2}
	case opReadDeviceStatus:
		clean = []byte{
			byte(s.status >> 24), byte(s.status >> 16),
			byte(s.status >> 8), byte(s.status),
		}
	default:
		return nil, errNoCommand
	}

	raw := frame(clean)
	if len(raw) != n {
		return nil, errors.New("sps30sim: read length mismatch")
	}
	return raw, nil
}

// SetStatus injects device status flags (fan/laser faults) for tests.
func (s *Sensor) SetStatus(flags uint32) {
	s.mu.Lock()
	s.status = flags
	s.mu.Unlock()
}

// Measuring reports whether the simulated device is sampling.
func (s *Sensor) Measuring() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st == stateMeasuring
}

// Sleeping reports whether the simulated device is in low-power mode.
func (s *Sensor) Sleeping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st == stateSleeping
}

// --- device-side framing helpers ---

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

func frame(clean []byte) []byte {
	out := make([]byte, 0, (len(clean)+1)/2*3)
	for i := 0; i < len(clean); i += 2 {
		b1 := clean[i]
		b2 := byte(0)
		if i+1 < len(clean) {
			b2 = clean[i+1]
		}
		out = append(out, b1, b2, crc8(b1, b2))
	}
	return out
}

func unframe(raw []byte) ([]byte, error) {
	if len(raw)%3 != 0 {
		return nil, errFraming
	}
	out := make([]byte, 0, len(raw)/3*2)
	for i := 0; i < len(raw); i += 3 {
		if crc8(raw[i], raw[i+1]) != raw[i+2] {
			return nil, errFraming
		}
		out = append(out, raw[i], raw[i+1])
	}
	return out, nil
}

func appendFloat(dst []byte, f float32) []byte {
	u := math.Float32bits(f)
	return append(dst, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

func pad(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}
