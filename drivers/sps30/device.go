package sps30

import "time"

// Driver configuration. All fields are optional.
type Config struct {
	// Address defaults to AddressDefault if zero.
	Address uint16
	// Delay is the settle-delay hook invoked between a command write
	// and its response read, and between data-ready polls in
	// QuickMeasurement. Defaults to time.Sleep. Tests inject a no-op
	// to run without wall-clock waits.
	Delay func(time.Duration)
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{Address: AddressDefault}
}

// Device drives one sensor through a Transport. It holds no device
// state between calls; operations must not be issued concurrently
// against the same device.
type Device struct {
	tr       Transport
	addr     uint16
	delay    func(time.Duration)
	injected bool // delay came from Config; pollWait defers to it
}

// New constructs a Device with the supplied config. The transport must
// already be configured.
func New(tr Transport, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	delay := cfg.Delay
	injected := delay != nil
	if delay == nil {
		delay = time.Sleep
	}
	return &Device{tr: tr, addr: addr, delay: delay, injected: injected}
}

// command frames and writes op with payload, then waits settle.
func (d *Device) command(op uint16, payload []byte, settle time.Duration) error {
	frame := encodeFrame(op, payload)
	if err := d.tr.WriteBlock(d.addr, frame[0], frame[1:]); err != nil {
		return err
	}
	d.delay(settle)
	return nil
}

// read issues op, waits settle, then reads and de-interleaves exactly
// dataLen clean bytes.
func (d *Device) read(op uint16, dataLen int, settle time.Duration) ([]byte, error) {
	if err := d.command(op, nil, settle); err != nil {
		return nil, err
	}
	raw, err := d.tr.ReadBlock(d.addr, byte(op>>8), interleavedLen(dataLen))
	if err != nil {
		return nil, err
	}
	return decodeFrame(raw)
}

// SerialNumber reads the device serial, a NUL-terminated string.
func (d *Device) SerialNumber() (string, error) {
	data, err := d.read(opReadSerialNumber, lenSerialNumber, settleDefault)
	if err != nil {
		return "", err
	}
	return cString(data), nil
}

// ProductType reads the product type string, nominally "00080000".
func (d *Device) ProductType() (string, error) {
	data, err := d.read(opReadProductType, lenProductType, settleDefault)
	if err != nil {
		return "", err
	}
	return cString(data), nil
}

// Version reads the firmware version as major, minor.
func (d *Device) Version() (major, minor uint8, err error) {
	data, err := d.read(opReadVersion, lenVersion, settleDefault)
	if err != nil {
		return 0, 0, err
	}
	return data[0], data[1], nil
}

// AutoCleanInterval reads the automatic fan cleaning interval in
// seconds. 0 means auto cleaning is disabled.
func (d *Device) AutoCleanInterval() (uint32, error) {
	data, err := d.read(opAutoCleanInterval, lenCleanInterval, settleDefault)
	if err != nil {
		return 0, err
	}
	return bytesToU32(data)
}

// SetAutoCleanInterval writes the automatic fan cleaning interval in
// seconds. Pass 0 to disable auto cleaning.
func (d *Device) SetAutoCleanInterval(seconds uint32) error {
	b := u32ToBytes(seconds)
	return d.command(opAutoCleanInterval, b[:], settleDefault)
}

// StartFanCleaning triggers a manual fan clean. The sensor must be
// measuring. Blocks for the cleaning duration (~10 s).
func (d *Device) StartFanCleaning() error {
	return d.command(opStartFanCleaning, nil, settleFanClean)
}

// Sleep puts the sensor into low-power mode. Only valid when idle.
func (d *Device) Sleep() error {
	return d.command(opSleep, nil, settleSleepWake)
}

// WakeUp returns the sensor from low-power mode to idle.
func (d *Device) WakeUp() error {
	return d.command(opWakeUp, nil, settleSleepWake)
}

// Reset performs a soft reset; the sensor comes back idle.
func (d *Device) Reset() error {
	return d.command(opReset, nil, settleReset)
}

// StatusFlags is the device status register.
type StatusFlags uint32

const (
	StatusFanSpeedWarning StatusFlags = 1 << 21
	StatusLaserFailure    StatusFlags = 1 << 5
	StatusFanFailure      StatusFlags = 1 << 4
)

func (f StatusFlags) Has(flag StatusFlags) bool { return f&flag != 0 }

// DeviceStatus reads the device status register.
func (d *Device) DeviceStatus() (StatusFlags, error) {
	data, err := d.read(opReadDeviceStatus, lenDeviceStatus, settleDefault)
	if err != nil {
		return 0, err
	}
	v, err := bytesToU32(data)
	return StatusFlags(v), err
}

// ClearDeviceStatus clears the sticky bits of the status register.
func (d *Device) ClearDeviceStatus() error {
	return d.command(opClearDeviceStatus, nil, settleDefault)
}
