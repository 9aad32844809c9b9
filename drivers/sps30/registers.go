// Package sps30 provides a driver for the Sensirion SPS30 particulate
// matter sensor on its I²C-style register bus.
//
// The sensor speaks a command/response protocol: a 16-bit opcode, then
// data in 2-byte groups, each group followed by one CRC-8 byte. The
// driver frames commands, validates and strips checksums on responses,
// and decodes the big-endian IEEE-754 payloads into typed readings.
//
// Each operation is a single command/response exchange with a mandatory
// settle delay between write and read; only QuickMeasurement waits and
// retries internally. The driver keeps no device state between calls:
// callers sequence start/stop and sleep/wake themselves.
//
// NOTE: the transport MUST NOT interleave exchanges to the same device;
// the sensor buffers one pending command at a time.
package sps30

import "time"

// 7-bit bus address (1101_001b).
const AddressDefault = 0x69

// --- Command opcodes (16-bit, big-endian on the wire) ---
const (
	opStartMeasurement  = 0x0010 // W, payload: format + reserved
	opStopMeasurement   = 0x0104 // W
	opReadDataReady     = 0x0202 // R, 2 bytes
	opReadMeasurement   = 0x0300 // R, 40 bytes
	opSleep             = 0x1001 // W
	opWakeUp            = 0x1103 // W
	opStartFanCleaning  = 0x5607 // W
	opAutoCleanInterval = 0x8004 // R/W, 4 bytes
	opReadProductType   = 0xD002 // R, 8 bytes
	opReadSerialNumber  = 0xD033 // R, 32 bytes
	opReadVersion       = 0xD100 // R, 2 bytes
	opReadDeviceStatus  = 0xD206 // R, 4 bytes
	opClearDeviceStatus = 0xD210 // W
	opReset             = 0xD304 // W
)

// Measurement output format selector for opStartMeasurement.
const formatFloat = 0x03

// Clean (checksum-stripped) response sizes in bytes.
const (
	lenDataReady     = 2
	lenMeasurement   = 40
	lenCleanInterval = 4
	lenProductType   = 8
	lenSerialNumber  = 32
	lenVersion       = 2
	lenDeviceStatus  = 4
)

// Settle delays between command write and response read, and the
// hardware-mandated fan cleaning duration.
const (
	settleDefault   = 20 * time.Millisecond
	settleSleepWake = 5 * time.Millisecond
	settleReset     = 100 * time.Millisecond
	settleFanClean  = 10 * time.Second
)

// Data-ready poll schedule used by QuickMeasurement.
const (
	readyPollInterval = 1 * time.Second
	readyPollLimit    = 30
)
