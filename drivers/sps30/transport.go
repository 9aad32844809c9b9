package sps30

import "tinygo.org/x/drivers"

// Transport carries raw block transfers to a single bus-addressed
// device. Implementations must return an error on short reads; the
// driver treats every transport error as fatal for the operation and
// propagates it verbatim.
type Transport interface {
	// WriteBlock writes first followed by rest in one exchange.
	WriteBlock(addr uint16, first byte, rest []byte) error
	// ReadBlock reads n bytes starting at register start. The returned
	// slice has exactly n bytes on success.
	ReadBlock(addr uint16, start byte, n int) ([]byte, error)
}

// I2CTransport adapts a drivers.I2C bus to the block contract.
// ReadBlock issues the start register as a write followed by a
// repeated-start read without releasing the bus.
type I2CTransport struct {
	bus drivers.I2C
}

func NewI2CTransport(bus drivers.I2C) *I2CTransport {
	return &I2CTransport{bus: bus}
}

func (t *I2CTransport) WriteBlock(addr uint16, first byte, rest []byte) error {
	buf := make([]byte, 1+len(rest))
	buf[0] = first
	copy(buf[1:], rest)
	return t.bus.Tx(addr, buf, nil)
}

func (t *I2CTransport) ReadBlock(addr uint16, start byte, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := t.bus.Tx(addr, []byte{start}, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
