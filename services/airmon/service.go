// Package airmon runs periodic particulate measurements against one
// sensor and fans results out on a channel. All device traffic goes
// through the single service goroutine, so command/response exchanges
// never interleave on the bus.
package airmon

import (
	"context"
	"time"

	"airsense-go/drivers/sps30"
)

// Sensor is the slice of the driver the service needs. *sps30.Device
// satisfies it.
type Sensor interface {
	WakeUp() error
	Sleep() error
	QuickMeasurement(ctx context.Context) (sps30.Measurement, error)
	StartMeasurement() error
	StartFanCleaning() error
	StopMeasurement() error
}

var _ Sensor = (*sps30.Device)(nil)

// Result is one sampling attempt. Err is set when the cycle failed;
// Reading is only valid when Err is nil.
type Result struct {
	Reading sps30.Measurement
	TsMs    int64
	Err     error
}

// Config controls the sampling schedule.
type Config struct {
	// Interval between samples. Default 60 s. Must exceed the worst
	// quick-measurement duration the caller is willing to tolerate.
	Interval time.Duration
	// LowPower puts the sensor to sleep between samples and wakes it
	// before each one.
	LowPower bool
	// QueueSize is the result channel depth. Default 4. When the
	// consumer lags, the oldest result is dropped.
	QueueSize int
}

type Service struct {
	dev    Sensor
	cfg    Config
	out    chan Result
	cleanQ chan struct{}
}

func New(dev Sensor, cfg Config) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = 60 * time.Second
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 4
	}
	return &Service{
		dev:    dev,
		cfg:    cfg,
		out:    make(chan Result, cfg.QueueSize),
		cleanQ: make(chan struct{}, 1),
	}
}

// Results delivers one Result per sampling attempt.
func (s *Service) Results() <-chan Result { return s.out }

// RequestFanClean queues a manual fan clean, run between samples.
// Returns false if a clean is already queued.
func (s *Service) RequestFanClean() bool {
	select {
	case s.cleanQ <- struct{}{}:
		return true
	default:
		return false
	}
}

// Start launches the service loop.
func (s *Service) Start(ctx context.Context) error {
	go s.serviceLoop(ctx)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context) {
	tick := time.NewTicker(s.cfg.Interval)
	defer tick.Stop()

	// First sample immediately; the ticker covers the rest.
	s.emit(s.sampleOnce(ctx))

	for {
		select {
		case <-ctx.Done():
			println("Info: airmon service stopping")
			return
		case <-tick.C:
			s.emit(s.sampleOnce(ctx))
		case <-s.cleanQ:
			if err := s.fanClean(); err != nil {
				println("Warn: airmon fan clean failed:", err.Error())
			}
		}
	}
}

func (s *Service) sampleOnce(ctx context.Context) Result {
	if s.cfg.LowPower {
		if err := s.dev.WakeUp(); err != nil {
			return Result{TsMs: time.Now().UnixMilli(), Err: err}
		}
	}
	m, err := s.dev.QuickMeasurement(ctx)
	if err == nil && s.cfg.LowPower {
		err = s.dev.Sleep()
	}
	return Result{Reading: m, TsMs: time.Now().UnixMilli(), Err: err}
}

// fanClean runs a manual clean: the sensor only accepts the command
// while measuring, so bracket it with start/stop (and wake/sleep in
// low-power mode).
func (s *Service) fanClean() error {
	if s.cfg.LowPower {
		if err := s.dev.WakeUp(); err != nil {
			return err
		}
	}
	if err := s.dev.StartMeasurement(); err != nil {
		return err
	}
	if err := s.dev.StartFanCleaning(); err != nil {
		return err
	}
	if err := s.dev.StopMeasurement(); err != nil {
		return err
	}
	if s.cfg.LowPower {
		return s.dev.Sleep()
	}
	return nil
}

// emit delivers non-blocking; when the queue is full the oldest
// result gives way.
func (s *Service) emit(r Result) {
	select {
	case s.out <- r:
		return
	default:
	}
	select {
	case <-s.out:
		println("Warn: airmon result queue full, dropped oldest")
	default:
	}
	select {
	case s.out <- r:
	default:
	}
}
