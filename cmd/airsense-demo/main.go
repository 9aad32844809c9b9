// Command airsense-demo runs the particulate sampling service against
// the simulated sensor. Useful for exercising the full stack on a host
// without hardware.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"airsense-go/drivers/sps30"
	"airsense-go/drivers/sps30/sps30sim"
	"airsense-go/services/airmon"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim := sps30sim.New(sps30sim.Config{ReadyPolls: 1})
	cfg := sps30.DefaultConfig()
	// Compress waits so the demo samples quickly.
	cfg.Delay = func(d time.Duration) { time.Sleep(d / 100) }
	dev := sps30.New(sim, cfg)

	serial, err := dev.SerialNumber()
	if err != nil {
		fmt.Fprintln(os.Stderr, "serial number:", err)
		os.Exit(1)
	}
	major, minor, err := dev.Version()
	if err != nil {
		fmt.Fprintln(os.Stderr, "version:", err)
		os.Exit(1)
	}
	fmt.Printf("sensor %s, firmware %d.%d\n", serial, major, minor)

	svc := airmon.New(dev, airmon.Config{
		Interval: 2 * time.Second,
		LowPower: true,
	})
	if err := svc.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "service:", err)
		os.Exit(1)
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println("bye")
			return
		case r := <-svc.Results():
			if r.Err != nil {
				fmt.Println("sample failed:", r.Err)
				continue
			}
			m := r.Reading
			fmt.Printf("PM1.0 %.1f  PM2.5 %.1f  PM4.0 %.1f  PM10 %.1f µg/m³  typ %.2f µm\n",
				m.MassPM1p0, m.MassPM2p5, m.MassPM4p0, m.MassPM10p0, m.TypicalParticleSize)
		}
	}
}
