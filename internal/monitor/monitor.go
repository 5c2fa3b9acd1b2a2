// Package monitor infers download progress by polling the size of a file
// that an opaque transfer call is writing. Stall detection here is a display
// heuristic only; the transfer call's return value is the authoritative
// success signal.
package monitor

import (
	"context"
	"dsfetch/pkg/utils"
	"fmt"
	"io"
	"os"
	"time"
)

const DefaultInterval = 500 * time.Millisecond

type Monitor struct {
	Path     string
	Interval time.Duration
	Out      io.Writer
}

func New(path string, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		Path:     path,
		Interval: interval,
		Out:      os.Stdout,
	}
}

// Run polls the file until growth stalls, the file disappears, or ctx is
// cancelled. Progress is written as a single refreshing line. The file is
// append-only while the transfer is active, so reported sizes never decrease
// between polls.
func (m *Monitor) Run(ctx context.Context) {
	if _, err := os.Stat(m.Path); err != nil {
		// The transfer has not created the file yet, or never will.
		return
	}

	startTime := time.Now()

	var lastSize int64
	for {
		info, err := os.Stat(m.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			fmt.Fprintf(m.Out, "\nError monitoring download: %v\n", err)
			return
		}

		currentSize := info.Size()
		if currentSize == lastSize {
			// File might be complete or the download paused. Double-check
			// after a longer pause before declaring a stall.
			if !m.sleep(ctx, 2*m.Interval) {
				return
			}
			info, err = os.Stat(m.Path)
			if err != nil || info.Size() == currentSize {
				return
			}
			currentSize = info.Size()
		}

		speed := "calculating..."
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			speed = utils.FormatSize(int64(float64(currentSize)/elapsed)) + "/s"
		}
		fmt.Fprintf(m.Out, "\r📥 Downloaded: %s | Speed: %s", utils.FormatSize(currentSize), speed)

		lastSize = currentSize
		if !m.sleep(ctx, m.Interval) {
			return
		}
	}
}

func (m *Monitor) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
