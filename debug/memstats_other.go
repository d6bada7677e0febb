//go:build !windows

package debug

// Heap stats periodic logger for platforms without the psapi working set
// query. Same cadence and fields as the windows variant, minus rss.

import (
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger launches a goroutine that logs memory stats every interval.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Info("memstats",
				slog.Int("goroutines", runtime.NumGoroutine()),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("heap_inuse", ms.HeapInuse),
				slog.Uint64("heap_idle", ms.HeapIdle),
				slog.Uint64("heap_sys", ms.HeapSys),
				slog.Uint64("next_gc", ms.NextGC),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}
