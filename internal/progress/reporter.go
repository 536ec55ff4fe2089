package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures the progress reporter.
type Options struct {
	// TotalSize is the total size in bytes to download, or -1 if unknown.
	TotalSize int64

	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often to update the progress display.
	// Default: 500ms
	UpdateInterval time.Duration

	// SourceURL is the URL being downloaded (for display).
	SourceURL string
}

// Reporter outputs human-readable progress for a single download.
type Reporter struct {
	opts Options

	downloaded atomic.Int64
	total      atomic.Int64

	mu         sync.Mutex
	startTime  time.Time
	lastUpdate time.Time
	lastBytes  int64
	stopCh     chan struct{}
	stopped    bool
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}

	r := &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
	}
	r.total.Store(opts.TotalSize)
	return r
}

// Start begins outputting progress information.
func (r *Reporter) Start() {
	r.startTime = time.Now()
	r.lastUpdate = r.startTime

	fmt.Fprintf(r.opts.Output, "[dsfetch] Downloading: %s\n", r.opts.SourceURL)

	go r.updateLoop()
}

// Stop stops the progress reporter and prints the final status.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
}

// Update records the current download position. Its signature matches
// fetch.ProgressFunc so a Reporter can be passed directly as the progress
// callback on a fetch call.
func (r *Reporter) Update(downloaded, total int64) {
	r.downloaded.Store(downloaded)
	r.total.Store(total)
}

// updateLoop periodically updates the progress display.
func (r *Reporter) updateLoop() {
	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printFinalStatus()
			return
		case <-ticker.C:
			r.printProgress()
		}
	}
}

// printProgress outputs the current progress line.
func (r *Reporter) printProgress() {
	now := time.Now()
	downloaded := r.downloaded.Load()
	total := r.total.Load()

	// Speed over the last interval
	elapsed := now.Sub(r.lastUpdate).Seconds()
	if elapsed < 0.1 {
		elapsed = 0.1
	}
	speed := float64(downloaded-r.lastBytes) / elapsed

	r.lastUpdate = now
	r.lastBytes = downloaded

	if total <= 0 {
		fmt.Fprintf(r.opts.Output, "\r[dsfetch] Progress: %s | Speed: %s/s    ",
			formatBytes(downloaded),
			formatBytes(int64(speed)),
		)
		return
	}

	percent := float64(downloaded) / float64(total) * 100
	eta := "calculating..."
	if speed > 0 {
		etaSeconds := float64(total-downloaded) / speed
		eta = formatDuration(time.Duration(etaSeconds * float64(time.Second)))
	}

	fmt.Fprintf(r.opts.Output, "\r[dsfetch] Progress: %.1f%% [%s] %s / %s | Speed: %s/s | ETA: %s    ",
		percent,
		bar(percent, 20),
		formatBytes(downloaded),
		formatBytes(total),
		formatBytes(int64(speed)),
		eta,
	)
}

// printFinalStatus outputs the final status.
func (r *Reporter) printFinalStatus() {
	downloaded := r.downloaded.Load()
	duration := time.Since(r.startTime)
	avgSpeed := float64(downloaded) / duration.Seconds()

	fmt.Fprintf(r.opts.Output, "\r[dsfetch] Downloaded %s in %s (%s/s)    \n",
		formatBytes(downloaded),
		formatDuration(duration),
		formatBytes(int64(avgSpeed)),
	)
}

// bar renders a wget-style progress bar of the given width.
func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	b := make([]byte, width)
	for i := range b {
		switch {
		case i < filled:
			b[i] = '='
		case i == filled:
			b[i] = '>'
		default:
			b[i] = ' '
		}
	}
	return string(b)
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case b >= TB:
		return fmt.Sprintf("%.2f TB", float64(b)/float64(TB))
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(b int64) string {
	return formatBytes(b)
}
