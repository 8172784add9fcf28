package session

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Sweeper removes stale CSV artifacts from the artifact directory. It is
// best-effort by design: a failed removal is logged and retried on the
// next pass, and in-memory sessions are left untouched.
type Sweeper struct {
	Dir    string
	MaxAge time.Duration
}

// Sweep deletes artifacts older than MaxAge and returns how many were
// removed.
func (s *Sweeper) Sweep() int {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*.csv"))
	if err != nil {
		return 0
	}

	removed := 0
	cutoff := time.Now().Add(-s.MaxAge)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				log.Printf("sweep: remove %s: %v", path, err)
				continue
			}
			removed++
		}
	}
	return removed
}

// Run sweeps on the given interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("sweep: removed %d stale artifact(s)", n)
			}
		}
	}
}

// ArtifactCount reports how many CSV artifacts currently sit in the
// directory; used by the health endpoint.
func (s *Sweeper) ArtifactCount() int {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*.csv"))
	if err != nil {
		return 0
	}
	return len(matches)
}
