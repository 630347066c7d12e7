package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const recordTimeout = 5 * time.Second

// Recorder is the write side of Store.
type Recorder interface {
	Record(ctx context.Context, v Visit) error
}

// Tracker decides which requests count as visits and records them in the
// background so page responses never wait on the database.
type Tracker struct {
	rec      Recorder
	salt     string
	excludes []string
	log      *slog.Logger
	wg       sync.WaitGroup
}

// NewTracker validates the exclusion globs up front.
func NewTracker(rec Recorder, excludes []string, log *slog.Logger) (*Tracker, error) {
	for _, p := range excludes {
		if !doublestar.ValidatePattern(p) {
			return nil, &PatternError{Pattern: p}
		}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{rec: rec, salt: newSalt(), excludes: excludes, log: log}, nil
}

type PatternError struct{ Pattern string }

func (e *PatternError) Error() string { return "invalid exclude pattern: " + e.Pattern }

func newSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("analytics: no randomness for salt: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// HashIP returns a short digest that is stable for one process only.
func (t *Tracker) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// ShouldTrack honours Do Not Track and the exclusion globs.
func (t *Tracker) ShouldTrack(path string, dnt bool) bool {
	if dnt {
		return false
	}
	for _, p := range t.excludes {
		if ok, _ := doublestar.Match(p, path); ok {
			return false
		}
	}
	return true
}

// Track records the visit asynchronously. Failures are logged only.
func (t *Tracker) Track(ip, userAgent, path string) {
	v := Visit{HashedIP: t.HashIP(ip), UserAgent: userAgent, Path: path, Timestamp: time.Now()}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := t.rec.Record(ctx, v); err != nil {
			t.log.Warn("record visit", "path", path, "err", err)
		}
	}()
}

// Wait blocks until in-flight writes finish.
func (t *Tracker) Wait() { t.wg.Wait() }
