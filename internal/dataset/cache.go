package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bb-analyst/EffortPlot/internal/events"
)

// Snapshot is one memoized parse of the input file. Records must be treated
// as read-only by callers; the same slice is handed out until the file
// content changes.
type Snapshot struct {
	ID          uuid.UUID `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	Records     []Record  `json:"-"`
	LoadedAt    time.Time `json:"loadedAt"`
}

// Cache memoizes Load keyed by a sha256 fingerprint of the file content.
// The parse runs at most once per distinct content; a call with unchanged
// content returns the held snapshot. Invalidation is explicit, never timed.
type Cache struct {
	path string
	bus  *events.Bus

	mu   sync.Mutex
	last *Snapshot
}

func NewCache(path string, bus *events.Bus) *Cache {
	return &Cache{path: path, bus: bus}
}

// Snapshot returns the current dataset, re-parsing only when the file
// content fingerprint differs from the held snapshot's.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	fingerprint, err := fingerprintFile(c.path)
	if err != nil {
		return nil, &LoadError{Path: c.path, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last != nil && c.last.Fingerprint == fingerprint {
		return c.last, nil
	}

	records, err := Load(c.path)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:          uuid.New(),
		Fingerprint: fingerprint,
		Records:     records,
		LoadedAt:    time.Now().UTC(),
	}
	c.last = snap

	if c.bus != nil {
		if err := c.bus.Publish(ctx, snap.event(events.DatasetLoaded)); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// Invalidate drops the held snapshot so the next Snapshot call re-parses
// regardless of fingerprint.
func (c *Cache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	dropped := c.last
	c.last = nil
	c.mu.Unlock()

	if c.bus != nil && dropped != nil {
		return c.bus.Publish(ctx, dropped.event(events.DatasetInvalidated))
	}
	return nil
}

func (s *Snapshot) event(name string) events.DatasetEvent {
	return events.DatasetEvent{
		Name:        name,
		SnapshotID:  s.ID,
		Fingerprint: s.Fingerprint,
		Records:     len(s.Records),
		LoadedAt:    s.LoadedAt,
	}
}

func fingerprintFile(path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "fingerprint")
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}
