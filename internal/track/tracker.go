package track

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"internwatch/internal/domain"
)

// Tracker is the durable set of posting identities already reported. The
// file is a small JSON document; an advisory file lock serializes access
// across processes and a mutex serializes contains+add across workers, so
// two workers can never race on the same identity.
type Tracker struct {
	path string
	lock *flock.Flock

	mu   sync.Mutex
	seen map[string]bool
}

type fileFormat struct {
	SeenJobIDs  []string `json:"seen_job_ids"`
	LastUpdated string   `json:"last_updated"`
}

func Open(path string) (*Tracker, error) {
	t := &Tracker{
		path: path,
		lock: flock.New(path + ".lock"),
		seen: make(map[string]bool),
	}
	if err := t.load(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) load() error {
	if err := t.lock.Lock(); err != nil {
		return fmt.Errorf("lock seen file: %w", err)
	}
	defer t.lock.Unlock()

	b, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var f fileFormat
	if err := json.Unmarshal(b, &f); err != nil {
		// corrupt file: start over rather than refuse to run
		return nil
	}
	for _, id := range f.SeenJobIDs {
		t.seen[id] = true
	}
	return nil
}

// Contains reports whether id was already emitted in some earlier run (or
// earlier in this one).
func (t *Tracker) Contains(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seen[id]
}

// Add marks id as seen in memory. Flush persists.
func (t *Tracker) Add(id string) {
	t.mu.Lock()
	t.seen[id] = true
	t.mu.Unlock()
}

// FilterNew returns the postings whose identity has not been seen, marking
// each as seen so a single run never emits the same identity twice. The
// check-then-insert is atomic under the tracker mutex.
func (t *Tracker) FilterNew(postings []domain.ClassifiedPosting) []domain.ClassifiedPosting {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []domain.ClassifiedPosting
	for _, p := range postings {
		if p.ID == "" || t.seen[p.ID] {
			continue
		}
		t.seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// Flush writes the seen set back to disk under the advisory lock, merging
// with whatever another process persisted meanwhile.
func (t *Tracker) Flush() error {
	if err := t.lock.Lock(); err != nil {
		return fmt.Errorf("lock seen file: %w", err)
	}
	defer t.lock.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	// merge in concurrent writers before overwriting
	if b, err := os.ReadFile(t.path); err == nil {
		var f fileFormat
		if json.Unmarshal(b, &f) == nil {
			for _, id := range f.SeenJobIDs {
				t.seen[id] = true
			}
		}
	}

	ids := make([]string, 0, len(t.seen))
	for id := range t.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out, err := json.MarshalIndent(fileFormat{
		SeenJobIDs:  ids,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return err
	}

	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, t.path)
}
