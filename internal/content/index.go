package content

import (
	"sync"
	"time"

	"github.com/inculture/skopelos-chatbot/internal/locale"
)

// Snapshot is an immutable view of the installed chapter catalog.
// Callers must not modify Chapters.
type Snapshot struct {
	Locale   locale.Locale `json:"locale"`
	Seq      uint64        `json:"seq"`
	Chapters []Chapter     `json:"chapters"`
	LoadedAt time.Time     `json:"loadedAt"`
}

// Empty reports whether no catalog has been installed yet.
func (s Snapshot) Empty() bool {
	return s.Seq == 0
}

// Index owns the current catalog snapshot. Each fetch takes a sequence
// number from Begin and Commit only installs the result of the latest
// issued fetch. A response for an older request is discarded even when the
// newer request failed and nothing newer was installed.
type Index struct {
	mu      sync.RWMutex
	next    uint64
	current Snapshot
	now     func() time.Time
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{now: time.Now}
}

// Begin issues the sequence number for a new fetch.
func (x *Index) Begin() uint64 {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.next++
	return x.next
}

// Commit installs chapters fetched under seq. It returns false and leaves
// the index untouched when seq is not the latest issued sequence number or
// was already committed.
func (x *Index) Commit(seq uint64, l locale.Locale, chapters []Chapter) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if seq != x.next || seq == x.current.Seq {
		return false
	}
	x.current = Snapshot{
		Locale:   l,
		Seq:      seq,
		Chapters: append([]Chapter(nil), chapters...),
		LoadedAt: x.now(),
	}
	return true
}

// Latest returns the most recently issued sequence number.
func (x *Index) Latest() uint64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.next
}

// Snapshot returns the installed catalog.
func (x *Index) Snapshot() Snapshot {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.current
}

// Chapters returns the installed chapters, or nil before the first commit.
func (x *Index) Chapters() []Chapter {
	return x.Snapshot().Chapters
}
