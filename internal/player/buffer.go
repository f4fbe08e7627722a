package player

import "sync"

// Buffer defaults, overridable per session via env configuration.
const (
	DefaultBufferSize     = 6
	DefaultReadyThreshold = 3
)

// SegmentBuffer is a capacity-bounded FIFO of fetched segment payloads with
// a sequential read cursor. Insertion order is playback order. When full,
// AddSegment drops the oldest entry; if that entry sat below the read
// cursor, the cursor shifts down with it so the next unread segment stays
// the next unread segment.
//
// A single mutex serializes every operation; no operation blocks while
// holding it.
type SegmentBuffer struct {
	mu       sync.Mutex
	capacity int
	ready    int
	entries  [][]byte
	cursor   int
}

// NewSegmentBuffer returns an empty buffer holding at most capacity entries,
// reporting ready once readyThreshold entries are buffered. Non-positive
// arguments fall back to DefaultBufferSize and DefaultReadyThreshold.
func NewSegmentBuffer(capacity, readyThreshold int) *SegmentBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	if readyThreshold <= 0 {
		readyThreshold = DefaultReadyThreshold
	}
	return &SegmentBuffer{capacity: capacity, ready: readyThreshold}
}

// AddSegment appends payload, evicting the oldest entry first if the buffer
// is at capacity.
func (b *SegmentBuffer) AddSegment(payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == b.capacity {
		b.entries = b.entries[1:]
		if b.cursor > 0 {
			b.cursor--
		}
	}
	b.entries = append(b.entries, payload)
}

// CurrentSegment returns the oldest buffered payload without consuming it.
// ok is false when the buffer is empty.
func (b *SegmentBuffer) CurrentSegment() (payload []byte, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		return nil, false
	}
	return b.entries[0], true
}

// NextSegment returns the payload at the read cursor and advances the
// cursor. ok is false once every buffered segment has been consumed.
func (b *SegmentBuffer) NextSegment() (payload []byte, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cursor >= len(b.entries) {
		return nil, false
	}
	payload = b.entries[b.cursor]
	b.cursor++
	return payload, true
}

// Reset discards all entries and rewinds the cursor.
func (b *SegmentBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = nil
	b.cursor = 0
}

// Status reports how many segments are buffered and how many of those the
// cursor has not yet consumed.
func (b *SegmentBuffer) Status() (count, remaining int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	count = len(b.entries)
	remaining = count - b.cursor
	if remaining < 0 {
		remaining = 0
	}
	return count, remaining
}

// Ready reports whether enough segments are buffered to begin playback.
func (b *SegmentBuffer) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries) >= b.ready
}
