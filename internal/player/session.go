package player

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"hls-player/internal/playlist"
	"hls-player/internal/platform/metrics"

	"github.com/google/uuid"
)

// DefaultBatchSize is the number of segments fetched per batch.
const DefaultBatchSize = 3

// SessionID uniquely identifies a playback session.
type SessionID string

// Session is the per-playback state: the selected variant, the segment
// buffer, and the remaining segment batches still to be fetched. Batch
// advancement is serialized by the session's own mutex; the buffer carries
// its own lock.
type Session struct {
	ID        SessionID
	MasterURL string
	Variant   playlist.VariantStream
	Buffer    *SegmentBuffer

	mu        sync.Mutex
	batches   [][]string
	nextBatch int
}

// SessionStatus is a point-in-time snapshot of a session's buffer.
type SessionStatus struct {
	BufferedSegments  int  `json:"buffered_segments"`
	RemainingSegments int  `json:"remaining_segments"`
	Ready             bool `json:"ready"`
	BatchesLeft       int  `json:"batches_left"`
}

// Config carries the tunable pipeline parameters. Zero values fall back to
// the package defaults.
type Config struct {
	BatchSize      int
	Concurrency    int
	BufferSize     int
	ReadyThreshold int
}

// Service drives the playback pipeline: fetch master manifest, select a
// variant, fetch its media playlist, then fetch segments batch by batch into
// the session's buffer. Storage is delegated to a Repository.
type Service struct {
	transport Transport
	fetcher   *SegmentFetcher
	repo      Repository
	cfg       Config
	metrics   *metrics.Metrics
}

// NewService returns a Service using the given transport and repository.
// Metrics may be nil to disable metric recording (e.g. in tests).
func NewService(transport Transport, repo Repository, cfg Config, m *metrics.Metrics) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Service{
		transport: transport,
		fetcher:   NewSegmentFetcher(transport, cfg.Concurrency),
		repo:      repo,
		cfg:       cfg,
		metrics:   m,
	}
}

// StartSession runs one full pipeline pass for masterURL: parse the master
// manifest, select the variant matching targetBandwidth, parse its media
// playlist, and prebuffer the first segment batch. The session is registered
// only after the first batch succeeds; any earlier failure surfaces as a
// tagged error and leaves no session behind.
func (s *Service) StartSession(ctx context.Context, masterURL string, targetBandwidth int64) (*Session, error) {
	masterData, err := s.transport.Fetch(ctx, masterURL)
	if err != nil {
		return nil, err
	}
	master, err := playlist.ParseMaster(masterData)
	if err != nil {
		return nil, fmt.Errorf("master playlist: %w", err)
	}

	variant, err := playlist.SelectVariant(master, targetBandwidth)
	if err != nil {
		return nil, err
	}

	mediaURL, err := resolveURL(masterURL, variant.URI)
	if err != nil {
		return nil, err
	}
	mediaData, err := s.transport.Fetch(ctx, mediaURL)
	if err != nil {
		return nil, err
	}
	media, err := playlist.ParseMedia(mediaData)
	if err != nil {
		return nil, fmt.Errorf("media playlist: %w", err)
	}

	uris := make([]string, 0, len(media.Segments))
	for _, seg := range media.Segments {
		u, err := resolveURL(mediaURL, seg.URI)
		if err != nil {
			return nil, err
		}
		uris = append(uris, u)
	}

	batches := chunkURIs(uris, s.cfg.BatchSize)
	if len(batches) == 0 {
		return nil, ErrNoSegments
	}

	sess := &Session{
		ID:        SessionID(uuid.NewString()),
		MasterURL: masterURL,
		Variant:   variant,
		Buffer:    NewSegmentBuffer(s.cfg.BufferSize, s.cfg.ReadyThreshold),
		batches:   batches,
	}

	if _, err := s.fetchNextBatch(ctx, sess); err != nil {
		return nil, err
	}

	s.repo.SaveSession(sess)
	if s.metrics != nil {
		s.metrics.IncSessionsStarted()
	}
	return sess, nil
}

// Advance fetches the session's next segment batch into its buffer and
// returns how many segments were buffered. It returns 0 once every batch has
// been fetched.
func (s *Service) Advance(ctx context.Context, id SessionID) (int, error) {
	sess, err := s.repo.GetSession(id)
	if err != nil {
		return 0, err
	}
	return s.fetchNextBatch(ctx, sess)
}

// NextSegment returns the next unconsumed payload of the session in playback
// order. ok is false once the buffer is drained.
func (s *Service) NextSegment(id SessionID) (payload []byte, ok bool, err error) {
	sess, err := s.repo.GetSession(id)
	if err != nil {
		return nil, false, err
	}
	payload, ok = sess.Buffer.NextSegment()
	return payload, ok, nil
}

// Status returns a snapshot of the session's buffer state.
func (s *Service) Status(id SessionID) (SessionStatus, error) {
	sess, err := s.repo.GetSession(id)
	if err != nil {
		return SessionStatus{}, err
	}

	count, remaining := sess.Buffer.Status()
	sess.mu.Lock()
	left := len(sess.batches) - sess.nextBatch
	sess.mu.Unlock()

	return SessionStatus{
		BufferedSegments:  count,
		RemainingSegments: remaining,
		Ready:             sess.Buffer.Ready(),
		BatchesLeft:       left,
	}, nil
}

// Reset clears the session's buffer and rewinds its read cursor. The batch
// position is untouched; callers restart fetching with Advance.
func (s *Service) Reset(id SessionID) error {
	sess, err := s.repo.GetSession(id)
	if err != nil {
		return err
	}
	sess.Buffer.Reset()
	return nil
}

// EndSession removes the session from the repository.
func (s *Service) EndSession(id SessionID) {
	s.repo.DeleteSession(id)
	if s.metrics != nil {
		s.metrics.IncSessionsEnded()
	}
}

// SessionCount reports the number of live sessions, for the metrics gauge.
func (s *Service) SessionCount() int {
	return s.repo.SessionCount()
}

// fetchNextBatch fetches the session's next pending batch and pushes the
// payloads into the buffer in input order. A single failed segment aborts
// the whole batch: nothing is buffered and the batch position does not
// advance. Holding sess.mu across the fetch serializes concurrent Advance
// calls on the same session.
func (s *Service) fetchNextBatch(ctx context.Context, sess *Session) (int, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.nextBatch >= len(sess.batches) {
		return 0, nil
	}
	batch := sess.batches[sess.nextBatch]

	results := s.fetcher.Fetch(ctx, batch)
	if err := FirstError(results); err != nil {
		if s.metrics != nil {
			s.metrics.IncFetchErrors()
		}
		return 0, err
	}

	var bytes int
	for _, r := range results {
		sess.Buffer.AddSegment(r.Data)
		bytes += len(r.Data)
	}
	sess.nextBatch++

	if s.metrics != nil {
		s.metrics.AddSegmentsFetched(len(results), bytes)
	}
	return len(results), nil
}

// resolveURL resolves ref against base, yielding an absolute URL.
func resolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", base, ErrInvalidURL)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", ref, ErrInvalidURL)
	}
	return b.ResolveReference(r).String(), nil
}

// chunkURIs splits uris into consecutive groups of at most size elements.
func chunkURIs(uris []string, size int) [][]string {
	if size <= 0 || len(uris) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(uris)+size-1)/size)
	for start := 0; start < len(uris); start += size {
		end := start + size
		if end > len(uris) {
			end = len(uris)
		}
		batches = append(batches, uris[start:end])
	}
	return batches
}
