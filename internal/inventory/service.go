package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/JonMunkholm/homestock/internal/logging"
	"github.com/google/uuid"
)

// cacheTimeout bounds a snapshot cache write after a mutation.
const cacheTimeout = 5 * time.Second

// Options tunes a Service. Zero values fall back to package defaults.
type Options struct {
	// BatchLimit caps drafts per import (default DefaultBatchLimit).
	BatchLimit int

	// MaxFileSize rejects larger import files; 0 disables the check.
	MaxFileSize int64

	// GateWait is how long an import waits for a running one to finish.
	GateWait time.Duration

	// Cache, when set, persists household snapshots after each mutation and
	// warms a household the first time it is touched.
	Cache SnapshotCache
}

// Service is the entry point for callers: it owns one Store per household
// and runs imports, deletes, updates and refreshes against the Upstream.
type Service struct {
	upstream Upstream
	opts     Options

	mu         sync.Mutex
	households map[string]*household
}

type household struct {
	address  string
	store    *Store
	resolver *Resolver
	gate     *importGate
	warm     sync.Once

	// saveMu orders cache writes so the last Save carries the newest snapshot.
	saveMu sync.Mutex
}

// NewService creates a Service backed by upstream.
func NewService(upstream Upstream, opts Options) *Service {
	if opts.BatchLimit <= 0 {
		opts.BatchLimit = DefaultBatchLimit
	}
	return &Service{
		upstream:   upstream,
		opts:       opts,
		households: make(map[string]*household),
	}
}

func (s *Service) household(ctx context.Context, address string) *household {
	s.mu.Lock()
	h, ok := s.households[address]
	if !ok {
		store := NewStore()
		h = &household{
			address:  address,
			store:    store,
			resolver: NewResolver(store),
			gate:     newImportGate(s.opts.GateWait),
		}
		s.households[address] = h
	}
	s.mu.Unlock()

	h.warm.Do(func() { s.warmFromCache(ctx, h) })
	return h
}

func (s *Service) warmFromCache(ctx context.Context, h *household) {
	if s.opts.Cache == nil {
		return
	}
	// Warming happens once, so a canceled first caller must not cancel it.
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()

	items, err := s.opts.Cache.Load(loadCtx, h.address)
	if err != nil {
		logging.FromContext(ctx).Warn("snapshot cache load failed", "error", err)
		return
	}
	if len(items) > 0 {
		h.store.Replace(items)
		logging.FromContext(ctx).Debug("household warmed from cache", "items", len(items))
	}
}

func (s *Service) persist(ctx context.Context, h *household) {
	if s.opts.Cache == nil {
		return
	}
	h.saveMu.Lock()
	defer h.saveMu.Unlock()

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()

	// The snapshot is taken under saveMu: a Save that started before a later
	// mutation can never land after that mutation's Save.
	if err := s.opts.Cache.Save(saveCtx, h.address, h.store.Snapshot()); err != nil {
		logging.FromContext(ctx).Warn("snapshot cache save failed", "error", err)
	}
}

// Import runs the bulk-import pipeline for one file: decode, normalize,
// limit, submit, merge. The household store reflects either every item the
// upstream confirmed for this submission or none of them.
func (s *Service) Import(ctx context.Context, sess Session, data []byte, format Format) (ImportResult, error) {
	start := time.Now()
	importID := uuid.NewString()
	logger := logging.WithFields(ctx, "import_id", importID, "format", format)

	if s.opts.MaxFileSize > 0 && int64(len(data)) > s.opts.MaxFileSize {
		return ImportResult{}, &DecodeError{
			Format: format,
			Err:    fmt.Errorf("file too large: %d bytes exceeds %d", len(data), s.opts.MaxFileSize),
		}
	}

	h := s.household(ctx, sess.Address)
	if err := h.gate.acquire(ctx); err != nil {
		logger.Warn("import gate not acquired", "error", err)
		return ImportResult{}, err
	}
	defer h.gate.release()

	rows, err := Decode(data, format)
	if err != nil {
		logger.Warn("import decode failed", "error", err)
		return ImportResult{}, err
	}
	defer rows.Close()

	drafts, stats, err := NormalizeAll(rows)
	if err != nil {
		logger.Warn("import decode failed", "error", err, "line", rows.Line())
		return ImportResult{}, err
	}
	for reason, n := range stats.ByReason {
		logger.Debug("rows skipped", "reason", reason, "count", n)
	}

	batch, truncated := Limit(drafts, s.opts.BatchLimit)

	result := ImportResult{
		ImportID:  importID,
		Accepted:  []Item{},
		TotalRows: stats.TotalRows,
		Skipped:   stats.Skipped,
		Truncated: truncated,
	}

	if len(batch) == 0 {
		result.Duration = time.Since(start)
		logger.Info("import had no usable rows", "rows", stats.TotalRows, "skipped", stats.Skipped)
		return result, nil
	}

	confirmed, err := s.upstream.BulkAdd(ctx, sess, batch)
	if err != nil {
		logger.Error("import submission failed", "error", err, "batch", len(batch))
		return ImportResult{}, &SubmissionError{Op: "bulk add", Err: err}
	}
	if !h.store.Merge(confirmed) {
		err := errors.New("response contains an item without an id")
		logger.Error("import submission rejected", "error", err)
		return ImportResult{}, &SubmissionError{Op: "bulk add", Err: err}
	}
	s.persist(ctx, h)

	result.Accepted = append(result.Accepted, confirmed...)
	result.Duration = time.Since(start)

	logger.Info("import completed",
		"rows", result.TotalRows,
		"accepted", len(result.Accepted),
		"skipped", result.Skipped,
		"truncated", result.Truncated,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// RequestDelete asks the upstream to delete id and applies its answer. On a
// *SubmissionError or *ReconcileError the store is unchanged.
func (s *Service) RequestDelete(ctx context.Context, sess Session, id string) (MutationResponse, error) {
	logger := logging.WithFields(ctx, "item_id", id)
	h := s.household(ctx, sess.Address)

	resp, err := s.upstream.Delete(ctx, sess, id)
	if err != nil {
		logger.Error("delete request failed", "error", err)
		return MutationResponse{}, &SubmissionError{Op: "delete", Err: err}
	}

	if err := h.resolver.ResolveDelete(id, resp); err != nil {
		logger.Warn("delete response not applied", "error", err, "message", resp.Message)
		return resp, err
	}
	s.persist(ctx, h)

	logger.Info("delete resolved", "outcome", resp.Outcome)
	return resp, nil
}

// RequestUpdate sends a new name and quantity for id and applies the
// upstream's answer, which may be a removal.
func (s *Service) RequestUpdate(ctx context.Context, sess Session, id string, draft ItemDraft) (MutationResponse, error) {
	draft.Name = collapseSpace(draft.Name)
	if draft.Name == "" || draft.Quantity < 0 {
		return MutationResponse{}, ErrInvalidDraft
	}

	logger := logging.WithFields(ctx, "item_id", id)
	h := s.household(ctx, sess.Address)

	resp, err := s.upstream.Update(ctx, sess, id, draft)
	if err != nil {
		logger.Error("update request failed", "error", err)
		return MutationResponse{}, &SubmissionError{Op: "update", Err: err}
	}

	if err := h.resolver.ResolveUpdate(id, resp); err != nil {
		logger.Warn("update response not applied", "error", err, "message", resp.Message)
		return resp, err
	}
	s.persist(ctx, h)

	logger.Info("update resolved", "outcome", resp.Outcome)
	return resp, nil
}

// Refresh replaces the household store with the upstream's full listing and
// returns the new snapshot.
func (s *Service) Refresh(ctx context.Context, sess Session) ([]Item, error) {
	h := s.household(ctx, sess.Address)

	items, err := s.upstream.List(ctx, sess)
	if err != nil {
		logging.FromContext(ctx).Error("refresh failed", "error", err)
		return nil, &SubmissionError{Op: "list", Err: err}
	}

	h.store.Replace(items)
	s.persist(ctx, h)
	return h.store.Snapshot(), nil
}

// Snapshot returns the household's items, newest first.
func (s *Service) Snapshot(ctx context.Context, address string) []Item {
	return s.household(ctx, address).store.Snapshot()
}

// Export writes the household snapshot to w as an .xlsx workbook.
func (s *Service) Export(ctx context.Context, address string, w io.Writer) error {
	return WriteWorkbook(w, s.Snapshot(ctx, address))
}

// ImportsActive reports how many households have an import running.
func (s *Service) ImportsActive() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, h := range s.households {
		if h.gate.busy() {
			n++
		}
	}
	return n
}

// WaitForImports blocks until every running import finishes or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	s.mu.Lock()
	gates := make([]*importGate, 0, len(s.households))
	for _, h := range s.households {
		gates = append(gates, h.gate)
	}
	s.mu.Unlock()

	for _, g := range gates {
		if err := g.waitIdle(ctx); err != nil {
			return err
		}
	}
	return nil
}
