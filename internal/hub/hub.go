package hub

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lumesync/lumesync/internal/infrastructure/logging"
	"github.com/lumesync/lumesync/internal/light"
	"github.com/lumesync/lumesync/internal/upstream"
)

const (
	// MinPollInterval is the floor for the configured poll interval.
	// It exists to bound the request rate against the upstream controller;
	// Start rejects anything lower rather than silently accepting it.
	MinPollInterval = 500 * time.Millisecond

	// defaultWriteMargin is the suppression slack added to a write's
	// transition duration when the config does not set one.
	defaultWriteMargin = 2 * time.Second

	// writeTimeout bounds an async upstream write.
	writeTimeout = 10 * time.Second
)

// Config describes one hub instance.
type Config struct {
	// ServerID identifies the upstream server this hub mirrors.
	ServerID string

	// Name is the human-readable server label.
	Name string

	// PollInterval is the reconciliation period. Must be at least
	// MinPollInterval.
	PollInterval time.Duration

	// WriteMargin is the suppression slack after a local write, added on
	// top of the write's transition duration. Zero selects the default.
	WriteMargin time.Duration
}

// Hub keeps the local model of one upstream server's lights synchronized
// and fans real changes out to subscribed consumers.
//
// All shared state (records, subscriptions) is guarded by one mutex; the
// poll loop is the only producer of reconciliation dispatches, which
// keeps per-device delivery ordered across passes. Upstream fetches and
// writes run outside the lock so I/O never blocks subscribe/write calls
// for unrelated devices.
//
// Multiple independent hubs coexist without interference: nothing here
// is process-global.
type Hub struct {
	cfg    Config
	client upstream.Client
	logger *logging.Logger

	// clock is a test seam; production hubs use time.Now.
	clock func() time.Time

	mu      sync.Mutex
	records map[string]*record
	subs    *subscriptions
	running bool
	cancel  context.CancelFunc

	// seq stamps every state mutation, monotonically for the hub's
	// lifetime. Deliveries carry the stamped value so a stale catch-up
	// push is recognizable after the mutex is released.
	seq uint64

	rec      reconciler
	disp     dispatcher
	warnings chan Warning
	wg       sync.WaitGroup
}

// New creates a hub for one upstream server. The hub is inert until
// Start is called.
func New(cfg Config, client upstream.Client, logger *logging.Logger) *Hub {
	h := &Hub{
		cfg:      cfg,
		client:   client,
		logger:   logger.With("component", "hub", "server", cfg.ServerID),
		clock:    time.Now,
		records:  make(map[string]*record),
		subs:     newSubscriptions(),
		warnings: make(chan Warning, warningBufferSize),
	}
	h.rec = reconciler{clock: func() time.Time { return h.clock() }}
	h.disp = dispatcher{warn: h.warn}
	return h
}

// AddTap registers a change observer. Must be called before Start.
func (h *Hub) AddTap(t Tap) {
	h.disp.taps = append(h.disp.taps, t)
}

// ServerID returns the upstream server identity this hub mirrors.
func (h *Hub) ServerID() string {
	return h.cfg.ServerID
}

// Name returns the human-readable server label.
func (h *Hub) Name() string {
	return h.cfg.Name
}

// Start validates the configuration, performs one synchronous fetch to
// seed the registry, and only then arms the periodic poll.
//
// On a failed initial fetch the hub reports ErrUpstreamUnavailable and
// stays inert — no timer is armed until a caller retries Start.
func (h *Hub) Start(ctx context.Context) error {
	if h.cfg.PollInterval < MinPollInterval {
		return fmt.Errorf("%w: %v (minimum %v)", ErrPollInterval, h.cfg.PollInterval, MinPollInterval)
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return ErrRunning
	}
	h.mu.Unlock()

	snapshot, err := h.client.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: initial fetch: %w", ErrUpstreamUnavailable, err)
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return ErrRunning
	}
	h.running = true
	pollCtx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	batch := h.applyLocked(snapshot)
	h.mu.Unlock()

	h.deliver(batch)

	h.wg.Add(1)
	go h.pollLoop(pollCtx)

	h.logger.Info("hub started",
		"devices", len(snapshot),
		"poll_interval", h.cfg.PollInterval,
	)
	return nil
}

// Stop cancels the poll timer and releases all device records. It is
// idempotent and safe to call while a poll or write is in flight:
// in-flight results are discarded rather than applied after stop.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	cancel := h.cancel
	h.cancel = nil
	h.records = make(map[string]*record)
	h.mu.Unlock()

	cancel()
	h.wg.Wait()
	h.logger.Info("hub stopped")
}

// Subscribe registers a consumer's interest in one device and
// immediately delivers the current status. A late subscriber never
// waits for the next poll tick, and the catch-up push carries the
// record's state sequence: should a reconciliation pass dispatch newer
// state while the push is in flight, the stale snapshot is dropped at
// the registration's delivery gate rather than delivered last. Unknown
// devices are legal targets and yield StatusUnknown until the device
// first appears.
func (h *Hub) Subscribe(deviceID, consumerID string, c Consumer, receive bool) {
	h.mu.Lock()
	sub := h.subs.add(deviceID, consumerID, c, receive)

	u := Update{
		ServerID: h.cfg.ServerID,
		DeviceID: deviceID,
		Status:   StatusUnknown,
	}
	var seq uint64
	if rec, ok := h.records[deviceID]; ok {
		seq = rec.seq
		u.Status = statusOf(rec.state)
		if receive {
			u.State = rec.state.Render()
		}
	}
	h.mu.Unlock()

	h.disp.deliver(sub, u, seq)
}

// Unsubscribe removes a consumer's registration. Removing an absent
// registration is a no-op, not an error.
func (h *Hub) Unsubscribe(deviceID, consumerID string) {
	h.mu.Lock()
	h.subs.remove(deviceID, consumerID)
	h.mu.Unlock()
}

// Write applies a change to a registered device: the local record is
// updated optimistically, a suppression deadline covering the full
// transition plus slack is set, and the upstream write goes out
// asynchronously. An upstream failure is reported on the warning channel
// and does not roll back the local state — the next poll past the
// suppression window corrects any drift.
func (h *Hub) Write(ctx context.Context, deviceID string, change light.Change) error {
	h.mu.Lock()
	rec, ok := h.records[deviceID]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, deviceID)
	}

	rec.state = change.Apply(rec.state)
	h.seq++
	rec.seq = h.seq

	margin := h.cfg.WriteMargin
	if margin <= 0 {
		margin = defaultWriteMargin
	}
	rec.suppressUntil = h.clock().Add(change.Duration + margin)

	upstreamID := rec.upstreamID
	h.mu.Unlock()

	req := change.WriteRequest()
	go func() {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
		defer cancel()
		if err := h.client.WriteState(wctx, upstreamID, req); err != nil {
			h.warn(Warning{Kind: WarnUpstreamWrite, DeviceID: deviceID, Err: err})
		}
	}()

	return nil
}

// List returns a snapshot of every known device. The slice and its
// entries are copies; callers cannot reach internal state through them.
func (h *Hub) List() []DeviceInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]DeviceInfo, 0, len(h.records))
	for _, rec := range h.records {
		out = append(out, DeviceInfo{
			ID:         rec.id,
			UpstreamID: rec.upstreamID,
			Label:      rec.state.Label,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeviceCount returns the number of known devices.
func (h *Hub) DeviceCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// pollLoop drives periodic reconciliation until the hub is stopped.
// Nothing in a pass may cancel the timer; fetch failures skip the tick.
func (h *Hub) pollLoop(ctx context.Context) {
	defer h.wg.Done()

	ticker := time.NewTicker(h.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.poll(ctx)
		}
	}
}

// poll runs one reconciliation pass: fetch outside the lock, merge and
// collect dispatches under it, deliver after releasing it. The poll loop
// is the sole caller, so dispatch order across passes is preserved.
func (h *Hub) poll(ctx context.Context) {
	snapshot, err := h.client.FetchAll(ctx)
	if err != nil {
		h.warn(Warning{Kind: WarnUpstreamFetch, Err: err})
		return
	}

	h.mu.Lock()
	if !h.running {
		// Stopped while the fetch was in flight; discard the result.
		h.mu.Unlock()
		return
	}
	batch := h.applyLocked(snapshot)
	h.mu.Unlock()

	h.deliver(batch)
}

// delivery is one dispatched change with its subscriber set, both
// captured under the lock so the pushed state is exactly the record's
// state at the moment of dispatch.
type delivery struct {
	ev   Event
	subs []subscriber
}

// applyLocked reconciles a snapshot and collects the resulting
// deliveries. The caller holds the mutex.
func (h *Hub) applyLocked(snapshot []upstream.Device) []delivery {
	changes := h.rec.reconcile(h.records, snapshot)
	if len(changes) == 0 {
		return nil
	}

	batch := make([]delivery, 0, len(changes))
	for _, c := range changes {
		rec := h.records[c.deviceID]
		h.seq++
		rec.seq = h.seq
		batch = append(batch, delivery{
			ev: Event{
				ServerID:   h.cfg.ServerID,
				DeviceID:   rec.id,
				UpstreamID: rec.upstreamID,
				Label:      rec.state.Label,
				Added:      c.added,
				State:      rec.state,
				seq:        rec.seq,
			},
			subs: h.subs.forDevice(c.deviceID),
		})
	}
	return batch
}

// deliver fans out a collected batch.
func (h *Hub) deliver(batch []delivery) {
	for _, d := range batch {
		h.disp.dispatch(d.ev, d.subs)
	}
}
