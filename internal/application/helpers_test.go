package application

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

type post struct {
	kind domain.ToastKind
	text string
}

// recordingNotifier captures every posted message.
type recordingNotifier struct {
	mu    sync.Mutex
	posts []post
}

func (n *recordingNotifier) Post(kind domain.ToastKind, text string, _ time.Duration) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.posts = append(n.posts, post{kind: kind, text: text})
	return text
}

func (n *recordingNotifier) last() post {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.posts) == 0 {
		return post{}
	}
	return n.posts[len(n.posts)-1]
}

func (n *recordingNotifier) count(kind domain.ToastKind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, p := range n.posts {
		if p.kind == kind {
			c++
		}
	}
	return c
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.posts = nil
}

// fakeClock returns a fixed instant.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeStore is an in-memory StateStore with injectable failures.
type fakeStore struct {
	snap    *domain.Snapshot
	saves   int
	saveErr error
	loadErr error
}

func (s *fakeStore) Save(_ context.Context, snap domain.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = &snap
	s.saves++
	return nil
}

func (s *fakeStore) Load(context.Context) (domain.Snapshot, bool, error) {
	if s.loadErr != nil {
		return domain.Snapshot{}, false, s.loadErr
	}
	if s.snap == nil {
		return domain.Snapshot{}, false, nil
	}
	return *s.snap, true, nil
}

func (s *fakeStore) Close() error { return nil }

// fakeMetrics records gauges and histogram observations.
type fakeMetrics struct {
	gauges     map[string]float64
	histograms map[string][]float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{gauges: map[string]float64{}, histograms: map[string][]float64{}}
}

func (m *fakeMetrics) RecordLatency(string, time.Duration, map[string]string) {}

func (m *fakeMetrics) RecordCounter(string, float64, map[string]string) {}

func (m *fakeMetrics) RecordGauge(metric string, value float64, _ map[string]string) {
	m.gauges[metric] = value
}

func (m *fakeMetrics) RecordHistogram(metric string, value float64, _ map[string]string) {
	m.histograms[metric] = append(m.histograms[metric], value)
}

// fakeObserver records the bracketed operations.
type fakeObserver struct {
	pre  []string
	post []string
	errs []error
}

func (o *fakeObserver) PreMutation(ctx context.Context, op string) context.Context {
	o.pre = append(o.pre, op)
	return ctx
}

func (o *fakeObserver) PostMutation(_ context.Context, op string, _ time.Duration, err error) {
	o.post = append(o.post, op)
	o.errs = append(o.errs, err)
}

var (
	_ ports.Notifier         = (*recordingNotifier)(nil)
	_ ports.Clock            = (*fakeClock)(nil)
	_ ports.StateStore       = (*fakeStore)(nil)
	_ ports.MetricsCollector = (*fakeMetrics)(nil)
	_ ports.MutationObserver = (*fakeObserver)(nil)
)

var errDiskFull = errors.New("disk full")

// sequentialIDs returns a generator yielding "id-1", "id-2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
}

type fixture struct {
	container *Container
	configs   *ConfigStore
	entries   *EntryRepository
	board     *Scoreboard
	notifier  *recordingNotifier
	store     *fakeStore
	clock     *fakeClock
}

func newFixture(opts ...ContainerOption) *fixture {
	f := &fixture{
		notifier: &recordingNotifier{},
		store:    &fakeStore{},
		clock:    &fakeClock{now: time.UnixMilli(1_700_000_000_000)},
	}
	opts = append([]ContainerOption{WithStore(f.store)}, opts...)
	f.container = NewContainer(domain.NewState(domain.DefaultConfig()), opts...)
	f.configs = NewConfigStore(f.container, f.notifier, WithCatalogIDs(sequentialIDs()))
	f.entries = NewEntryRepository(f.container, f.notifier, WithClock(f.clock))
	f.board = NewScoreboard(f.container)
	return f
}
