// Package notify provides the notification bus: a queue of short-lived
// user-facing messages that expire on their own after a ttl.
package notify

import (
	"slices"
	"strconv"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/logging"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

var _ ports.Notifier = (*Bus)(nil)

// Timer is a scheduled expiry that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The default implementation is
// time.AfterFunc; tests substitute a manual scheduler.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// expiry tracks the scheduled removal of one message. Its address
// identifies the schedule so a late callback can tell it was superseded.
type expiry struct {
	timer Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Bus queues notifications and removes each one when its ttl elapses,
// unless it was dismissed first. Dismissal cancels the pending expiry so
// no callback fires for a freed id. Expiry callbacks run on their own
// goroutines, so the queue is guarded by a mutex.
type Bus struct {
	mu      sync.Mutex
	queue   []domain.Toast
	pending map[string]*expiry

	sched      Scheduler
	clock      ports.Clock
	newID      func() string
	defaultTTL time.Duration
	log        logrus.FieldLogger
}

// Option configures a Bus.
type Option func(*Bus)

// WithScheduler overrides the expiry scheduler.
func WithScheduler(s Scheduler) Option { return func(b *Bus) { b.sched = s } }

// WithClock overrides the clock stamping CreatedAt.
func WithClock(c ports.Clock) Option { return func(b *Bus) { b.clock = c } }

// WithIDs overrides the id generator.
func WithIDs(fn func() string) Option { return func(b *Bus) { b.newID = fn } }

// WithDefaultTTL sets the lifetime used when Post receives no ttl.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(b *Bus) {
		if ttl > 0 {
			b.defaultTTL = ttl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option { return func(b *Bus) { b.log = log } }

// NewBus creates an empty Bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		pending:    make(map[string]*expiry),
		sched:      realScheduler{},
		clock:      ports.SystemClock{},
		newID:      newToastID,
		defaultTTL: domain.DefaultToastTTL,
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Post queues a message and schedules its removal after ttl. A ttl of zero
// or less uses the default. Unknown kinds are posted as info.
func (b *Bus) Post(kind domain.ToastKind, text string, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = b.defaultTTL
	}
	if !kind.Valid() {
		kind = domain.ToastInfo
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	t := domain.Toast{
		ID:        b.newID(),
		Kind:      kind,
		Text:      text,
		TTL:       ttl,
		CreatedAt: b.clock.Now(),
	}
	b.queue = append(b.queue, t)

	id := t.ID
	exp := &expiry{}
	b.pending[id] = exp
	exp.timer = b.sched.AfterFunc(ttl, func() { b.expire(id, exp) })

	b.log.WithFields(logrus.Fields{"toast_id": id, "kind": kind.String()}).Debug(text)
	return id
}

// Dismiss removes the message with id and cancels its expiry. It reports
// whether the message was still queued.
func (b *Bus) Dismiss(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if exp, ok := b.pending[id]; ok {
		exp.timer.Stop()
		delete(b.pending, id)
	}
	return b.remove(id)
}

// DismissAll empties the queue and cancels every pending expiry.
func (b *Bus) DismissAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, exp := range b.pending {
		exp.timer.Stop()
		delete(b.pending, id)
	}
	b.queue = nil
}

// Messages returns the queued messages, oldest first.
func (b *Bus) Messages() []domain.Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.queue)
}

// Pending returns the number of scheduled expiries.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// expire is the scheduled callback. It only acts when exp is still the
// schedule registered for id; a stopped timer that fired anyway is ignored.
func (b *Bus) expire(id string, exp *expiry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.pending[id]; !ok || cur != exp {
		return
	}
	delete(b.pending, id)
	b.remove(id)
}

func (b *Bus) remove(id string) bool {
	i := slices.IndexFunc(b.queue, func(t domain.Toast) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	b.queue = slices.Delete(b.queue, i, i+1)
	return true
}

func newToastID() string {
	id, err := gonanoid.New()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id
}
