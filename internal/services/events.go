package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/logger"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/metrics"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
)

// StatusEvent describes one committed report status transition.
type StatusEvent struct {
	ReportID   string              `json:"report_id"`
	Previous   models.ReportStatus `json:"previous_status"`
	New        models.ReportStatus `json:"new_status"`
	OccurredAt time.Time           `json:"timestamp"`
}

// StatusHandler consumes status events. A returned error triggers a retry.
type StatusHandler interface {
	HandleStatusEvent(ctx context.Context, ev StatusEvent) error
}

// StatusDispatcher hands committed transitions to subscribers without
// blocking or failing the originating operation. A single worker drains the
// queue, so events for one report are observed in commit order.
type StatusDispatcher struct {
	log      logger.Logger
	handlers []StatusHandler
	queue    chan StatusEvent

	// seq serializes commit+enqueue pairs in PublishCommitted so that
	// queue order matches commit order.
	seq sync.Mutex
	// mu guards queue against a Publish racing Close.
	mu        sync.RWMutex
	closed    bool
	wg        sync.WaitGroup
	pending   sync.WaitGroup
	closeOnce sync.Once
}

// NewStatusDispatcher creates a dispatcher with the given queue capacity.
func NewStatusDispatcher(log logger.Logger, buffer int) *StatusDispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &StatusDispatcher{
		log:   log,
		queue: make(chan StatusEvent, buffer),
	}
}

// Subscribe registers a handler. Must be called before Start.
func (d *StatusDispatcher) Subscribe(h StatusHandler) {
	d.handlers = append(d.handlers, h)
}

// Start launches the worker goroutine.
func (d *StatusDispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for ev := range d.queue {
			d.deliver(ev)
			d.pending.Done()
		}
	}()
}

// Publish enqueues an event. It never blocks: if the queue is full the
// event is dropped and logged, the transition itself is already committed.
func (d *StatusDispatcher) Publish(ev StatusEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	d.pending.Add(1)
	select {
	case d.queue <- ev:
	default:
		d.pending.Done()
		metrics.EventsDroppedTotal.Inc()
		d.log.Error("status event queue full, event dropped",
			zap.String("report_id", ev.ReportID),
			zap.String("new_status", string(ev.New)))
	}
}

// PublishCommitted runs commit and, when it succeeds, enqueues ev before any
// other commit+enqueue pair may start. Without this coupling, a transition
// that commits later could enqueue its event first and the submitter would
// see notifications out of order.
func (d *StatusDispatcher) PublishCommitted(commit func() error, ev StatusEvent) error {
	d.seq.Lock()
	defer d.seq.Unlock()
	if err := commit(); err != nil {
		return err
	}
	d.Publish(ev)
	return nil
}

// Close stops accepting events and waits for the queue to drain.
func (d *StatusDispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	d.wg.Wait()
}

// commitAndPublish commits tx and emits the transition event through
// PublishCommitted, then records the transition metric. All report status
// writes go through here so events are queued in commit order.
func commitAndPublish(tx *gorm.DB, d *StatusDispatcher, reportID string, previous, next models.ReportStatus) error {
	err := d.PublishCommitted(func() error { return tx.Commit().Error }, StatusEvent{
		ReportID:   reportID,
		Previous:   previous,
		New:        next,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return err
	}
	metrics.TransitionsTotal.WithLabelValues(string(next)).Inc()
	return nil
}

func (d *StatusDispatcher) deliver(ev StatusEvent) {
	ctx := context.Background()
	for _, h := range d.handlers {
		var err error
		for attempt := 0; attempt < 3; attempt++ {
			if err = h.HandleStatusEvent(ctx, ev); err == nil {
				break
			}
			time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
		}
		if err != nil {
			metrics.NotificationFailuresTotal.Inc()
			d.log.Error("status event handler failed after retries",
				zap.String("report_id", ev.ReportID),
				zap.String("new_status", string(ev.New)),
				zap.Error(err))
		}
	}
}
