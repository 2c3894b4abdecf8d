package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"toolbox/internal/logging"
)

// Manager coordinates queueing and background processing (single worker).
type Manager struct {
	mu          sync.Mutex
	cond        *sync.Cond
	queue       []*Job
	closed      bool
	nextID      int64
	subscribers []func()
	current     *Job
	history     []*Job
	historyMax  int
	done        chan struct{}
	logger      *zap.Logger
}

// NewManager constructs and starts a Manager.
func NewManager(logger *zap.Logger, historyMax int) *Manager {
	m := &Manager{
		historyMax: historyMax,
		done:       make(chan struct{}),
		logger:     logging.OrNop(logger),
	}
	m.cond = sync.NewCond(&m.mu)
	go m.worker()
	m.logger.Debug("manager created; worker started")
	return m
}

// Subscribe registers a callback called on state changes.
func (m *Manager) Subscribe(cb func()) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, cb)
	n := len(m.subscribers)
	m.mu.Unlock()
	m.logger.Debug("subscriber added", zap.Int("total", n))
}

func (m *Manager) notify() {
	// call without holding the lock to avoid re-entrancy
	m.mu.Lock()
	subs := append([]func(){}, m.subscribers...)
	m.mu.Unlock()
	for _, cb := range subs {
		// UI should marshal to main thread as needed
		cb()
	}
}

// Enqueue schedules run under kind. For kinds that coalesce, a job of the
// same kind that is still pending has its work replaced by run and is
// returned instead.
func (m *Manager) Enqueue(kind Kind, target string, run RunFunc) *Job {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		j := m.newJob(kind, target, run)
		j.Status = StatusCanceled
		j.CompletedAt = time.Now()
		m.logger.Warn("enqueue after close", zap.String("kind", string(kind)))
		return j
	}
	for _, pending := range m.queue {
		if kind.Coalesces() && pending.Kind == kind {
			pending.mu.Lock()
			pending.run = run
			pending.Target = target
			pending.Coalesced++
			pending.mu.Unlock()
			m.mu.Unlock()
			m.logger.Debug("coalesced", zap.Int64("id", pending.ID), zap.String("kind", string(kind)))
			m.notify()
			return pending
		}
	}
	j := m.newJob(kind, target, run)
	m.queue = append(m.queue, j)
	m.mu.Unlock()

	m.logger.Debug("enqueue", zap.Int64("id", j.ID), zap.String("kind", string(kind)), zap.String("target", target))
	m.notify()
	m.cond.Broadcast()
	return j
}

func (m *Manager) newJob(kind Kind, target string, run RunFunc) *Job {
	j := &Job{ID: atomic.AddInt64(&m.nextID, 1), Kind: kind, Target: target, run: run, Status: StatusPending, EnqueuedAt: time.Now()}
	j.ctx, j.cancel = contextWithCancel()
	return j
}

// Cancel cancels a job by ID.
func (m *Manager) Cancel(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	// pending in queue
	for i, j := range m.queue {
		if j.ID == id {
			j.mu.Lock()
			j.Status = StatusCanceled
			j.CompletedAt = time.Now()
			j.mu.Unlock()
			j.Cancel()
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			m.logger.Debug("cancel pending", zap.Int64("id", id))
			m.addHistoryLocked(j)
			m.cond.Broadcast()
			go m.notify()
			return true
		}
	}
	// currently running
	if m.current != nil && m.current.ID == id {
		m.current.Cancel()
		m.logger.Debug("cancel running", zap.Int64("id", id))
		go m.notify()
		return true
	}
	return false
}

// List returns snapshots of the running job, pending jobs, then history (newest first).
func (m *Manager) List() []JobSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]JobSnapshot, 0, len(m.queue)+1+len(m.history))
	if m.current != nil {
		out = append(out, m.current.Snapshot())
	}
	for _, j := range m.queue {
		out = append(out, j.Snapshot())
	}
	for i := len(m.history) - 1; i >= 0; i-- {
		out = append(out, m.history[i].Snapshot())
	}
	return out
}

// Flush blocks until the queue is empty and no job is running, or ctx is
// done. Waiting stops as soon as ctx ends even if a job never returns.
func (m *Manager) Flush(ctx context.Context) error {
	// wake the wait loop below when ctx ends
	stop := context.AfterFunc(ctx, func() {
		m.mu.Lock()
		m.cond.Broadcast()
		m.mu.Unlock()
	})
	defer stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.queue) > 0 || m.current != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.cond.Wait()
	}
	return nil
}

// Close drains the queue and stops the worker. Jobs enqueued afterwards are
// canceled immediately.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.done
		return
	}
	m.closed = true
	m.mu.Unlock()
	m.cond.Broadcast()
	<-m.done
	m.logger.Debug("manager closed")
}

func (m *Manager) worker() {
	defer close(m.done)
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.cond.Wait()
		}
		if len(m.queue) == 0 && m.closed {
			m.mu.Unlock()
			return
		}
		// pop head
		j := m.queue[0]
		m.queue = m.queue[1:]
		m.current = j
		m.mu.Unlock()

		// run job serially
		j.mu.Lock()
		j.Status = StatusRunning
		j.StartedAt = time.Now()
		run := j.run
		j.mu.Unlock()
		m.notify()

		err := m.runJob(j, run)

		j.mu.Lock()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				j.Status = StatusCanceled
				m.logger.Debug("job canceled", zap.Int64("id", j.ID))
			} else {
				j.Status = StatusFailed
				j.Error = err.Error()
				m.logger.Error("job failed", zap.Int64("id", j.ID), zap.String("kind", string(j.Kind)),
					zap.String("target", j.Target), zap.Error(err))
			}
		} else {
			j.Status = StatusCompleted
			m.logger.Debug("job completed", zap.Int64("id", j.ID), zap.String("kind", string(j.Kind)))
		}
		j.CompletedAt = time.Now()
		j.mu.Unlock()

		m.mu.Lock()
		m.current = nil
		m.addHistoryLocked(j)
		m.mu.Unlock()
		m.cond.Broadcast()
		m.notify()
	}
}

// runJob runs one job, turning a panic into an error so the worker survives.
func (m *Manager) runJob(j *Job, run RunFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{value: r}
		}
	}()
	if canceled(j) {
		return context.Canceled
	}
	if run == nil {
		return nil
	}
	return run(j.ctx)
}

// addHistoryLocked appends a finished job to history and trims oldest; caller must hold m.mu
func (m *Manager) addHistoryLocked(j *Job) {
	m.history = append(m.history, j)
	if m.historyMax > 0 && len(m.history) > m.historyMax {
		drop := len(m.history) - m.historyMax
		m.history = append([]*Job{}, m.history[drop:]...)
	}
}

func canceled(j *Job) bool {
	select {
	case <-j.ctx.Done():
		return true
	default:
		return false
	}
}

type panicError struct {
	value interface{}
}

func (e panicError) Error() string { return fmt.Sprintf("job panicked: %v", e.value) }

// Cancel cancels the job's context (owner keeps pointer)
func (j *Job) Cancel() {
	if j.cancel != nil {
		j.cancel()
	}
}

// context helper separated for testability
func contextWithCancel() (ctx context.Context, cancel func()) {
	return context.WithCancel(context.Background())
}
