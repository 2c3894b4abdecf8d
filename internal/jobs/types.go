package jobs

import (
	"context"
	"sync"
	"time"
)

// Kind identifies what a job writes.
type Kind string

const (
	KindUserApps  Kind = "user-apps"
	KindFavorites Kind = "favorites"
	KindExport    Kind = "export"
)

// Coalesces reports whether a pending job of this kind absorbs later
// requests of the same kind. Only full-document saves do; an export owns
// its destination and must run on its own.
func (k Kind) Coalesces() bool {
	return k == KindUserApps || k == KindFavorites
}

// Status represents job status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// RunFunc performs the work of a job.
type RunFunc func(ctx context.Context) error

// Job holds a single queued write.
type Job struct {
	// immutable fields
	ID   int64
	Kind Kind

	// state
	mu          sync.RWMutex
	Target      string // file the job writes, for display
	run         RunFunc
	Status      Status
	Coalesced   int // number of later requests folded into this job
	Error       string
	EnqueuedAt  time.Time
	StartedAt   time.Time
	CompletedAt time.Time

	// cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// Snapshot returns a copy of important fields for UI.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return JobSnapshot{
		ID:          j.ID,
		Kind:        j.Kind,
		Target:      j.Target,
		Status:      j.Status,
		Coalesced:   j.Coalesced,
		Error:       j.Error,
		EnqueuedAt:  j.EnqueuedAt,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
	}
}

// JobSnapshot is a read-only view for UI.
type JobSnapshot struct {
	ID          int64
	Kind        Kind
	Target      string
	Status      Status
	Coalesced   int
	Error       string
	EnqueuedAt  time.Time
	StartedAt   time.Time
	CompletedAt time.Time
}

// Done reports whether the job reached a final status.
func (s JobSnapshot) Done() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed || s.Status == StatusCanceled
}
