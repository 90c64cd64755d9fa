package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type jobStatus string

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
	jobStatusCanceled  jobStatus = "canceled"
)

type jobSnapshot struct {
	ID          string
	Kind        operation
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus turns runners into commands and logs their lifecycle.
type jobBus struct {
	log   *slog.Logger
	newID func() string
}

func newJobBus(log *slog.Logger) *jobBus {
	return &jobBus{log: log, newID: uuid.NewString}
}

// Start emits a running snapshot, then runs the job on the command goroutine
// and wraps its payload in a jobResultEnvelope.
func (b *jobBus) Start(ctx context.Context, kind operation, runner jobRunner) tea.Cmd {
	id := b.newID()
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	b.log.Debug("job started", "job", id, "kind", kind.String())
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		payload, err := runner(ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		switch {
		case err != nil && ctx.Err() != nil:
			snapshot.Status = jobStatusCanceled
			snapshot.Err = err.Error()
		case err != nil:
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		default:
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		level := slog.LevelInfo
		if snapshot.Status == jobStatusFailed {
			level = slog.LevelError
		}
		b.log.Log(context.Background(), level, "job finished",
			"job", id,
			"kind", kind.String(),
			"status", string(snapshot.Status),
			"duration", snapshot.Duration,
			"err", err,
		)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}
