package revalidate

import (
	"context"
	"time"

	"github.com/jbearak/rlsp/location"
)

// scheduledJob tracks one file's pending debounced recomputation.
// Mirrors the teacher's debounceEntry (lsp/workspace.go): a struct with
// pointer identity lets the fired callback tell whether it is still the
// current job for file, or has been superseded by a newer schedule call
// that ran while it executed.
type scheduledJob struct {
	timer  *time.Timer
	cancel context.CancelFunc

	// scheduledVersion is file's version at schedule time, the first
	// freshness guard checked before publishing (spec.md §4.J step 6).
	scheduledVersion int64
}

// schedule cancels any pending job for file and starts a new one,
// firing after Config.RevalidationDebounceMs. Grounded on
// Workspace.ScheduleAnalysis.
func (e *Engine) schedule(ctx context.Context, file location.FileID) {
	e.mu.Lock()
	if existing, ok := e.jobs[file]; ok {
		existing.timer.Stop()
		existing.cancel()
	}

	jobCtx, cancel := context.WithCancel(ctx)
	job := &scheduledJob{cancel: cancel, scheduledVersion: e.versions[file]}

	job.timer = time.AfterFunc(e.cfg.debounceDelay(), func() {
		e.fire(jobCtx, file, job)
	})
	e.jobs[file] = job
	e.mu.Unlock()
}

// fire runs the deferred diagnostic recomputation and publish for file,
// enforcing both freshness guards from spec.md §4.J step 6. Cancellation
// is cooperative: a cancelled job stops before publishing, never
// mid-computation.
func (e *Engine) fire(ctx context.Context, file location.FileID, job *scheduledJob) {
	defer e.clearJobIfCurrent(file, job)

	select {
	case <-ctx.Done():
		return
	default:
	}

	result, err := e.diagnostics.ComputeDiagnostics(ctx, file)
	if err != nil {
		return
	}

	select {
	case <-ctx.Done():
		return
	default:
	}

	e.mu.Lock()
	currentVersion := e.versions[file]
	lastPublished := e.lastPublished[file]
	stale := currentVersion < job.scheduledVersion || lastPublished >= currentVersion
	if !stale {
		e.lastPublished[file] = currentVersion
	}
	e.mu.Unlock()

	if stale {
		return
	}
	e.publisher.Publish(ctx, file, result)
}

// clearJobIfCurrent removes file's job entry only if job is still the
// one registered for it, so a newer schedule() call racing with this
// firing never has its entry deleted out from under it.
func (e *Engine) clearJobIfCurrent(file location.FileID, job *scheduledJob) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.jobs[file] == job {
		delete(e.jobs, file)
	}
}

// CancelPending cancels file's scheduled job, if any, without running
// it. Call when a document closes.
func (e *Engine) CancelPending(file location.FileID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if job, ok := e.jobs[file]; ok {
		job.timer.Stop()
		job.cancel()
		delete(e.jobs, file)
	}
}
