package jobs

import (
	"fmt"
	"log/slog"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []Job
}

// NewJobManager creates a job manager. The dispatch job is registered only
// when dispatchSchedule is set.
func NewJobManager(dispatcher Dispatcher, dispatchSchedule string, logger *slog.Logger) *JobManager {
	jm := &JobManager{}
	if dispatchSchedule != "" {
		jm.jobs = append(jm.jobs, NewDispatchJob(dispatcher, dispatchSchedule, logger))
	}
	return jm
}

// Len reports how many jobs are registered.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}

// StartAll starts all scheduled jobs. If one fails to start, the ones
// already running are stopped.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, job := range jm.jobs {
		job.Stop()
	}
}
