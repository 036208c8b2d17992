package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs  []namedJob
	start int
}

type namedJob struct {
	name string
	job  job
}

// NewJobManager creates a job manager around the token sweep job.
func NewJobManager(tokenSweepJob *TokenSweepJob) *JobManager {
	jm := &JobManager{}
	jm.add("token sweep", tokenSweepJob)
	return jm
}

func (jm *JobManager) add(name string, j job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: j})
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.stop(i)
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	jm.start = len(jm.jobs)
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stop(jm.start)
	jm.start = 0
}

func (jm *JobManager) stop(n int) {
	for i := n - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
