package services

import (
	"github.com/jrmoura/frota-api/internal/jobs"
)

// JobService exposes worker statistics for the operations endpoint
type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{worker: worker}
}

// GetStats returns the current worker statistics
func (s *JobService) GetStats() jobs.WorkerStats {
	return s.worker.GetStats()
}
