package memory

import (
	"time"

	"ai-datavault-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

// JobRepository keeps async import jobs in process memory. Finished jobs
// stay pollable for the cache TTL and are then purged.
type JobRepository struct {
	cache *cache.Cache
}

func NewJobRepository() *JobRepository {
	c := cache.New(24*time.Hour, 30*time.Minute)
	return &JobRepository{
		cache: c,
	}
}

func (r *JobRepository) Save(job *dto.ImportJob) {
	r.cache.Set(job.Id, job, cache.DefaultExpiration)
}

func (r *JobRepository) Get(jobId string) (*dto.ImportJob, bool) {
	if x, found := r.cache.Get(jobId); found {
		return x.(*dto.ImportJob), true
	}
	return nil, false
}

func (r *JobRepository) Delete(jobId string) {
	r.cache.Delete(jobId)
}
