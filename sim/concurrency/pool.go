package concurrency

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// ResourcePool hands out at most Permits concurrent holds on a shared resource.
type ResourcePool struct {
	sem     *CountingSemaphore
	permits int

	mu         sync.Mutex
	holders    int
	maxHolders int
	uses       int

	log logrus.FieldLogger
}

// NewResourcePool creates a pool with the given number of permits (> 0).
func NewResourcePool(permits int, logger logrus.FieldLogger) *ResourcePool {
	if permits <= 0 {
		panic(fmt.Sprintf("NewResourcePool: permits must be > 0, got %d", permits))
	}
	return &ResourcePool{
		sem:     NewCountingSemaphore(permits, logger),
		permits: permits,
		log:     logging.Component(logger, "resource-pool"),
	}
}

// Use runs fn while holding one permit.
func (p *ResourcePool) Use(worker int, fn func()) {
	p.sem.WithPermit(func() {
		p.mu.Lock()
		p.holders++
		p.uses++
		p.maxHolders = max(p.maxHolders, p.holders)
		p.mu.Unlock()
		defer func() {
			p.mu.Lock()
			p.holders--
			p.mu.Unlock()
		}()

		p.log.WithField("worker", worker).Debug("Acquired resource")
		fn()
	})
}

// MaxHolders returns the largest number of simultaneous holders observed.
func (p *ResourcePool) MaxHolders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxHolders
}

// Uses returns the number of completed or in-flight holds.
func (p *ResourcePool) Uses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uses
}

// PoolConfig parameterizes RunResourcePool.
type PoolConfig struct {
	Permits       int
	Workers       int
	JobsPerWorker int
	Seed          int64
	MaxDelay      time.Duration // upper bound of each hold; 0 disables
}

// PoolReport summarizes one demo run.
type PoolReport struct {
	Permits    int
	Jobs       int
	MaxHolders int
}

// RunResourcePool has every worker run its jobs through one shared pool.
func RunResourcePool(cfg PoolConfig, logger logrus.FieldLogger) (PoolReport, error) {
	if cfg.Permits <= 0 || cfg.Workers <= 0 || cfg.JobsPerWorker < 0 {
		return PoolReport{}, fmt.Errorf("invalid pool config: permits=%d workers=%d jobs=%d",
			cfg.Permits, cfg.Workers, cfg.JobsPerWorker)
	}
	pool := NewResourcePool(cfg.Permits, logger)
	rngs := workerRNGs(cfg.Seed, cfg.Workers, syncSubsystem("worker"))

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < cfg.JobsPerWorker; j++ {
				pool.Use(id, func() { jitter(rngs[id], cfg.MaxDelay) })
			}
		}(i)
	}
	wg.Wait()

	report := PoolReport{Permits: cfg.Permits, Jobs: pool.Uses(), MaxHolders: pool.MaxHolders()}
	pool.log.Infof("Resource pool finished: %d jobs, peak %d/%d holders", report.Jobs, report.MaxHolders, report.Permits)
	return report, nil
}
