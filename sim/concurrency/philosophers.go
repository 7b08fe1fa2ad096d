package concurrency

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim"
	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// DiningConfig parameterizes RunDiningPhilosophers.
type DiningConfig struct {
	Philosophers int // >= 2
	Meals        int // meals per philosopher
	Seed         int64
	MaxDelay     time.Duration // upper bound of think and eat pauses; 0 disables
}

// DiningReport summarizes one demo run.
type DiningReport struct {
	MealsEaten    []int // per philosopher
	MaxConcurrent int   // most philosophers eating at once
}

// forkOrder returns the fork indices philosopher i picks up, lower index first.
// Philosopher i sits between forks i and (i+1) mod n.
func forkOrder(i, n int) (first, second int) {
	left, right := i, (i+1)%n
	if left < right {
		return left, right
	}
	return right, left
}

// RunDiningPhilosophers runs every philosopher until each has eaten cfg.Meals
// times. Forks are binary semaphores acquired in ascending index order, which
// breaks the circular wait.
func RunDiningPhilosophers(cfg DiningConfig, logger logrus.FieldLogger) (DiningReport, error) {
	if cfg.Philosophers < 2 {
		return DiningReport{}, fmt.Errorf("need at least 2 philosophers, got %d", cfg.Philosophers)
	}
	if cfg.Meals < 0 {
		return DiningReport{}, fmt.Errorf("meals must be >= 0, got %d", cfg.Meals)
	}
	log := logging.Component(logger, "dining-philosophers")
	n := cfg.Philosophers
	forks := make([]*CountingSemaphore, n)
	for i := range forks {
		forks[i] = NewCountingSemaphore(1, logger)
	}
	rngs := workerRNGs(cfg.Seed, n, sim.SubsystemPhilosopher)

	report := DiningReport{MealsEaten: make([]int, n)}
	var mu sync.Mutex
	eating := 0

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			entry := log.WithField("philosopher", id)
			first, second := forkOrder(id, n)
			for meal := 0; meal < cfg.Meals; meal++ {
				entry.Debug("Thinking")
				jitter(rngs[id], cfg.MaxDelay)

				forks[first].Wait()
				forks[second].Wait()

				mu.Lock()
				eating++
				report.MaxConcurrent = max(report.MaxConcurrent, eating)
				mu.Unlock()

				entry.Debugf("Eating with forks %d and %d", first, second)
				jitter(rngs[id], cfg.MaxDelay)

				mu.Lock()
				eating--
				report.MealsEaten[id]++
				mu.Unlock()

				forks[second].Signal()
				forks[first].Signal()
			}
		}(i)
	}
	wg.Wait()
	log.Infof("All %d philosophers finished %d meals without deadlock", n, cfg.Meals)
	return report, nil
}
