package concurrency

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/inference-sim/os-sim/sim"
)

// jitter sleeps for a random duration in [0, max). max <= 0 never sleeps.
func jitter(rng *rand.Rand, max time.Duration) {
	if max <= 0 {
		return
	}
	time.Sleep(time.Duration(rng.Int63n(int64(max))))
}

// workerRNGs derives one stream per worker from seed, keyed by name(i).
// PartitionedRNG is not thread-safe, so all streams are created up front and
// each must then be used by a single goroutine.
func workerRNGs(seed int64, n int, name func(i int) string) []*rand.Rand {
	prng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	out := make([]*rand.Rand, n)
	for i := range out {
		out[i] = prng.ForSubsystem(name(i))
	}
	return out
}

func syncSubsystem(role string) func(int) string {
	return func(i int) string { return fmt.Sprintf("%s_%s_%d", sim.SubsystemSync, role, i) }
}
