package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the master seed of one run.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Random streams drawn by the simulator.
const (
	SubsystemWorkload   = "workload"   // synthetic processes; seeded with the key itself
	SubsystemReferences = "references" // page reference strings
	SubsystemSync       = "sync"       // demo work delays
)

// SubsystemPhilosopher names the stream of philosopher id.
func SubsystemPhilosopher(id int) string {
	return fmt.Sprintf("philosopher_%d", id)
}

// PartitionedRNG hands out one *rand.Rand per named stream, so that drawing
// reference strings never shifts the generated processes of the same seed.
// Streams other than SubsystemWorkload are seeded with key ^ fnv1a64(name).
// Not safe for concurrent use; each demo worker takes its own stream.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates an empty set of streams for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls return the same instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemWorkload {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

// Key returns the master seed.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
