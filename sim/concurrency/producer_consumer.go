package concurrency

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// BoundedBuffer is a FIFO of fixed capacity guarded by three semaphores:
// a mutex, a count of empty slots and a count of full slots.
type BoundedBuffer struct {
	capacity int
	items    []int

	mutex *CountingSemaphore
	empty *CountingSemaphore
	full  *CountingSemaphore

	// guarded by mutex
	maxOccupancy int
	produced     int
	consumed     int

	log logrus.FieldLogger
}

// NewBoundedBuffer creates an empty buffer with the given capacity (> 0).
func NewBoundedBuffer(capacity int, logger logrus.FieldLogger) *BoundedBuffer {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewBoundedBuffer: capacity must be > 0, got %d", capacity))
	}
	return &BoundedBuffer{
		capacity: capacity,
		items:    make([]int, 0, capacity),
		mutex:    NewCountingSemaphore(1, logger),
		empty:    NewCountingSemaphore(capacity, logger),
		full:     NewCountingSemaphore(0, logger),
		log:      logging.Component(logger, "producer-consumer"),
	}
}

// Produce blocks until a slot is free, then appends item.
func (b *BoundedBuffer) Produce(item, producerID int) {
	b.empty.Wait()
	b.mutex.WithPermit(func() {
		b.items = append(b.items, item)
		b.produced++
		b.maxOccupancy = max(b.maxOccupancy, len(b.items))
		b.log.WithField("producer", producerID).Debugf("Added %d, buffer size %d", item, len(b.items))
	})
	b.full.Signal()
}

// Consume blocks until an item is available, then removes the oldest one.
func (b *BoundedBuffer) Consume(consumerID int) int {
	b.full.Wait()
	var item int
	b.mutex.WithPermit(func() {
		item = b.items[0]
		b.items = b.items[1:]
		b.consumed++
		b.log.WithField("consumer", consumerID).Debugf("Took %d, buffer size %d", item, len(b.items))
	})
	b.empty.Signal()
	return item
}

// Len returns the current occupancy.
func (b *BoundedBuffer) Len() int {
	var n int
	b.mutex.WithPermit(func() { n = len(b.items) })
	return n
}

// Capacity returns the buffer size.
func (b *BoundedBuffer) Capacity() int { return b.capacity }

// MaxOccupancy returns the largest occupancy observed so far.
func (b *BoundedBuffer) MaxOccupancy() int {
	var n int
	b.mutex.WithPermit(func() { n = b.maxOccupancy })
	return n
}

// ProducerConsumerConfig parameterizes RunProducerConsumer.
type ProducerConsumerConfig struct {
	BufferSize       int
	Producers        int
	Consumers        int
	ItemsPerProducer int
	Seed             int64
	MaxDelay         time.Duration // upper bound of the random pause after each step; 0 disables
}

// ProducerConsumerReport summarizes one demo run.
type ProducerConsumerReport struct {
	Produced     int
	Consumed     int
	ProducedSum  int
	ConsumedSum  int
	MaxOccupancy int
	Capacity     int
	Remaining    int
}

// Validate reports the first non-positive size, or nil.
func (c ProducerConsumerConfig) Validate() error {
	switch {
	case c.BufferSize <= 0:
		return fmt.Errorf("buffer size must be > 0, got %d", c.BufferSize)
	case c.Producers <= 0 || c.Consumers <= 0:
		return fmt.Errorf("need at least one producer and one consumer, got %d/%d", c.Producers, c.Consumers)
	case c.ItemsPerProducer < 0:
		return fmt.Errorf("items per producer must be >= 0, got %d", c.ItemsPerProducer)
	}
	return nil
}

// RunProducerConsumer runs the bounded-buffer demo to completion. Consumers
// share the total item count, the first ones taking any remainder.
func RunProducerConsumer(cfg ProducerConsumerConfig, logger logrus.FieldLogger) (ProducerConsumerReport, error) {
	if err := cfg.Validate(); err != nil {
		return ProducerConsumerReport{}, err
	}
	buf := NewBoundedBuffer(cfg.BufferSize, logger)
	total := cfg.Producers * cfg.ItemsPerProducer
	prodRNG := workerRNGs(cfg.Seed, cfg.Producers, syncSubsystem("producer"))
	consRNG := workerRNGs(cfg.Seed, cfg.Consumers, syncSubsystem("consumer"))

	var wg sync.WaitGroup
	producedSums := make([]int, cfg.Producers)
	consumedSums := make([]int, cfg.Consumers)

	for i := 0; i < cfg.Producers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rng := prodRNG[id]
			for n := 0; n < cfg.ItemsPerProducer; n++ {
				item := 1 + rng.Intn(100)
				buf.Produce(item, id)
				producedSums[id] += item
				jitter(rng, cfg.MaxDelay)
			}
		}(i)
	}
	for i := 0; i < cfg.Consumers; i++ {
		share := total / cfg.Consumers
		if i < total%cfg.Consumers {
			share++
		}
		wg.Add(1)
		go func(id, share int) {
			defer wg.Done()
			rng := consRNG[id]
			for n := 0; n < share; n++ {
				consumedSums[id] += buf.Consume(id)
				jitter(rng, cfg.MaxDelay)
			}
		}(i, share)
	}
	wg.Wait()

	report := ProducerConsumerReport{
		Produced:     buf.produced,
		Consumed:     buf.consumed,
		MaxOccupancy: buf.MaxOccupancy(),
		Capacity:     buf.Capacity(),
		Remaining:    buf.Len(),
	}
	for _, s := range producedSums {
		report.ProducedSum += s
	}
	for _, s := range consumedSums {
		report.ConsumedSum += s
	}
	buf.log.Infof("Producer-consumer finished: %d produced, %d consumed, peak occupancy %d/%d",
		report.Produced, report.Consumed, report.MaxOccupancy, report.Capacity)
	return report, nil
}
