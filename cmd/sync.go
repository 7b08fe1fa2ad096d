package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/os-sim/sim/concurrency"
)

var (
	syncDemo     string        // producer-consumer, philosophers or pool
	syncSeed     int64         // Seed for the demo's pauses
	syncMaxDelay time.Duration // Upper bound of each random pause
	bufferSize   int           // producer-consumer
	producers    int           // producer-consumer
	consumers    int           // producer-consumer
	itemsEach    int           // producer-consumer: items per producer
	philosophers int           // philosophers
	meals        int           // philosophers: meals each
	permits      int           // pool
	workers      int           // pool
	jobsEach     int           // pool: jobs per worker
)

// syncCmd runs one of the semaphore-based synchronization demos
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a synchronization demo: producer-consumer, philosophers or pool",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logrus.StandardLogger()
		out := os.Stdout
		switch syncDemo {
		case "producer-consumer":
			report, err := concurrency.RunProducerConsumer(concurrency.ProducerConsumerConfig{
				BufferSize:       bufferSize,
				Producers:        producers,
				Consumers:        consumers,
				ItemsPerProducer: itemsEach,
				Seed:             syncSeed,
				MaxDelay:         syncMaxDelay,
			}, logger)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fmt.Fprintf(out, "Produced %d (sum %d), consumed %d (sum %d), peak occupancy %d/%d, left in buffer %d\n",
				report.Produced, report.ProducedSum, report.Consumed, report.ConsumedSum,
				report.MaxOccupancy, report.Capacity, report.Remaining)
		case "philosophers":
			report, err := concurrency.RunDiningPhilosophers(concurrency.DiningConfig{
				Philosophers: philosophers,
				Meals:        meals,
				Seed:         syncSeed,
				MaxDelay:     syncMaxDelay,
			}, logger)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fmt.Fprintf(out, "Meals eaten: %v, at most %d eating at once\n", report.MealsEaten, report.MaxConcurrent)
		case "pool":
			report, err := concurrency.RunResourcePool(concurrency.PoolConfig{
				Permits:       permits,
				Workers:       workers,
				JobsPerWorker: jobsEach,
				Seed:          syncSeed,
				MaxDelay:      syncMaxDelay,
			}, logger)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fmt.Fprintf(out, "Ran %d jobs on %d permits, at most %d holders at once\n", report.Jobs, report.Permits, report.MaxHolders)
		default:
			logrus.Fatalf("Unknown demo %q; valid: producer-consumer, philosophers, pool", syncDemo)
		}
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncDemo, "demo", "producer-consumer", "Demo: producer-consumer, philosophers, pool")
	syncCmd.Flags().Int64Var(&syncSeed, "seed", 42, "Seed for random pauses")
	syncCmd.Flags().DurationVar(&syncMaxDelay, "max-delay", 5*time.Millisecond, "Upper bound of each random pause (0 disables)")
	syncCmd.Flags().IntVar(&bufferSize, "buffer-size", 5, "Bounded buffer capacity")
	syncCmd.Flags().IntVar(&producers, "producers", 2, "Number of producers")
	syncCmd.Flags().IntVar(&consumers, "consumers", 2, "Number of consumers")
	syncCmd.Flags().IntVar(&itemsEach, "items", 10, "Items per producer")
	syncCmd.Flags().IntVar(&philosophers, "philosophers", 5, "Number of philosophers")
	syncCmd.Flags().IntVar(&meals, "meals", 3, "Meals per philosopher")
	syncCmd.Flags().IntVar(&permits, "permits", 3, "Pool permits")
	syncCmd.Flags().IntVar(&workers, "workers", 6, "Pool workers")
	syncCmd.Flags().IntVar(&jobsEach, "jobs", 4, "Jobs per pool worker")

	rootCmd.AddCommand(syncCmd)
}
