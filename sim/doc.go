// Package sim provides the deterministic engine of the OS simulator.
//
// # Reading Guide
//
// Start with these files to understand a run:
//   - process.go: Process lifecycle (NEW → READY → RUNNING → TERMINATED) and metrics fields
//   - scheduler.go: the Scheduler strategy and the FCFS, Round Robin, Priority and SJF variants
//   - kernel.go: admission through the memory manager and the dispatch loop that inserts
//     idle gaps and context-switch segments into a scheduler's raw timeline
//
// # Architecture
//
// The sim package defines the Kernel and its collaborators; sibling packages hold
// components that run independently of it:
//   - sim/memory/: paging and segmentation managers, page-replacement policies
//   - sim/deadlock/: Banker's Algorithm and wait-for graph detection
//   - sim/concurrency/: counting semaphore and the synchronization demos built on it
//   - sim/workload/: YAML workload specs and seeded synthetic workloads
//   - sim/trace/: admission and context-switch decision records
//   - sim/recording/: SQLite recording of comparison rows and timelines
//
// # Key Interfaces
//
//   - Scheduler: turns a process set into a raw timeline
//   - MemoryManager: all-or-nothing allocation at admission
//
// Everything in the deterministic core is single-threaded. A Kernel must not be
// shared between goroutines without external serialization.
package sim
