package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/memory"
)

// MemoryManager is the allocation surface the Kernel needs at admission and reset.
// Allocation is all-or-nothing; a false return is an admission failure.
type MemoryManager interface {
	Allocate(pid int, bytes int64) bool
	Deallocate(pid int)
	Reset()
}

// MemoryConfig selects and sizes the Kernel's memory manager.
type MemoryConfig struct {
	Model       string `yaml:"model" json:"model"` // "paging" (default) or "segmentation"
	TotalMemory int64  `yaml:"total_memory,omitempty" json:"total_memory,omitempty"`
	FrameSize   int64  `yaml:"frame_size,omitempty" json:"frame_size,omitempty"` // paging only
}

// ValidMemoryModels is the set of recognized memory model names.
// Empty string defaults to paging.
var ValidMemoryModels = map[string]bool{"": true, "paging": true, "segmentation": true}

// IsValidMemoryModel returns true if name is a recognized memory model.
func IsValidMemoryModel(name string) bool {
	return ValidMemoryModels[name]
}

// NewMemoryManager creates the configured memory manager.
// Non-positive sizes fall back to memory.DefaultTotalMemory and memory.DefaultFrameSize.
// Panics on unrecognized models; callers validate with IsValidMemoryModel first.
func NewMemoryManager(cfg MemoryConfig, logger logrus.FieldLogger) MemoryManager {
	switch cfg.Model {
	case "", "paging":
		return memory.NewPaging(cfg.TotalMemory, cfg.FrameSize, logger)
	case "segmentation":
		return memory.NewSegmentation(cfg.TotalMemory, logger)
	default:
		panic(fmt.Sprintf("unknown memory model %q", cfg.Model))
	}
}
