package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/os-sim/sim/memory"
	"github.com/inference-sim/os-sim/sim/workload"
)

var (
	replacementPolicy string // fifo, lru, optimal or all
	frames            int    // Resident frames
	references        []int  // Explicit reference string
	refLength         int    // Generated reference string length
	refPages          int    // Distinct pages in a generated reference string
	refSeed           int64  // Seed for a generated reference string
)

// replaceCmd runs page-replacement policies over a reference string
var replaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Count page faults of FIFO, LRU and Optimal replacement over a reference string",
	Run: func(cmd *cobra.Command, args []string) {
		refs := references
		if len(refs) == 0 {
			refs = workload.ReferenceString(refSeed, refLength, refPages)
			logrus.Infof("Generated %d references over %d pages (seed %d)", refLength, refPages, refSeed)
		}

		var policies []string
		if replacementPolicy == "all" {
			for name := range memory.ValidReplacementPolicies {
				policies = append(policies, name)
			}
			sort.Strings(policies)
		} else {
			if !memory.IsValidReplacementPolicy(replacementPolicy) {
				logrus.Fatalf("Unknown replacement policy %q; valid: fifo, lru, optimal, all", replacementPolicy)
			}
			policies = []string{replacementPolicy}
		}

		results := make([]memory.ReplacementResult, 0, len(policies))
		for _, name := range policies {
			results = append(results, memory.NewReplacementPolicy(name).Run(refs, frames))
		}
		fmt.Fprintf(os.Stdout, "References (%d) with %d frames: %v\n", len(refs), frames, refs)
		printReplacementTable(os.Stdout, results)
	},
}

func init() {
	replaceCmd.Flags().StringVar(&replacementPolicy, "policy", "all", "Replacement policy: fifo, lru, optimal, all")
	replaceCmd.Flags().IntVar(&frames, "frames", 3, "Number of resident frames")
	replaceCmd.Flags().IntSliceVar(&references, "refs", nil, "Comma-separated reference string (generated when empty)")
	replaceCmd.Flags().IntVar(&refLength, "length", 20, "Length of a generated reference string")
	replaceCmd.Flags().IntVar(&refPages, "pages", 8, "Distinct pages in a generated reference string")
	replaceCmd.Flags().Int64Var(&refSeed, "seed", 42, "Seed for a generated reference string")

	rootCmd.AddCommand(replaceCmd)
}
