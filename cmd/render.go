package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/os-sim/sim"
	"github.com/inference-sim/os-sim/sim/deadlock"
	"github.com/inference-sim/os-sim/sim/memory"
)

func printTimeline(w io.Writer, tl sim.Timeline) {
	parts := make([]string, 0, len(tl))
	for _, seg := range tl {
		parts = append(parts, seg.String())
	}
	fmt.Fprintf(w, "Timeline: %s\n", strings.Join(parts, " "))
}

func printProcessTable(w io.Writer, procs []*sim.Process) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Name", "Arrival", "Burst", "Priority", "Memory", "State", "Completion", "Turnaround", "Waiting"})
	for _, p := range procs {
		table.Append([]string{
			strconv.Itoa(p.PID),
			p.Name,
			strconv.FormatInt(p.ArrivalTime, 10),
			strconv.FormatInt(p.BurstTime, 10),
			strconv.Itoa(p.Priority),
			strconv.FormatInt(p.MemoryRequired, 10),
			string(p.State),
			strconv.FormatInt(p.CompletionTime, 10),
			strconv.FormatInt(p.TurnaroundTime, 10),
			strconv.FormatInt(p.WaitingTime, 10),
		})
	}
	table.Render()
}

func printBankerMatrices(w io.Writer, m deadlock.Matrices, pids []int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Allocation", "Max", "Need"})
	for _, pid := range pids {
		table.Append([]string{strconv.Itoa(pid), fmt.Sprint(m.Allocation[pid]), fmt.Sprint(m.Max[pid]), fmt.Sprint(m.Need[pid])})
	}
	table.SetFooter([]string{"Available", fmt.Sprint(m.Available), "Total", fmt.Sprint(m.Total)})
	table.Render()
}

func printReplacementTable(w io.Writer, results []memory.ReplacementResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Faults", "Hits", "Fault Ratio"})
	for _, r := range results {
		table.Append([]string{r.Policy, strconv.Itoa(r.PageFaults), strconv.Itoa(r.PageHits), strconv.FormatFloat(r.FaultRatio, 'f', 3, 64)})
	}
	table.Render()
}
