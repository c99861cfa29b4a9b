package proctop

import (
	"sort"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcInfo is one row of the process table.
type ProcInfo struct {
	PID     int32
	User    string
	CPU     float64
	Mem     float64
	Command string
}

// Collect lists the busiest processes, sorted by CPU share descending,
// capped at maxRows. Per-process read errors skip that process only.
func Collect() []ProcInfo {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}

	infos := make([]ProcInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}

		info := ProcInfo{PID: p.Pid, Command: name}
		if user, err := p.Username(); err == nil {
			info.User = user
		}
		if cpu, err := p.CPUPercent(); err == nil {
			info.CPU = cpu
		}
		if mem, err := p.MemoryPercent(); err == nil {
			info.Mem = float64(mem)
		}
		if cmdline, err := p.Cmdline(); err == nil && cmdline != "" {
			info.Command = cmdline
		}
		infos = append(infos, info)
	}

	return TopByCPU(infos, maxRows)
}

// TopByCPU sorts by CPU descending (PID ascending on ties, so repeated
// renders are stable) and truncates to n entries.
func TopByCPU(infos []ProcInfo, n int) []ProcInfo {
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CPU != infos[j].CPU {
			return infos[i].CPU > infos[j].CPU
		}
		return infos[i].PID < infos[j].PID
	})
	if len(infos) > n {
		infos = infos[:n]
	}
	return infos
}
