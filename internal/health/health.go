// Package health builds the /healthz payload: liveness plus a few process
// stats so a glance at the endpoint shows whether the server is degrading.
package health

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

type Status struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
	Tenants       int     `json:"tenants"`
	Clients       int     `json:"clients"`
	Goroutines    int     `json:"goroutines"`
	RSSBytes      uint64  `json:"rssBytes,omitempty"`
	CPUPercent    float64 `json:"cpuPercent,omitempty"`
}

// Reporter samples process stats via gopsutil. Stat failures degrade to
// zero values rather than failing the endpoint.
type Reporter struct {
	started time.Time
	proc    *process.Process
}

func NewReporter() *Reporter {
	r := &Reporter{started: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		r.proc = p
	}
	return r
}

func (r *Reporter) Report(tenants, clients int) Status {
	st := Status{
		Status:        "ok",
		UptimeSeconds: time.Since(r.started).Seconds(),
		Tenants:       tenants,
		Clients:       clients,
		Goroutines:    runtime.NumGoroutine(),
	}
	if r.proc != nil {
		if mem, err := r.proc.MemoryInfo(); err == nil && mem != nil {
			st.RSSBytes = mem.RSS
		}
		if cpu, err := r.proc.CPUPercent(); err == nil {
			st.CPUPercent = cpu
		}
	}
	return st
}
