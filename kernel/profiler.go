package kernel

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// sample is one recorded dispatch elapsed-time.
type sample struct {
	name    string
	elapsed time.Duration
	failed  bool
}

// Stat summarizes every recorded dispatch for one kernel name.
type Stat struct {
	Name    string        `toml:"name" yaml:"name"`
	Count   int           `toml:"count" yaml:"count"`
	Failed  int           `toml:"failed" yaml:"failed"`
	Total   time.Duration `toml:"total" yaml:"total"`
	Min     time.Duration `toml:"min" yaml:"min"`
	Max     time.Duration `toml:"max" yaml:"max"`
	Average time.Duration `toml:"average" yaml:"average"`
	Stddev  time.Duration `toml:"stddev" yaml:"stddev"`
}

// Profiler records per-dispatch elapsed time keyed by kernel name
// (SPEC_FULL.md's kernel.Profiler, grounded on the original's
// KernelProfiler). It is safe for concurrent use since dispatches across
// independently constructed kernels may run from different goroutines.
type Profiler struct {
	mu      sync.Mutex
	enabled bool
	samples []sample

	trace func(name string, elapsed time.Duration, failed bool)
}

// NewProfiler returns an enabled Profiler with empty history.
func NewProfiler() *Profiler {
	return &Profiler{enabled: true}
}

// Enable turns on sample recording.
func (p *Profiler) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = true
}

// Disable turns off sample recording; existing history is kept.
func (p *Profiler) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
}

// Clear discards all recorded history.
func (p *Profiler) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = nil
}

// SetTraceFunc installs a callback invoked for every recorded sample as it
// lands, in addition to the aggregate history — the hook profiler_stream.go
// uses to stream live samples over a websocket connection.
func (p *Profiler) SetTraceFunc(fn func(name string, elapsed time.Duration, failed bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trace = fn
}

// begin starts timing a dispatch named name and returns a func recording
// its outcome when called with the dispatch's resulting error (nil on
// success).
func (p *Profiler) begin(name string) func(error) {
	start := nowFunc()
	return func(err error) {
		p.mu.Lock()
		enabled := p.enabled
		trace := p.trace
		if enabled {
			p.samples = append(p.samples, sample{name: name, elapsed: nowFunc().Sub(start), failed: err != nil})
		}
		p.mu.Unlock()
		if enabled && trace != nil {
			trace(name, nowFunc().Sub(start), err != nil)
		}
	}
}

// nowFunc is a seam over time.Now so tests can substitute a deterministic
// clock without touching the recording logic.
var nowFunc = time.Now

// Query returns the aggregated Stat for one kernel name and whether any
// samples were recorded for it.
func (p *Profiler) Query(name string) (Stat, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, st := range p.statsLocked() {
		if st.Name == name {
			return st, true
		}
	}
	return Stat{}, false
}

// Stats returns the aggregated Stat for every kernel name with recorded
// history, ordered by first-seen name.
func (p *Profiler) Stats() []Stat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statsLocked()
}

func (p *Profiler) statsLocked() []Stat {
	order := []string{}
	acc := map[string]*Stat{}
	elapsedsByName := map[string][]time.Duration{}
	for _, s := range p.samples {
		st, ok := acc[s.name]
		if !ok {
			st = &Stat{Name: s.name, Min: s.elapsed, Max: s.elapsed}
			acc[s.name] = st
			order = append(order, s.name)
		}
		st.Count++
		if s.failed {
			st.Failed++
		}
		st.Total += s.elapsed
		if s.elapsed < st.Min {
			st.Min = s.elapsed
		}
		if s.elapsed > st.Max {
			st.Max = s.elapsed
		}
		elapsedsByName[s.name] = append(elapsedsByName[s.name], s.elapsed)
	}
	out := make([]Stat, 0, len(order))
	for _, name := range order {
		st := *acc[name]
		if st.Count > 0 {
			st.Average = st.Total / time.Duration(st.Count)
			st.Stddev = stddev(elapsedsByName[name], st.Average)
		}
		out = append(out, st)
	}
	return out
}

// stddev computes the population standard deviation of a set of elapsed
// times around mean, in float32 (matching the rest of this module's
// single-precision math surface) rather than promoting to float64.
func stddev(elapsed []time.Duration, mean time.Duration) time.Duration {
	if len(elapsed) == 0 {
		return 0
	}
	var sumSq float32
	for _, e := range elapsed {
		d := float32(e - mean)
		sumSq += d * d
	}
	return time.Duration(math32.Sqrt(sumSq / float32(len(elapsed))))
}

// Print writes a human-readable report to w (spec.md's "Print" summary
// operation).
func (p *Profiler) Print(w io.Writer) error {
	_, err := io.WriteString(w, p.WriteReport())
	return err
}

// WriteReport renders every kernel's aggregated Stat as plain text.
func (p *Profiler) WriteReport() string {
	var out string
	for _, st := range p.Stats() {
		out += fmt.Sprintf("%-24s count=%-6d failed=%-4d total=%-12s min=%-10s max=%-10s avg=%-10s stddev=%s\n",
			st.Name, st.Count, st.Failed, st.Total, st.Min, st.Max, st.Average, st.Stddev)
	}
	return out
}

// WriteTOML renders every kernel's aggregated Stat as TOML.
func (p *Profiler) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(struct {
		Kernels []Stat `toml:"kernels"`
	}{Kernels: p.Stats()})
}

// WriteYAML renders every kernel's aggregated Stat as YAML.
func (p *Profiler) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(struct {
		Kernels []Stat `yaml:"kernels"`
	}{Kernels: p.Stats()})
}
