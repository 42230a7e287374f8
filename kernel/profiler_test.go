package kernel

import (
	"strings"
	"testing"
	"time"
)

func withFakeClock(t *testing.T, times []time.Time) {
	t.Helper()
	i := 0
	prev := nowFunc
	nowFunc = func() time.Time {
		tm := times[i]
		if i < len(times)-1 {
			i++
		}
		return tm
	}
	t.Cleanup(func() { nowFunc = prev })
}

func TestProfilerBeginRecordsElapsedAndOutcome(t *testing.T) {
	base := time.Unix(0, 0)
	withFakeClock(t, []time.Time{base, base.Add(10 * time.Millisecond), base.Add(10 * time.Millisecond), base.Add(25 * time.Millisecond)})

	p := NewProfiler()
	finish := p.begin("step")
	finish(nil)
	finish2 := p.begin("step")
	finish2(errString("dispatch failed"))

	st, ok := p.Query("step")
	if !ok {
		t.Fatal("Query(\"step\") reported no samples")
	}
	if st.Count != 2 {
		t.Errorf("Count = %d, want 2", st.Count)
	}
	if st.Failed != 1 {
		t.Errorf("Failed = %d, want 1", st.Failed)
	}
	if st.Min != 10*time.Millisecond {
		t.Errorf("Min = %v, want 10ms", st.Min)
	}
	if st.Max != 15*time.Millisecond {
		t.Errorf("Max = %v, want 15ms", st.Max)
	}
}

func TestProfilerDisableStopsRecording(t *testing.T) {
	base := time.Unix(0, 0)
	withFakeClock(t, []time.Time{base, base.Add(time.Millisecond)})

	p := NewProfiler()
	p.Disable()
	finish := p.begin("ignored")
	finish(nil)

	if _, ok := p.Query("ignored"); ok {
		t.Error("a sample was recorded while the profiler was disabled")
	}
}

func TestProfilerClearDiscardsHistory(t *testing.T) {
	base := time.Unix(0, 0)
	withFakeClock(t, []time.Time{base, base.Add(time.Millisecond)})

	p := NewProfiler()
	finish := p.begin("x")
	finish(nil)
	p.Clear()

	if _, ok := p.Query("x"); ok {
		t.Error("Clear did not discard recorded history")
	}
}

func TestProfilerSetTraceFuncFiresPerSample(t *testing.T) {
	base := time.Unix(0, 0)
	withFakeClock(t, []time.Time{base, base.Add(time.Millisecond), base.Add(time.Millisecond)})

	p := NewProfiler()
	var gotName string
	var gotFailed bool
	p.SetTraceFunc(func(name string, elapsed time.Duration, failed bool) {
		gotName, gotFailed = name, failed
	})
	finish := p.begin("traced")
	finish(errString("boom"))

	if gotName != "traced" || !gotFailed {
		t.Errorf("trace callback got name=%q failed=%v, want name=traced failed=true", gotName, gotFailed)
	}
}

func TestProfilerWriteReportIncludesEachKernel(t *testing.T) {
	base := time.Unix(0, 0)
	withFakeClock(t, []time.Time{base, base.Add(time.Millisecond)})

	p := NewProfiler()
	finish := p.begin("renderPass")
	finish(nil)

	out := p.WriteReport()
	if !strings.Contains(out, "renderPass") {
		t.Errorf("WriteReport() = %q, missing kernel name", out)
	}
	if !strings.Contains(out, "count=1") {
		t.Errorf("WriteReport() = %q, missing count", out)
	}
}

func TestProfilerWriteTOMLAndYAMLRoundTripKernelNames(t *testing.T) {
	base := time.Unix(0, 0)
	withFakeClock(t, []time.Time{base, base.Add(time.Millisecond)})

	p := NewProfiler()
	finish := p.begin("upload")
	finish(nil)

	var tomlOut, yamlOut strings.Builder
	if err := p.WriteTOML(&tomlOut); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	if err := p.WriteYAML(&yamlOut); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if !strings.Contains(tomlOut.String(), "upload") {
		t.Errorf("WriteTOML output missing kernel name: %q", tomlOut.String())
	}
	if !strings.Contains(yamlOut.String(), "upload") {
		t.Errorf("WriteYAML output missing kernel name: %q", yamlOut.String())
	}
}
