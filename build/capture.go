package build

// ScopedCapture rebinds the Builder to a fresh CollectContext for a
// closure's lifetime and restores the previous context on exit, including
// exceptional exits (a panicking body still restores the parent binding).
// It is not copyable in spirit — callers should construct and Close it in
// the same function via defer, never store it.
type ScopedCapture struct {
	collect  *CollectContext
	previous Context
}

// BeginCapture parses no input; it binds a new CollectContext whose parent
// is the context currently active, and returns both the guard (to Close)
// and the collector (to read Collected() from once the body has run).
func BeginCapture() (*ScopedCapture, *CollectContext) {
	parent := MustCurrent()
	collect := NewCollectContext()
	collect.SetParent(parent)
	sc := &ScopedCapture{collect: collect, previous: parent}
	Bind(collect)
	return sc, collect
}

// Close restores the Builder to the context active before BeginCapture.
func (sc *ScopedCapture) Close() {
	Bind(sc.previous)
}

// Capture runs body with the Builder diverted into a fresh CollectContext
// and returns the statement lines it collected. If body panics, the panic
// propagates and nothing is returned; the previous binding is still
// restored.
func Capture(body func()) (lines []string) {
	sc, collect := BeginCapture()
	defer sc.Close()
	body()
	return collect.Collected()
}
