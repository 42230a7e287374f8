package kernel

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

// traceMessage is one JSON line streamed per dispatch in trace mode.
type traceMessage struct {
	Kernel    string `json:"kernel"`
	ElapsedNS int64  `json:"elapsed_ns"`
	Failed    bool   `json:"failed"`
}

// StreamTrace dials addr and installs a trace func on p that writes one
// JSON text message per recorded dispatch over the resulting connection,
// an opt-in alternative to polling Stats for live monitoring tools
// (SPEC_FULL.md's profiler trace sink). The returned closer should be
// called to stop streaming and close the connection.
func StreamTrace(p *Profiler, addr string) (closer func() error, err error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, err
	}
	p.SetTraceFunc(func(name string, elapsed time.Duration, failed bool) {
		msg := traceMessage{Kernel: name, ElapsedNS: elapsed.Nanoseconds(), Failed: failed}
		payload, err := json.Marshal(msg)
		if err != nil {
			return
		}
		conn.WriteMessage(websocket.TextMessage, payload)
	})
	return func() error {
		p.SetTraceFunc(nil)
		return conn.Close()
	}, nil
}
