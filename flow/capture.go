// Package flow provides the statement-level control-flow authoring
// surface (if/elif/else, for, while, do-while, break/continue/return) that
// drives ir.Node construction for branch and loop bodies, each captured
// from a host-language closure via build.Capture.
package flow

import (
	"strings"

	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/ir"
)

// captureBody runs body with emission diverted into a fresh collector
// context and returns its statements as a single spliced Raw node — one
// node rather than one per statement, since the statements were already
// fully lowered to text by the collector and re-parsing them into IR would
// be redundant work with no typed-value benefit.
func captureBody(body func()) []ir.Node {
	lines := build.Capture(body)
	if len(lines) == 0 {
		return nil
	}
	return []ir.Node{&ir.Raw{Text: strings.Join(lines, "")}}
}
