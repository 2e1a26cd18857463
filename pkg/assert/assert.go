package assert

import "sync/atomic"

var initDepth atomic.Int32

// NotCircular guards singleton constructors against re-entrant
// initialization chains.
func NotCircular() {
	if initDepth.Add(1) > 128 {
		panic("assert: circular singleton initialization")
	}
	initDepth.Add(-1)
}

// NotNil panics when v is nil; used right after singleton construction.
func NotNil(v interface{}) {
	if v == nil {
		panic("assert: unexpected nil")
	}
}
