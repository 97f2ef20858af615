package track

import (
	"fmt"
	"runtime"
)

const maxOriginDepth = 16

// captureOrigin records the caller PCs at acquisition time. skip counts
// frames above the tracking call itself.
func captureOrigin(skip int) []uintptr {
	pcs := make([]uintptr, maxOriginDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	return pcs[:n]
}

// formatOrigin resolves captured PCs into human-readable frames, one
// string per frame.
func formatOrigin(pcs []uintptr) []string {
	if len(pcs) == 0 {
		return nil
	}

	var out []string
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		out = append(out, fmt.Sprintf("%s\n\t%s:%d", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return out
}
