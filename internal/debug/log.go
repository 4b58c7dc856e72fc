//go:build debug

// Package debug provides debug-build-only logging and assertions, compiled
// out entirely (to a zero-cost no-op) unless built with -tags debug.
// Grounded on the pack's flier-goutil/internal/debug build-tag-split
// pattern (debug.go / nodbg.go), simplified to stdlib only: the original's
// goroutine-ID tagging (github.com/timandy/routine) and flag-based log
// filtering (its own internal/xflag) pull in machinery this module has no
// other use for, so the stdlib substitute here is a deliberate scope cut,
// not an oversight - see DESIGN.md.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Enabled is true when built with -tags debug.
const Enabled = true

// Log prints a debug trace line to stderr, tagged with the caller's file
// and line.
func Log(format string, args ...any) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "???", 0
	}
	prefix := fmt.Sprintf("phtree %s:%d: ", filepath.Base(file), line)
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}

// Assert panics if cond is false. Only compiled in debug builds, so it must
// never guard behavior a release build depends on.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("phtree: assertion failed: "+format, args...))
	}
}
