//go:build !debug

package debug

// Enabled is false in a release build.
const Enabled = false

func Log(string, ...any)        {}
func Assert(bool, string, ...any) {}
