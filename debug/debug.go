// Package debug holds diagnostics toggles read from the environment once at
// startup.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Load   bool
	Refs   bool
	Encode bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("BRIDGE_DEBUG_LOAD")
	d.Refs = boolEnv("BRIDGE_DEBUG_REFS")
	d.Encode = boolEnv("BRIDGE_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Load reports whether every node visited by the cross-context loader is
// logged.
func Load() bool {
	return d.Load
}

// Refs reports whether global reference creation and deletion is logged.
func Refs() bool {
	return d.Refs
}

// Encode reports whether encoded buffer sizes are logged.
func Encode() bool {
	return d.Encode
}
