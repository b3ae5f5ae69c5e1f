// Package preset loads named toast presets (priority, timings, animation and
// placement) from YAML, so callers can ask for "warning" instead of spelling
// out every field. A presets file looks like:
//
//	default: info
//	presets:
//	  info:
//	    priority: 50
//	    display: 3s
//	    transition: 300ms
//	    animated: true
//	    placement: top
//
// Defaults returns the built-in set compiled into the binary. A Registry
// serves a set that can be swapped at runtime, and Watch reloads it whenever
// the presets file changes.
package preset
