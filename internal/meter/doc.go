// Package meter implements the per-CPU meters of the dashboard.
//
// # Meters
//
//	UnitMeter - one CPU (or the "Avg" meter for unit 0)
//	Group     - one UnitMeter per CPU in a subset, drawn as a grid
//
// A Group is configured by a Variant: the subset of CPUs it covers (all,
// first half, second half) and the number of columns (1, 2, 4 or 8).
// Variants are data; there is one Group type for all of them.
//
// # Refresh cycle
//
// The dashboard drives every meter from a single goroutine:
//
//  1. Init once: the group computes its CPU range and fills its Pool
//  2. UpdateValues each tick: every child pulls a SampleSet from the Provider
//  3. SetMode when the mode changes: the group recomputes its height
//  4. Draw each tick: children are placed column-major on a Canvas
//
// Nothing in this package locks; meters must not be shared between
// goroutines.
//
// # Pool size
//
// A group's pool is sized the first time Init runs and never changes. If
// the platform later reports a different CPU count the group keeps drawing
// the CPUs it was built with and logs a single warning.
//
// # Text states
//
// Units past the number of existing CPUs read "absent". Units whose usage
// cannot be sampled read "offline". Missing frequency or temperature
// readings print "N/A". None of these are errors.
package meter
