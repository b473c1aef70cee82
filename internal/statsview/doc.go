// Package statsview serves live runtime charts (heap, goroutines, GC pauses)
// while cpurunner works through long ROM batches. The server is compiled in
// only with the statsview build tag; otherwise Launch prints a hint and
// Available reports false.
//
// With the tag, charts are at http://localhost:18066/debug/statsview and
// the pprof handlers at http://localhost:18066/debug/pprof/.
package statsview
