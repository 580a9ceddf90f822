// Package log provides a simple, leveled logging interface for the
// Hydroflow-Go scheduler.
//
// The scheduler logs tick start, tick completion, and subgraph dispatch
// through the Logger interface here; it does not log stratum changes or
// idle waits, and the partitioner does not log its diagnostics. By default
// an Instance uses NoOpLogger so library embedding stays quiet.
//
// # Log Levels
//
// Five levels, in order of increasing severity:
//
//   - LogLevelDebug: tick start and per-subgraph dispatch detail
//   - LogLevelInfo: tick completion
//   - LogLevelWarn: warnings (not used by the scheduler)
//   - LogLevelError: errors (not used by the scheduler)
//   - LogLevelNone: disables all logging output
//
// # Example Usage
//
//	logger := log.NewDefaultLogger(log.LogLevelInfo)
//	logger.Info("tick %d starting", tick)
//	logger.Debug("dispatching subgraph %v in stratum %d", sgid, stratum)
//
// # golog Integration
//
// For callers who prefer github.com/kataras/golog, NewGologLogger wraps an
// existing *golog.Logger behind the same Logger interface:
//
//	glogger := golog.New()
//	logger := log.NewGologLogger(glogger)
//	logger.SetLevel(log.LogLevelDebug)
//
// # Thread Safety
//
// DefaultLogger is safe for concurrent use; the underlying standard-library
// log.Logger handles synchronization. An Instance (package dataflow) is
// itself single-threaded, so thread safety here only matters when one
// Logger is shared across several Instances running on separate goroutines.
package log
