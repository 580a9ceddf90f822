package dataflow

// TraceEvent identifies what kind of scheduler event a TraceHook is being
// notified about (grounded on graph/tracing.go's TraceEvent enum, adapted
// from chain/node lifecycle events to tick/stratum/subgraph ones).
type TraceEvent string

const (
	TraceTickStart    TraceEvent = "tick_start"
	TraceTickEnd      TraceEvent = "tick_end"
	TraceStratumStart TraceEvent = "stratum_start"
	TraceStratumEnd   TraceEvent = "stratum_end"
	TraceSubgraphRun  TraceEvent = "subgraph_run"
)

// TraceHook receives scheduler lifecycle notifications. It must not call
// back into the Instance (RunTick/RunAvailable/ScheduleSubgraph) — it is
// invoked synchronously from inside the scheduling loop.
type TraceHook interface {
	OnEvent(event TraceEvent, tick uint64, stratum int, subgraph SubgraphId)
}

// TraceHookFunc adapts a function to TraceHook.
type TraceHookFunc func(event TraceEvent, tick uint64, stratum int, subgraph SubgraphId)

func (f TraceHookFunc) OnEvent(event TraceEvent, tick uint64, stratum int, subgraph SubgraphId) {
	f(event, tick, stratum, subgraph)
}

// AddTraceHook registers a hook notified of every tick/stratum/subgraph
// transition. Intended for observability tooling built outside this module
// (the core itself never depends on the hooks it fires).
func (in *Instance) AddTraceHook(hook TraceHook) {
	in.traceHooks = append(in.traceHooks, hook)
}

func (in *Instance) trace(event TraceEvent) {
	for _, h := range in.traceHooks {
		h.OnEvent(event, in.tick, in.stratum, in.currentSubgraph)
	}
}
