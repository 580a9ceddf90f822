package dataflow

// SubgraphId is an opaque dense identifier for a subgraph (§3).
type SubgraphId int

// HandoffId is an opaque dense identifier for a handoff (§3).
type HandoffId int

// SubgraphBody is the closure a subgraph compiles down to: on each
// invocation it pulls from whatever input handoffs it closed over, does its
// work, and pushes to whatever output handoffs it closed over (§4.3). It
// receives the runtime Context for tick/stratum queries and self-scheduling.
type SubgraphBody func(ctx *Context)

type subgraphInfo struct {
	id         SubgraphId
	name       string
	inputs     []HandoffId
	outputs    []HandoffId
	stratum    int
	lax        bool
	body       SubgraphBody
	exhausted  bool // lax subgraphs only: set via Context.MarkExhausted
	queuedCur  bool // idempotent-enqueue flag for the current tick's ready set
	queuedNext bool // idempotent-enqueue flag for the next tick's ready set
}

// Context is the runtime surface a subgraph body (and, transitively, an
// operator's generated code) is handed on every invocation (§4.2, §6).
type Context struct {
	in  *Instance
	sg  *subgraphInfo
	reg *StateRegistry
}

// CurrentTick returns the tick currently executing.
func (c *Context) CurrentTick() uint64 { return c.in.tick }

// CurrentStratum returns the stratum currently executing.
func (c *Context) CurrentStratum() uint32 { return uint32(c.in.stratum) }

// CurrentSubgraph returns the id of the subgraph this Context was handed to.
func (c *Context) CurrentSubgraph() SubgraphId { return c.sg.id }

// IsFirstRunThisTick reports whether this is the first subgraph invocation
// of the current tick (i.e. tick-start hooks have just run).
func (c *Context) IsFirstRunThisTick() bool { return c.in.firstRunThisTick }

// State returns the state registry backing AddState/Access calls.
func (c *Context) State() *StateRegistry { return c.reg }

// ScheduleSubgraph requests that sgid run again. strict=true asks for the
// current tick if sgid's stratum has not yet finished; otherwise (or if
// strict is false) the request is deferred to the next tick (§4.3, §4.6).
func (c *Context) ScheduleSubgraph(sgid SubgraphId, strict bool) {
	c.in.scheduleSubgraph(sgid, strict)
}

// MarkExhausted tells the scheduler that this lax (external-input) subgraph
// has no more data to pull right now; it will not be auto-enqueued at the
// next tick start until the instance's Waker wakes a RunAsync loop to signal
// new external data (§8 boundary behavior).
func (c *Context) MarkExhausted() { c.sg.exhausted = true }

// Waker returns the instance's external waker, for source/sink adapters
// bridging async I/O into the scheduler (§4.2, §5, extio package).
func (c *Context) Waker() *Waker { return c.in.waker }
