package dataflow

import (
	"context"

	"github.com/google/uuid"

	hflog "github.com/smallnest/hydroflow/log"
)

// Instance owns every handoff, subgraph, and state cell for one dataflow
// graph and drives its execution (§3, §4.6). It is not safe for concurrent
// use from more than one goroutine: handoffs and state cells rely on plain
// interior mutability, matching the single-threaded, cooperative scheduling
// model of §5.
type Instance struct {
	logger hflog.Logger
	runID  string

	handoffs   []*handoffEntry
	subgraphs  []*subgraphInfo
	maxStratum int

	state *StateRegistry

	tick             uint64
	stratum          int
	firstRunThisTick bool
	currentSubgraph  SubgraphId

	readyCur  [][]SubgraphId // per stratum, FIFO
	readyNext [][]SubgraphId

	waker *Waker

	traceHooks []TraceHook
}

type handoffEntry struct {
	id          HandoffId
	handoff     Handoff
	consumers   []SubgraphId
	tickDelayed bool
}

// New creates an empty Instance. A nil logger installs log.NoOpLogger so the
// scheduler is silent by default, matching library (not service) use.
func New(logger hflog.Logger) *Instance {
	if logger == nil {
		logger = &hflog.NoOpLogger{}
	}
	return &Instance{
		logger:           logger,
		runID:            uuid.NewString(),
		state:            newStateRegistry(),
		waker:            newWaker(),
		firstRunThisTick: true,
	}
}

// State exposes the instance's state registry for AddState/Access calls
// made outside of a running subgraph (e.g. while building the graph).
func (in *Instance) State() *StateRegistry { return in.state }

// RunID returns a unique identifier generated when the instance was
// created, useful for correlating log lines and trace events across
// multiple concurrently-running instances (§A.1 of the expanded spec).
func (in *Instance) RunID() string { return in.runID }

// Waker returns the instance's external waker (§4.2, §6).
func (in *Instance) Waker() *Waker { return in.waker }

func (in *Instance) growStrata(stratum int) {
	for len(in.readyCur) <= stratum {
		in.readyCur = append(in.readyCur, nil)
		in.readyNext = append(in.readyNext, nil)
	}
	if stratum > in.maxStratum {
		in.maxStratum = stratum
	}
}

// addHandoff registers a type-erased handoff and returns its id. Used by the
// generic AddVecHandoff/AddTeeingHandoff constructors below.
func (in *Instance) addHandoff(h Handoff, tickDelayed bool) HandoffId {
	id := HandoffId(len(in.handoffs))
	in.handoffs = append(in.handoffs, &handoffEntry{id: id, handoff: h, tickDelayed: tickDelayed})
	return id
}

func (in *Instance) handoffEntry(id HandoffId) *handoffEntry {
	if int(id) < 0 || int(id) >= len(in.handoffs) {
		faultf("handoff", "handoff id %d does not exist", id)
	}
	return in.handoffs[id]
}

// notifyNonEmpty implements the push-driven scheduling protocol of §4.1 and
// §4.6: every consumer subgraph of this handoff is enqueued, into the
// current tick if its stratum hasn't finished yet, otherwise into the next
// tick. Tick-delayed handoffs always defer their consumer to the next tick,
// since the data they just buffered isn't visible until the read/write swap
// at tick end.
func (in *Instance) notifyNonEmpty(id HandoffId) {
	entry := in.handoffEntry(id)
	for _, sgid := range entry.consumers {
		sg := in.subgraphInfo(sgid)
		if entry.tickDelayed {
			in.enqueueNextTick(sg)
			continue
		}
		if sg.stratum >= in.stratum {
			in.enqueueCurrentTick(sg)
		} else {
			in.enqueueNextTick(sg)
		}
	}
}

func (in *Instance) bindConsumer(id HandoffId, sgid SubgraphId) {
	entry := in.handoffEntry(id)
	entry.consumers = append(entry.consumers, sgid)
}

func (in *Instance) subgraphInfo(sgid SubgraphId) *subgraphInfo {
	if int(sgid) < 0 || int(sgid) >= len(in.subgraphs) {
		faultf("scheduler", "subgraph id %d does not exist", sgid)
	}
	return in.subgraphs[sgid]
}

// AddSubgraph registers a subgraph (§6). inputs/outputs are the HandoffIds
// it will read from / write to; stratum is its assigned phase (§3); lax
// marks an external-input subgraph the scheduler must poll even with empty
// inputs (§4.4 edge case).
func (in *Instance) AddSubgraph(name string, inputs, outputs []HandoffId, stratum int, lax bool, body SubgraphBody) SubgraphId {
	id := SubgraphId(len(in.subgraphs))
	sg := &subgraphInfo{
		id:      id,
		name:    name,
		inputs:  inputs,
		outputs: outputs,
		stratum: stratum,
		lax:     lax,
		body:    body,
	}
	in.subgraphs = append(in.subgraphs, sg)
	in.growStrata(stratum)
	for _, hid := range inputs {
		in.bindConsumer(hid, id)
	}
	// Data pushed into an input before this call does not enqueue the new
	// subgraph: lax subgraphs are enqueued at every tick start, all others
	// only by a push-time notification made after they are bound here.
	return id
}

func (in *Instance) enqueueCurrentTick(sg *subgraphInfo) {
	if sg.queuedCur {
		return
	}
	sg.queuedCur = true
	in.readyCur[sg.stratum] = append(in.readyCur[sg.stratum], sg.id)
}

func (in *Instance) enqueueNextTick(sg *subgraphInfo) {
	if sg.queuedNext {
		return
	}
	sg.queuedNext = true
	in.readyNext[sg.stratum] = append(in.readyNext[sg.stratum], sg.id)
}

// scheduleSubgraph implements Context.ScheduleSubgraph / §4.6's
// schedule_subgraph(sgid, strict) rule.
func (in *Instance) scheduleSubgraph(sgid SubgraphId, strict bool) {
	sg := in.subgraphInfo(sgid)
	if strict && sg.stratum >= in.stratum {
		in.enqueueCurrentTick(sg)
	} else {
		in.enqueueNextTick(sg)
	}
}

// tickStart runs state tick hooks and seeds the ready queues with every
// non-exhausted lax subgraph (§3, §4.6 step 1; §8 boundary behavior).
func (in *Instance) tickStart() {
	in.state.runTickHooks()
	for _, sg := range in.subgraphs {
		if sg.lax && !sg.exhausted {
			in.enqueueCurrentTick(sg)
		}
	}
	in.logger.Debug("[%s] tick %d starting", in.runID, in.tick)
	in.trace(TraceTickStart)
}

// runStratum drains stratum s's ready queue to completion, returning
// whether anything ran.
func (in *Instance) runStratum(s int) bool {
	ran := false
	in.stratum = s
	in.trace(TraceStratumStart)
	for len(in.readyCur[s]) > 0 {
		sgid := in.readyCur[s][0]
		in.readyCur[s] = in.readyCur[s][1:]
		sg := in.subgraphs[sgid]
		sg.queuedCur = false

		in.stratum = s
		in.currentSubgraph = sgid
		in.logger.Debug("dispatching subgraph %q (stratum %d, tick %d)", sg.name, s, in.tick)
		sg.body(&Context{in: in, sg: sg, reg: in.state})
		in.trace(TraceSubgraphRun)
		in.firstRunThisTick = false
		ran = true
	}
	in.trace(TraceStratumEnd)
	return ran
}

// runOneTick runs exactly one full tick: tick-start hooks, then strata
// 0..maxStratum in order, then the end-of-tick tick-delayed handoff
// advance. Returns whether any subgraph ran.
func (in *Instance) runOneTick() bool {
	in.stratum = 0
	in.tickStart()
	any := false
	for s := 0; s <= in.maxStratum; s++ {
		if in.runStratum(s) {
			any = true
		}
	}
	in.advanceTick()
	return any
}

func (in *Instance) advanceTick() {
	in.readyCur, in.readyNext = in.readyNext, in.readyCur
	for s := range in.readyNext {
		in.readyNext[s] = nil
	}
	for _, sg := range in.subgraphs {
		sg.queuedCur, sg.queuedNext = sg.queuedNext, false
	}
	for _, h := range in.handoffs {
		if adv, ok := h.handoff.(tickAdvancer); ok {
			adv.advanceTick()
		}
	}
	in.tick++
	in.firstRunThisTick = true
	in.logger.Info("[%s] tick %d complete", in.runID, in.tick-1)
	in.trace(TraceTickEnd)
}

// hasWork reports whether running another tick would do anything: either a
// stratum already has queued work, or a non-exhausted lax subgraph exists.
func (in *Instance) hasWork() bool {
	for _, q := range in.readyCur {
		if len(q) > 0 {
			return true
		}
	}
	for _, sg := range in.subgraphs {
		if sg.lax && !sg.exhausted {
			return true
		}
	}
	return false
}

// RunTick runs until exactly one tick completes (§6).
func (in *Instance) RunTick() error {
	if len(in.subgraphs) == 0 {
		return ErrNoSubgraphs
	}
	in.runOneTick()
	return nil
}

// RunAvailable runs ticks until no work remains, without blocking (§6).
func (in *Instance) RunAvailable() error {
	if len(in.subgraphs) == 0 {
		return ErrNoSubgraphs
	}
	for in.hasWork() {
		in.runOneTick()
	}
	return nil
}

// RunAsync runs forever, blocking on the external waker whenever a tick
// finds no work, until ctx is cancelled (§6).
func (in *Instance) RunAsync(ctx context.Context) error {
	if len(in.subgraphs) == 0 {
		return ErrNoSubgraphs
	}
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for in.hasWork() {
			in.runOneTick()
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		if err := in.waker.wait(ctx); err != nil {
			return err
		}
		// A wake means external data may have arrived: let every lax
		// subgraph be polled again from the next tick start.
		for _, sg := range in.subgraphs {
			if sg.lax {
				sg.exhausted = false
			}
		}
	}
}
