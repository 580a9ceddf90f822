package codegen

import (
	"fmt"

	"github.com/smallnest/hydroflow/dataflow"
	"github.com/smallnest/hydroflow/flatgraph"
)

// Stage is one operator's contribution to a fused subgraph body (§4.5's
// write-context contract, translated to closures — see doc.go).
type Stage struct {
	// Prologue runs exactly once, when Build assembles this node's
	// subgraph, before any tick. Typically used to seed state cells.
	Prologue func(reg *dataflow.StateRegistry)

	// Iterator runs on every invocation of the fused subgraph body, in
	// the node's position within the pull-prefix/push-suffix order.
	Iterator func(ctx *dataflow.Context)

	// IteratorAfter runs after every node's Iterator has run in this
	// invocation, e.g. to self-schedule via ctx.ScheduleSubgraph.
	IteratorAfter func(ctx *dataflow.Context)
}

// HandoffBinding maps a flatgraph handoff index to the concrete
// dataflow.HandoffId the caller already created (with the right item type
// and tick-delayed-ness) for it.
type HandoffBinding map[int]dataflow.HandoffId

// Build fuses pg's subgraphs into the instance: each PartitionedSubgraph
// becomes one dataflow.AddSubgraph call whose body runs every member
// node's Iterator in order, then every member node's IteratorAfter.
// stages must have an entry for every node flatgraph placed in pg; binding
// must have an entry for every handoff pg produced.
func Build(in *dataflow.Instance, pg *flatgraph.PartitionedGraph, stages map[flatgraph.OperatorId]Stage, binding HandoffBinding) error {
	for _, sg := range pg.Subgraphs {
		for _, nodeID := range sg.Nodes {
			st, ok := stages[nodeID]
			if !ok {
				return fmt.Errorf("codegen: no stage registered for operator %d", nodeID)
			}
			if st.Prologue != nil {
				st.Prologue(in.State())
			}
		}
	}

	for _, sg := range pg.Subgraphs {
		name := subgraphName(sg)
		inputs, err := resolveHandoffs(sg.Inputs, binding)
		if err != nil {
			return err
		}
		outputs, err := resolveHandoffs(sg.Outputs, binding)
		if err != nil {
			return err
		}

		nodes := append([]flatgraph.OperatorId(nil), sg.Nodes...)
		body := func(ctx *dataflow.Context) {
			for _, nodeID := range nodes {
				stages[nodeID].Iterator(ctx)
			}
			for _, nodeID := range nodes {
				if after := stages[nodeID].IteratorAfter; after != nil {
					after(ctx)
				}
			}
		}
		in.AddSubgraph(name, inputs, outputs, sg.Stratum, sg.Lax, body)
	}
	return nil
}

func resolveHandoffs(idxs []int, binding HandoffBinding) ([]dataflow.HandoffId, error) {
	out := make([]dataflow.HandoffId, 0, len(idxs))
	for _, idx := range idxs {
		hid, ok := binding[idx]
		if !ok {
			return nil, fmt.Errorf("codegen: no handoff binding for partitioner handoff %d", idx)
		}
		out = append(out, hid)
	}
	return out, nil
}

func subgraphName(sg *flatgraph.PartitionedSubgraph) string {
	return fmt.Sprintf("sg_%d", sg.ID)
}
