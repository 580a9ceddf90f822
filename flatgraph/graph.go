package flatgraph

// DelayType classifies how an edge's data crosses tick/stratum boundaries
// (§2 Delay Types, §4.4). An edge with DelayNone can be fused into the same
// subgraph as its source; DelayStratum and DelayTick always force a handoff.
type DelayType int

const (
	DelayNone DelayType = iota
	DelayStratum
	DelayTick
)

func (d DelayType) String() string {
	switch d {
	case DelayStratum:
		return "stratum"
	case DelayTick:
		return "tick"
	default:
		return "none"
	}
}

// OperatorId identifies a node in a FlatGraph.
type OperatorId int

// Span is a human-readable source location used only for diagnostics;
// flatgraph has no source-text parser of its own (out of scope, §1), so
// callers supply whatever label they want attributed to a node or edge.
type Span string

// OperatorConstraints is the contract an operator must satisfy to be
// partitionable (§4.4). MaxInputs/MaxOutputs of -1 means unbounded
// (variadic), matching operators like union or tee whose arity is set by
// how many edges the surface syntax attaches.
type OperatorConstraints struct {
	MinInputs, MaxInputs   int
	MinOutputs, MaxOutputs int

	// IsExternalInput marks a lax, always-runnable source (§4.4 edge case):
	// the partitioner gives it its own subgraph and the runtime schedules it
	// every tick regardless of handoff state.
	IsExternalInput bool

	// DelayType reports the delay classification of the edge feeding input
	// port idx. A nil DelayType is equivalent to always returning DelayNone.
	DelayType func(idx int) DelayType
}

func (c OperatorConstraints) delayType(idx int) DelayType {
	if c.DelayType == nil {
		return DelayNone
	}
	return c.DelayType(idx)
}

// Node is one operator instance in the flat graph.
type Node struct {
	ID          OperatorId
	Name        string
	Constraints OperatorConstraints
	Span        Span
}

// EdgeEndpoint names a specific port of a specific node.
type EdgeEndpoint struct {
	Node OperatorId
	Port int
}

// Edge connects an output port of one node to an input port of another.
type Edge struct {
	Src  EdgeEndpoint
	Dst  EdgeEndpoint
	Span Span
}

// FlatGraph is the mutable operator-level graph the partitioner consumes.
// It carries no subgraph or stratum information yet; that's Partition's job.
type FlatGraph struct {
	nodes  []*Node
	edges  []Edge
	byNode map[OperatorId]*Node
}

// NewFlatGraph returns an empty graph ready for AddOperator/AddEdge calls.
func NewFlatGraph() *FlatGraph {
	return &FlatGraph{byNode: make(map[OperatorId]*Node)}
}

// AddOperator registers a node and returns its id.
func (g *FlatGraph) AddOperator(name string, c OperatorConstraints, span Span) OperatorId {
	id := OperatorId(len(g.nodes))
	n := &Node{ID: id, Name: name, Constraints: c, Span: span}
	g.nodes = append(g.nodes, n)
	g.byNode[id] = n
	return id
}

// AddEdge connects srcPort of src to dstPort of dst.
func (g *FlatGraph) AddEdge(src OperatorId, srcPort int, dst OperatorId, dstPort int, span Span) {
	g.edges = append(g.edges, Edge{
		Src:  EdgeEndpoint{Node: src, Port: srcPort},
		Dst:  EdgeEndpoint{Node: dst, Port: dstPort},
		Span: span,
	})
}

func (g *FlatGraph) node(id OperatorId) *Node { return g.byNode[id] }

func (g *FlatGraph) outEdges(id OperatorId) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Src.Node == id {
			out = append(out, e)
		}
	}
	return out
}

func (g *FlatGraph) inEdges(id OperatorId) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Dst.Node == id {
			out = append(out, e)
		}
	}
	return out
}
