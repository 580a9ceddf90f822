package flatgraph

import "fmt"

// Severity classifies a Diagnostic. Only SeverityError aborts partitioning;
// SeverityWarning is informational (§4.4: "the partitioner collects every
// diagnostic instead of stopping at the first error").
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic reports one partitioner finding, attributed to a Span.
type Diagnostic struct {
	Severity Severity
	Span     Span
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Span, d.Message)
}

func hasError(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks every node's actual connected port count against its
// declared arity constraints (§4.4). It never stops at the first problem:
// every node is checked and every violation is reported.
func (g *FlatGraph) Validate() []Diagnostic {
	var diags []Diagnostic
	for _, n := range g.nodes {
		inPorts := map[int]int{}
		for _, e := range g.inEdges(n.ID) {
			inPorts[e.Dst.Port]++
		}
		outPorts := map[int]int{}
		for _, e := range g.outEdges(n.ID) {
			outPorts[e.Src.Port]++
		}
		nIn := len(inPorts)
		nOut := len(outPorts)

		c := n.Constraints
		if nIn < c.MinInputs {
			diags = append(diags, Diagnostic{SeverityError, n.Span, fmt.Sprintf(
				"operator %q (%d) requires at least %d input(s), has %d", n.Name, n.ID, c.MinInputs, nIn)})
		}
		if c.MaxInputs >= 0 && nIn > c.MaxInputs {
			diags = append(diags, Diagnostic{SeverityError, n.Span, fmt.Sprintf(
				"operator %q (%d) accepts at most %d input(s), has %d", n.Name, n.ID, c.MaxInputs, nIn)})
		}
		if nOut < c.MinOutputs {
			diags = append(diags, Diagnostic{SeverityError, n.Span, fmt.Sprintf(
				"operator %q (%d) requires at least %d output(s), has %d", n.Name, n.ID, c.MinOutputs, nOut)})
		}
		if c.MaxOutputs >= 0 && nOut > c.MaxOutputs {
			diags = append(diags, Diagnostic{SeverityError, n.Span, fmt.Sprintf(
				"operator %q (%d) accepts at most %d output(s), has %d", n.Name, n.ID, c.MaxOutputs, nOut)})
		}
		for port, count := range inPorts {
			if count > 1 {
				diags = append(diags, Diagnostic{SeverityWarning, n.Span, fmt.Sprintf(
					"operator %q (%d) input port %d is fed by %d edges; only the first is used for arity purposes",
					n.Name, n.ID, port, count)})
			}
		}
	}
	return diags
}
