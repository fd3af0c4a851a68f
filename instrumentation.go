package cutgen

import (
	"fmt"
	"io"
)

// EngineMiddleware is the optional instrumentation hook a CutEngine calls
// around each pipeline stage. It plays the same role the host's
// BnbMiddleware plays around branch-and-bound decisions: a zero-cost no-op
// by default, with an instrumented implementation available for
// debugging. This is the concrete form of the disabled checkNumerics
// design note — present and observable in tests, inert in production use.
type EngineMiddleware interface {
	BeforeStage(stage string)
	AfterStage(stage string, ok bool)
}

// NoopMiddleware discards every call, mirroring the host's dummyMiddleware.
type NoopMiddleware struct{}

func (NoopMiddleware) BeforeStage(stage string)         {}
func (NoopMiddleware) AfterStage(stage string, ok bool) {}

// TraceMiddleware writes one line per stage transition to an io.Writer, the
// linear-pipeline counterpart of the host's TreeLogger: where TreeLogger
// renders a branch-and-bound search as a DOT-file tree, TraceMiddleware
// renders a single call through the five-stage cut pipeline as a flat log,
// since there is no branching structure to draw here.
type TraceMiddleware struct {
	Out io.Writer
}

func (t TraceMiddleware) BeforeStage(stage string) {
	fmt.Fprintf(t.Out, "-> %s\n", stage)
}

func (t TraceMiddleware) AfterStage(stage string, ok bool) {
	status := "ok"
	if !ok {
		status = "rejected"
	}
	fmt.Fprintf(t.Out, "<- %s: %s\n", stage, status)
}

// Stats accumulates per-route counters across the lifetime of a CutEngine,
// the cut-generation analogue of the host's TreeLogger.nodes map: a
// read-only snapshot a host solver can use to tune how often it calls the
// core (deciding when to call it remains out of scope; only counting is).
type Stats struct {
	Attempted       int
	Accepted        int
	PureInteger     int
	MixedBinary     int
	MixedInteger    int
	CMIR            int
	RejectedByStage map[string]int
}

func newStats() Stats {
	return Stats{RejectedByStage: make(map[string]int)}
}

func (s *Stats) recordRejection(stage string) {
	s.Attempted++
	s.RejectedByStage[stage]++
}

func (s *Stats) recordAccepted(route string) {
	s.Attempted++
	s.Accepted++
	switch route {
	case routePureInteger:
		s.PureInteger++
	case routeMixedBinary:
		s.MixedBinary++
	case routeMixedInteger:
		s.MixedInteger++
	case routeCMIR:
		s.CMIR++
	}
}

const (
	routePureInteger  = "pure-integer"
	routeMixedBinary  = "mixed-binary"
	routeMixedInteger = "mixed-integer"
	routeCMIR         = "c-mir"
)
