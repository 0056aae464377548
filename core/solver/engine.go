package solver

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/mentormatch/core/logger"
	"github.com/kilianp07/mentormatch/core/metrics"
	"github.com/kilianp07/mentormatch/internal/milp"
)

// Engine wraps the opaque MILP solver with logging and metrics. One engine
// may serve many solves; each solve is tagged with its own run id.
type Engine struct {
	solver milp.Solver
	log    logger.Logger
	sink   metrics.Sink
}

// New builds an Engine. Nil arguments fall back to the default
// branch-and-bound solver, a no-op logger and a no-op sink.
func New(sv milp.Solver, log logger.Logger, sink metrics.Sink) *Engine {
	if sv == nil {
		sv = milp.NewBranchAndBound()
	}
	if log == nil {
		log = logger.Nop{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Engine{solver: sv, log: log, sink: sink}
}

// run solves the model as a single opaque batch call and records the outcome.
func (e *Engine) run(component string, m *milp.Model) (milp.Solution, error) {
	runID := uuid.NewString()
	e.log.Debugw("solving model", map[string]any{
		"component":   component,
		"run_id":      runID,
		"vars":        m.NumVars(),
		"constraints": m.NumConstraints(),
	})

	start := time.Now()
	sol, err := e.solver.Solve(m)
	elapsed := time.Since(start)
	if err != nil {
		e.log.Errorf("%s solve failed after %s: %v", component, elapsed, err)
		return milp.Solution{}, err
	}

	e.log.Infof("%s solve finished: status=%s nodes=%d in %s", component, sol.Status, sol.Nodes, elapsed)
	if serr := e.sink.RecordSolve(metrics.SolveEvent{
		Component:   component,
		RunID:       runID,
		Status:      sol.Status.String(),
		Duration:    elapsed,
		Vars:        m.NumVars(),
		Constraints: m.NumConstraints(),
		Nodes:       sol.Nodes,
	}); serr != nil {
		e.log.Warnf("record solve event: %v", serr)
	}
	return sol, nil
}
