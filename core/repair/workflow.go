package repair

import (
	"fmt"

	"github.com/kilianp07/mentormatch/core/feasibility"
	"github.com/kilianp07/mentormatch/core/logger"
	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/session"
)

// Action is an operator decision applied to the workflow after an
// infeasible diagnosis.
type Action int

const (
	// ActionRepair attempts one scored mentor rebinding on the current state.
	ActionRepair Action = iota
	// ActionAddTable regenerates the session with one more table.
	ActionAddTable
	// ActionRemoveStartup regenerates the session with one startup less.
	ActionRemoveStartup
	// ActionRegenerate regenerates from scratch with unchanged settings.
	ActionRegenerate
	// ActionAbort gives up and freezes the workflow.
	ActionAbort
)

func (a Action) String() string {
	switch a {
	case ActionRepair:
		return "repair"
	case ActionAddTable:
		return "add-table"
	case ActionRemoveStartup:
		return "remove-startup"
	case ActionRegenerate:
		return "regenerate"
	case ActionAbort:
		return "abort"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// State describes where the workflow stands after the latest diagnosis.
type State int

const (
	// StateDiagnosed means the session is infeasible and an Action is awaited.
	StateDiagnosed State = iota
	// StateFeasible means the session passed the structural checks.
	StateFeasible
	// StateAborted means the operator gave up.
	StateAborted
	// StateRoundLimit means the configured round budget ran out.
	StateRoundLimit
)

func (s State) String() string {
	switch s {
	case StateFeasible:
		return "feasible"
	case StateAborted:
		return "aborted"
	case StateRoundLimit:
		return "round-limit"
	default:
		return "diagnosed"
	}
}

// Terminal reports whether the workflow accepts no further actions.
func (s State) Terminal() bool { return s != StateDiagnosed }

// Generator produces a fresh mentor/startup population for the given session
// size. Randomness, if any, is owned by the caller.
type Generator func(numTables, numStartups int) ([]model.Mentor, []model.Startup, error)

// Workflow is the human-in-the-loop repair loop as an explicit state
// machine. The driver collects operator input, calls Apply and renders the
// returned report; the same in-memory mentors/startups persist across
// rounds, so repairs accumulate instead of being thrown away.
type Workflow struct {
	cfg session.Config
	gen Generator
	log logger.Logger

	mentors  []model.Mentor
	startups []model.Startup

	numTables   int
	numStartups int

	round     int
	maxRounds int
	state     State
	report    *feasibility.Report
}

// NewWorkflow generates the initial population and runs the first diagnosis.
func NewWorkflow(gen Generator, numTables, numStartups, maxRounds int, cfg session.Config, log logger.Logger) (*Workflow, error) {
	if gen == nil {
		return nil, fmt.Errorf("workflow requires a generator")
	}
	if maxRounds <= 0 {
		return nil, fmt.Errorf("max rounds must be positive, got %d", maxRounds)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	if log == nil {
		log = logger.Nop{}
	}
	w := &Workflow{
		cfg:         cfg,
		gen:         gen,
		log:         log,
		numTables:   numTables,
		numStartups: numStartups,
		maxRounds:   maxRounds,
		round:       1,
	}
	if err := w.regenerate(); err != nil {
		return nil, err
	}
	if err := w.diagnose(); err != nil {
		return nil, err
	}
	return w, nil
}

// Apply executes one operator action against the persistent state, re-runs
// the analyzer and advances the round counter. It returns the fresh report.
func (w *Workflow) Apply(a Action) (*feasibility.Report, error) {
	if w.state.Terminal() {
		return w.report, fmt.Errorf("workflow is %s, no more actions accepted", w.state)
	}

	switch a {
	case ActionRepair:
		moved, err := RebindOne(w.mentors, w.startups, w.cfg, w.log)
		if err != nil {
			return nil, err
		}
		if !moved {
			w.log.Warnf("repair found no legal rebinding; try another action")
		}
	case ActionAddTable:
		w.numTables++
		w.log.Infof("increasing tables to %d and regenerating", w.numTables)
		if err := w.regenerate(); err != nil {
			return nil, err
		}
	case ActionRemoveStartup:
		if w.numStartups <= 1 {
			w.log.Warnf("cannot reduce startups below 1")
		} else {
			w.numStartups--
			w.log.Infof("decreasing startups to %d and regenerating", w.numStartups)
			if err := w.regenerate(); err != nil {
				return nil, err
			}
		}
	case ActionRegenerate:
		w.log.Infof("regenerating from scratch with unchanged settings")
		if err := w.regenerate(); err != nil {
			return nil, err
		}
	case ActionAbort:
		w.state = StateAborted
		return w.report, nil
	default:
		return nil, fmt.Errorf("unknown action %d", int(a))
	}

	w.round++
	if err := w.diagnose(); err != nil {
		return nil, err
	}
	return w.report, nil
}

func (w *Workflow) regenerate() error {
	mentors, startups, err := w.gen(w.numTables, w.numStartups)
	if err != nil {
		return fmt.Errorf("generate session: %w", err)
	}
	w.mentors = mentors
	w.startups = startups
	return nil
}

func (w *Workflow) diagnose() error {
	rep, err := feasibility.Analyze(w.mentors, w.startups, w.cfg)
	if err != nil {
		return err
	}
	w.report = rep
	switch {
	case rep.OK:
		w.state = StateFeasible
	case w.round >= w.maxRounds:
		w.state = StateRoundLimit
	default:
		w.state = StateDiagnosed
	}
	return nil
}

// State returns the current workflow state.
func (w *Workflow) State() State { return w.state }

// Round returns the 1-based diagnosis round.
func (w *Workflow) Round() int { return w.round }

// Report returns the latest feasibility report.
func (w *Workflow) Report() *feasibility.Report { return w.report }

// Mentors returns the persistent mentor population.
func (w *Workflow) Mentors() []model.Mentor { return w.mentors }

// Startups returns the persistent startup population.
func (w *Workflow) Startups() []model.Startup { return w.startups }

// NumTables returns the current table count setting.
func (w *Workflow) NumTables() int { return w.numTables }

// NumStartups returns the current startup count setting.
func (w *Workflow) NumStartups() int { return w.numStartups }
