package milp

import "fmt"

// Var identifies a decision variable inside a Model.
type Var int

// Term is one coefficient*variable entry of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Expr is a linear expression over model variables.
type Expr []Term

// Add appends a term and returns the extended expression.
func (e Expr) Add(v Var, coef float64) Expr {
	return append(e, Term{Var: v, Coef: coef})
}

// Sum builds an expression with unit coefficients over the given variables.
func Sum(vars ...Var) Expr {
	e := make(Expr, len(vars))
	for i, v := range vars {
		e[i] = Term{Var: v, Coef: 1}
	}
	return e
}

// Sense is the comparison direction of a constraint.
type Sense int

const (
	LessEq Sense = iota
	Equal
	GreaterEq
)

type constraint struct {
	expr  Expr
	sense Sense
	rhs   float64
	name  string
}

// Model is a 0/1 integer program: binary decision variables, linear
// constraints and a linear objective.
type Model struct {
	names       []string
	constraints []constraint
	objective   Expr
	maximize    bool
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// Binary adds a binary decision variable and returns its handle.
func (m *Model) Binary(name string) Var {
	m.names = append(m.names, name)
	return Var(len(m.names) - 1)
}

// NumVars returns the number of variables added so far.
func (m *Model) NumVars() int { return len(m.names) }

// NumConstraints returns the number of constraints added so far.
func (m *Model) NumConstraints() int { return len(m.constraints) }

// VarName returns the name a variable was declared with.
func (m *Model) VarName(v Var) string { return m.names[v] }

// AddConstraint adds expr <sense> rhs to the model.
func (m *Model) AddConstraint(expr Expr, sense Sense, rhs float64, name string) {
	m.constraints = append(m.constraints, constraint{expr: expr, sense: sense, rhs: rhs, name: name})
}

// Maximize sets the objective to maximize expr. A model without an objective
// is a pure feasibility problem.
func (m *Model) Maximize(expr Expr) {
	m.objective = expr
	m.maximize = true
}

// Minimize sets the objective to minimize expr.
func (m *Model) Minimize(expr Expr) {
	m.objective = expr
	m.maximize = false
}

func (m *Model) validate() error {
	check := func(e Expr, where string) error {
		for _, t := range e {
			if int(t.Var) < 0 || int(t.Var) >= len(m.names) {
				return fmt.Errorf("%s references unknown variable %d", where, t.Var)
			}
		}
		return nil
	}
	if err := check(m.objective, "objective"); err != nil {
		return err
	}
	for _, c := range m.constraints {
		if err := check(c.expr, "constraint "+c.name); err != nil {
			return err
		}
	}
	return nil
}

// Solution carries the outcome of a solver run. Values are only meaningful
// when Status.Solved() is true.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
	Nodes     int // branch-and-bound nodes explored
}

// Value returns the assignment of v.
func (s Solution) Value(v Var) float64 {
	if int(v) >= len(s.Values) {
		return 0
	}
	return s.Values[v]
}

// IsOne reports whether v was set in the integral solution.
func (s Solution) IsOne(v Var) bool { return s.Value(v) > 0.5 }

// Solver turns a model into a solution. The scheduling engine treats it as
// an opaque batch call: no progress reporting, no built-in cancellation.
type Solver interface {
	Solve(m *Model) (Solution, error)
}
