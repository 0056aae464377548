package milp

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	defaultMaxNodes    = 100000
	defaultMaxDuration = 30 * time.Second
	simplexTol         = 1e-7
	intTol             = 1e-6
	boundTol           = 1e-9
)

// BranchAndBound solves binary models by depth-first branch and bound over
// simplex relaxations.
type BranchAndBound struct {
	// MaxNodes bounds the number of explored nodes. When the budget runs
	// out the best incumbent is returned as Feasible, or NotSolved if none
	// was found.
	MaxNodes int
	// MaxDuration bounds the wall-clock time of one Solve call. Large
	// models pay a high per-node relaxation cost, so the node budget alone
	// does not keep a solve timely. Exhaustion maps exactly like the node
	// budget: Feasible with an incumbent, NotSolved without.
	MaxDuration time.Duration
}

// NewBranchAndBound returns a solver with the default node and time budgets.
func NewBranchAndBound() *BranchAndBound {
	return &BranchAndBound{MaxNodes: defaultMaxNodes, MaxDuration: defaultMaxDuration}
}

type bbNode struct {
	fixed []int8 // -1 free, 0 or 1 pinned
}

// Solve implements the Solver interface.
func (s *BranchAndBound) Solve(m *Model) (Solution, error) {
	if err := m.validate(); err != nil {
		return Solution{}, err
	}
	n := m.NumVars()
	if n == 0 {
		return Solution{Status: Optimal}, nil
	}
	maxNodes := s.MaxNodes
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}
	maxDur := s.MaxDuration
	if maxDur <= 0 {
		maxDur = defaultMaxDuration
	}
	start := time.Now()

	// Minimisation objective vector; maximisation is solved negated.
	c := make([]float64, n)
	for _, t := range m.objective {
		if m.maximize {
			c[t.Var] -= t.Coef
		} else {
			c[t.Var] += t.Coef
		}
	}

	rel := newRelaxation(m, c)

	root := bbNode{fixed: make([]int8, n)}
	for i := range root.fixed {
		root.fixed[i] = -1
	}

	var (
		stack      = []bbNode{root}
		incumbent  []float64
		incumbentF = math.Inf(1)
		nodes      int
		complete   = true
	)

	for len(stack) > 0 {
		if nodes >= maxNodes || time.Since(start) > maxDur {
			complete = false
			break
		}
		nodes++

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f, x, err := rel.solve(node.fixed)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			if nodes == 1 {
				return Solution{Status: Infeasible, Nodes: nodes}, nil
			}
			continue
		case errors.Is(err, lp.ErrUnbounded):
			if nodes == 1 {
				return Solution{Status: Unbounded, Nodes: nodes}, nil
			}
			continue
		case err != nil:
			return Solution{}, err
		}

		// The relaxation bounds every integral solution in this subtree.
		if f >= incumbentF-boundTol {
			continue
		}

		branch, ok := mostFractional(x)
		if !ok {
			incumbent = roundBinary(x)
			incumbentF = f
			continue
		}

		// Explore the side the relaxation leans towards first.
		near, far := int8(0), int8(1)
		if x[branch] > 0.5 {
			near, far = 1, 0
		}
		stack = append(stack, fixVar(node.fixed, branch, far))
		stack = append(stack, fixVar(node.fixed, branch, near))
	}

	sol := Solution{Nodes: nodes}
	switch {
	case incumbent == nil && complete:
		sol.Status = Infeasible
	case incumbent == nil:
		sol.Status = NotSolved
	case complete:
		sol.Status = Optimal
	default:
		sol.Status = Feasible
	}
	if incumbent != nil {
		sol.Values = incumbent
		var obj float64
		for _, t := range m.objective {
			obj += t.Coef * incumbent[t.Var]
		}
		sol.Objective = obj
	}
	return sol, nil
}

// relaxation holds the inequality system shared by all nodes: the model
// constraints (equalities as paired inequalities) plus 0 <= x <= 1 rows,
// flattened once so per-node solves only append their pinning rows.
type relaxation struct {
	n    int
	c    []float64
	data []float64 // row-major flattened inequality matrix
	rhs  []float64
}

func newRelaxation(m *Model, c []float64) *relaxation {
	n := m.NumVars()
	r := &relaxation{n: n, c: c}
	addRow := func(e Expr, scale, b float64) {
		row := make([]float64, n)
		for _, t := range e {
			row[t.Var] += scale * t.Coef
		}
		r.data = append(r.data, row...)
		r.rhs = append(r.rhs, b)
	}
	for _, con := range m.constraints {
		switch con.sense {
		case LessEq:
			addRow(con.expr, 1, con.rhs)
		case GreaterEq:
			addRow(con.expr, -1, -con.rhs)
		case Equal:
			addRow(con.expr, 1, con.rhs)
			addRow(con.expr, -1, -con.rhs)
		}
	}
	for i := 0; i < n; i++ {
		upper := make([]float64, n)
		upper[i] = 1
		r.data = append(r.data, upper...)
		r.rhs = append(r.rhs, 1)

		lower := make([]float64, n)
		lower[i] = -1
		r.data = append(r.data, lower...)
		r.rhs = append(r.rhs, 0)
	}
	return r
}

// solve runs the simplex on the relaxation with the given pinnings and maps
// the standard-form solution back onto the original variables.
func (r *relaxation) solve(fixed []int8) (float64, []float64, error) {
	nRows := len(r.rhs)
	for _, f := range fixed {
		if f >= 0 {
			nRows++
		}
	}

	data := make([]float64, len(r.data), nRows*r.n)
	copy(data, r.data)
	h := make([]float64, len(r.rhs), nRows)
	copy(h, r.rhs)
	for i, f := range fixed {
		row := make([]float64, r.n)
		switch f {
		case 0: // x_i <= 0
			row[i] = 1
			h = append(h, 0)
		case 1: // -x_i <= -1
			row[i] = -1
			h = append(h, -1)
		default:
			continue
		}
		data = append(data, row...)
	}

	g := mat.NewDense(nRows, r.n, data)
	cStd, aStd, bStd := lp.Convert(r.c, g, h, nil, nil)
	f, xStd, err := lp.Simplex(cStd, aStd, bStd, simplexTol, nil)
	if err != nil {
		return 0, nil, err
	}
	// Convert splits each free variable into a positive and a negative
	// part: x_i = xStd[i] - xStd[n+i].
	x := make([]float64, r.n)
	for i := range x {
		x[i] = xStd[i] - xStd[r.n+i]
	}
	return f, x, nil
}

// mostFractional picks the variable furthest from integrality.
func mostFractional(x []float64) (int, bool) {
	best, bestDist := -1, intTol
	for i, v := range x {
		dist := math.Min(v, 1-v)
		if dist > bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func roundBinary(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if v > 0.5 {
			out[i] = 1
		}
	}
	return out
}

func fixVar(fixed []int8, i int, v int8) bbNode {
	cp := append([]int8(nil), fixed...)
	cp[i] = v
	return bbNode{fixed: cp}
}
