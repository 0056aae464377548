// Package milp provides a small 0/1 integer programming layer used by the
// scheduling solvers.
//
// A Model collects binary variables, linear constraints and an optional
// linear objective. Solving is delegated through the Solver interface; the
// default BranchAndBound implementation runs depth-first branch and bound
// over LP relaxations solved with gonum's simplex.
//
// Callers only depend on the Solver interface and the Status/Solution types,
// so a different backend can be swapped in without touching the schedulers.
package milp
