// Package solver builds the MILP formulations of the session scheduling
// problem and delegates them to an opaque combinatorial solver.
//
// Two formulations are provided:
//   - SolveSeating: seats startups at tables per round with OS/OC tables
//     already fixed, optionally maximising aggregated table fit.
//   - SolveJoint: simultaneously selects OS/OC mentors and the full seating,
//     maximising total mentor fit under role, capacity, precedence and
//     distinct-table rules.
//
// Both surface the solver status verbatim (optimal, feasible, infeasible,
// unbounded, not-solved) and never return a partial schedule. The joint
// result is a pure value; ApplyAssignments merges it into a fresh startup
// slice so the caller decides when state changes.
package solver
