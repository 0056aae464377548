// Package repair removes structural table overloads by locally reassigning
// meetings, so that a session flagged infeasible by the analyzer can still
// reach the solver.
//
// Two variants share one algorithm: Mappings rewrites startup-to-table
// bindings on a private copy of the index, and Rebind rewrites the startups'
// OS/OC mentor references in place. Both relieve OC overloads before OS
// overloads and only move a startup to a destination with spare role and
// combined capacity, preferring the least loaded one. Every successful move
// strictly decreases one table's load, so the total number of moves is
// bounded by the initial overload mass and the engine always terminates.
//
// Workflow wraps the rebinding variant in an explicit state machine for
// human-in-the-loop use: the operator picks one Action per round and the
// same in-memory session state persists across rounds, so repairs accumulate.
package repair
