// Package datalog defines the validated in-memory form of a LeapDL program:
// terms, tuples, access patterns, atoms, rules, queries and programs.
//
// Constructors are the only way to obtain values and they check every
// invariant up front. A constructor either returns a valid value or a
// *ValidationError; no partially built value is ever observable, and values
// are never mutated afterwards. A Program is the one accumulating container.
//
// # Executability
//
// A rule body is evaluated left to right. Only the rightmost body atom may
// carry an access pattern, which marks each position as input (must be bound
// before the atom is consulted) or output. NewRule rejects a rule whose last
// atom has an input position holding a variable that no earlier body atom
// mentions:
//
//	q(?x) := r(?x, ?y), s{io}(?x, ?z).   // accepted: ?x is bound by r
//	q(?x) := s{io}(?x, ?z).              // rejected: nothing binds ?x
package datalog
