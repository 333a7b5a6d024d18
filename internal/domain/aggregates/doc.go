// Package aggregates defines the domain-facing contracts for the
// place/user write boundary.
//
// These contracts intentionally avoid persistence/transport details and
// describe the semantic boundaries where invariants must be enforced
// atomically: a Place and the places array on its owning User must
// always be written together.
package aggregates
