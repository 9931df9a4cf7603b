// Package domain contains the HR entity graph: Employee, Department, Job,
// JobHistory and their supporting entities.
//
// Associations are unexported and only change through the owning side's
// mutators, which keep the reciprocal back-reference in sync. Identifiers are
// nil until a repository persists the entity. The graph does no locking;
// callers serialize mutation of a shared graph.
package domain
