// Package compose evaluates parsed templates into outgoing payloads.
//
// Ownership boundary:
// - instruction tables for the text and binary modes
// - per-particle evaluation against read-only variable stores
// - payload assembly in particle order
//
// A composition is atomic: it returns a complete payload or an error, never a
// partial result.
package compose
