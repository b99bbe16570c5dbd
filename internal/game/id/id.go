// Package id defines the stable entity identifier type shared by the
// entity store, the collision system, and the wolf AI stack so that
// cross-component references (target ids, pack membership, projectile
// ownership) never need embedded pointers — only a lookup key resolved
// through whichever registry owns the referent.
package id

// EntityID is a monotonically-issued identifier, never reused within a
// game. The zero value is reserved as "no entity" / the
// sentinel returned when a create operation is rejected.
type EntityID uint64

// Invalid is the sentinel returned by create operations that are
// rejected (resource limits, invalid arguments) so that callers can
// treat the result as "spawn skipped" without an error value.
const Invalid EntityID = 0
