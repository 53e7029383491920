// Package session implements the per-chat conversation aggregate: an explicit
// state machine tracking which step of the delivery pricing flow a chat is in,
// together with the data collected so far (cargo weight, assigned tariff,
// candidate and confirmed destination).
//
// Only resting states are modeled. Transient stages such as tariff assignment
// and price calculation resolve within a single message handling and are never
// persisted.
package session
