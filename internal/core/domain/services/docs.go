// Package services contains domain services that coordinate several
// aggregates without owning persistence.
//
// SessionStateMachine decides, for a call session and an intake event,
// whether the event is admissible and which mutation and outcome follow.
// It is pure: handlers load the session, ask for a Decision, and apply it
// inside their own unit of work.
package services
