// Package guard detects value objects, commands and queries that bypassed
// their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be built through a
// constructor. Its zero value fails validation, so a struct literal such as
// commands.SubmitOrderCommand{} is rejected before it reaches a handler.
//
// Example:
//
//	type LookupMemberCommand struct {
//	    memberNumber kernel.DigitCode
//	    guard        guard.ConstructorGuard
//	}
//
//	func (c LookupMemberCommand) Validate() error {
//	    return c.guard.Validate(ErrLookupMemberCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
