// Package kernel provides the value objects shared by the intake domain model:
//   - UUID: identifiers of call sessions and orders
//   - DigitCode: the fixed-length numeric codes agents type in (member and order numbers)
//
// Both types reject their zero value in Validate, so an uninitialised field
// cannot silently reach persistence.
package kernel
