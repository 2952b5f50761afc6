// Package errs provides the typed errors shared by the call-center order intake
// service. Every type pairs a sentinel (usable with errors.Is) with a struct
// carrying the offending parameter:
//   - ObjectNotFoundError: a session or member lookup by identifier found nothing
//   - ValueIsInvalidError: a value failed a format rule (e.g. an 8-digit number)
//   - ValueIsRequiredError: a mandatory value is missing or zero
//
// Constructors come in two flavours, with and without an underlying cause.
// Domain rejections of the intake workflow (MEMBER_NOT_FOUND, INVALID_ORDER, ...)
// are not errors; they are reported as session.Failure values.
package errs
