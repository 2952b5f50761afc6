package session

// ErrorCode identifies why an intake event was refused.
type ErrorCode string

const (
	// CodeValidationError marks malformed input. Never persisted.
	CodeValidationError ErrorCode = "VALIDATION_ERROR"

	// CodeMemberNotFound marks a lookup of an unknown or inactive member. Persisted.
	CodeMemberNotFound ErrorCode = "MEMBER_NOT_FOUND"

	// CodeInvalidOrder marks an order number refused by business rules. Persisted.
	CodeInvalidOrder ErrorCode = "INVALID_ORDER"

	// CodeDuplicateOrder marks a commit attempt that lost the race for the session's order slot.
	CodeDuplicateOrder ErrorCode = "DUPLICATE_ORDER"

	// CodeAlreadyCompleted marks any event against a Completed session.
	CodeAlreadyCompleted ErrorCode = "ALREADY_COMPLETED"

	// CodeInvalidState marks an event that is not admissible in the current state.
	CodeInvalidState ErrorCode = "INVALID_STATE"

	// CodeNoMember marks an order event on a session without a member. It
	// can only happen when the member invariant was broken in storage.
	CodeNoMember ErrorCode = "NO_MEMBER"
)

// Category groups error codes by how the transport reports them.
type Category int

const (
	CategoryValidation Category = iota + 1
	CategoryRejected
	CategoryConflict
)

var defaultMessages = map[ErrorCode]string{
	CodeValidationError:  "The input is not valid.",
	CodeMemberNotFound:   "Member number not found. Please enter it again.",
	CodeInvalidOrder:     "The order number is not valid. Please enter it again.",
	CodeDuplicateOrder:   "An order has already been recorded for this session.",
	CodeAlreadyCompleted: "This session has already been completed.",
	CodeInvalidState:     "This operation is not allowed in the current state.",
	CodeNoMember:         "No member has been identified for this session.",
}

// Category returns the reporting category of the code.
func (c ErrorCode) Category() Category {
	switch c {
	case CodeValidationError:
		return CategoryValidation
	case CodeMemberNotFound, CodeInvalidOrder:
		return CategoryRejected
	default:
		return CategoryConflict
	}
}

// IsPersisted reports whether a failure with this code is stored as the
// session's last error. Only domain rejections of well-formed input are.
func (c ErrorCode) IsPersisted() bool {
	return c.Category() == CategoryRejected
}

// Failure is a structured refusal reported back to the agent.
type Failure struct {
	Code    ErrorCode
	Message string
}

// NewFailure builds a Failure carrying the default message for code.
func NewFailure(code ErrorCode) Failure {
	return Failure{Code: code, Message: defaultMessages[code]}
}

// NewValidationFailure builds a VALIDATION_ERROR failure with a field-specific message.
func NewValidationFailure(message string) Failure {
	return Failure{Code: CodeValidationError, Message: message}
}

func (f Failure) String() string {
	return string(f.Code) + ": " + f.Message
}
