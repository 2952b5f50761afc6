// Package session models the call session: the workflow instance that walks
// an agent from member identification to a single recorded order.
//
// The package includes:
//   - State: the closed set ASK_MEMBER, ASK_ORDER, COMPLETED
//   - ErrorCode and Failure: the refusal taxonomy reported to the agent
//   - Decision: the pure outcome of an event, applied by handlers
//   - CallSession: the aggregate that enforces forward-only transitions
//
// Input-format problems are reported as VALIDATION_ERROR and never touch the
// session; domain rejections (MEMBER_NOT_FOUND, INVALID_ORDER) are stored as
// the session's last error; conflicts leave it unchanged.
package session
