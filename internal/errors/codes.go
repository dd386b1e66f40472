package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"

	// Arena codes. These are usage errors: the caller surfaces them
	// immediately and nothing retries them.
	CodeMalformedExpression  Code = "MALFORMED_EXPRESSION"
	CodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	CodeInvalidCombatState   Code = "INVALID_COMBAT_STATE"
	CodeMemberNotFound       Code = "MEMBER_NOT_FOUND"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// IsUsageError reports whether the code belongs to the arena's
// programming/usage taxonomy.
func (c Code) IsUsageError() bool {
	switch c {
	case CodeMalformedExpression, CodeInvalidConfiguration, CodeInvalidCombatState, CodeMemberNotFound:
		return true
	default:
		return false
	}
}
