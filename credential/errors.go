package credential

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindNotImplemented is returned by the accessors of an X509 credential.
	// Certificate credentials are carried but not interpreted.
	KindNotImplemented Kind = "NotImplemented"
	// KindMalformedEncoding covers every decode failure: bounds, truncation,
	// unknown tags, unknown schemes and strict-mode rejections.
	KindMalformedEncoding Kind = "MalformedEncoding"
	// KindInvalid is returned when an empty or unencodable value is used.
	KindInvalid Kind = "Invalid"
	// KindSignature is returned by VerifySignature when a signature does not verify.
	KindSignature Kind = "Signature"
)

// Error is the structured error type shared by the credential and roster
// packages.
//
// RuleID is a stable identifier (e.g. CRED-ENC-001, CRED-X509-002,
// ROSTER-ENC-101) naming the violated rule. Message is for humans.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns a structured error. It is exported for packages that
// encode credentials inside larger structures.
func NewError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// WrapError is NewError with a cause.
func WrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
