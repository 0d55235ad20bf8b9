package domain

import "errors"

// ErrorKind classifies every failure the blog core can produce. The HTTP
// layer maps kinds to status codes without inspecting messages.
type ErrorKind int

const (
	// KindNullArgument means a required argument or field was absent.
	KindNullArgument ErrorKind = iota
	// KindInvalidArgument means a field failed a validation predicate.
	KindInvalidArgument
	// KindNotFound means no post exists for the given identity.
	KindNotFound
	// KindStorage means the underlying store failed to execute a
	// statement or connection.
	KindStorage
	// KindConsistency means a write appeared to succeed but the mandatory
	// re-read of that write found nothing. This signals an internal bug
	// and should never occur in correct operation.
	KindConsistency
)

func (k ErrorKind) String() string {
	switch k {
	case KindNullArgument:
		return "null argument"
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotFound:
		return "not found"
	case KindStorage:
		return "storage"
	case KindConsistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// Error is the single tagged error type for the blog core: a kind, a
// message, and an optional wrapped cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NullArgumentError reports that the named argument or field was absent.
func NullArgumentError(name string) error {
	return &Error{Kind: KindNullArgument, Message: name + " cannot be NULL"}
}

// InvalidArgumentError reports a failed validation predicate.
func InvalidArgumentError(message string) error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// NotFoundError reports that no post exists for the requested identity.
func NotFoundError() error {
	return &Error{Kind: KindNotFound, Message: "Post not found"}
}

// StorageError wraps a failure of the underlying store.
func StorageError(message string, cause error) error {
	return &Error{Kind: KindStorage, Message: message, Cause: cause}
}

// ConsistencyError reports a write whose mandatory re-read found nothing.
func ConsistencyError(message string) error {
	return &Error{Kind: KindConsistency, Message: message}
}

// KindOf extracts the kind from err, unwrapping as needed. The second
// return is false when err carries no kind at all.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func isKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func IsNullArgument(err error) bool    { return isKind(err, KindNullArgument) }
func IsInvalidArgument(err error) bool { return isKind(err, KindInvalidArgument) }
func IsNotFound(err error) bool        { return isKind(err, KindNotFound) }
func IsStorage(err error) bool         { return isKind(err, KindStorage) }
func IsConsistency(err error) bool     { return isKind(err, KindConsistency) }
