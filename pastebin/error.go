package pastebin

// Kind classifies paste failures.
type Kind int

const (
	// Network means the request could not be completed.
	Network Kind = iota + 1
	// UnexpectedStatus means Pastebin responded with a status other than 200.
	UnexpectedStatus
	// EmptyResponse means Pastebin responded with no body.
	EmptyResponse
	// BadRequest means Pastebin rejected the request, e.g. for a bad API key.
	BadRequest
	// PostLimit means the account has reached its paste limit.
	PostLimit
	// Unknown means the response was not recognized.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Network:
		return "network error"
	case UnexpectedStatus:
		return "unexpected status"
	case EmptyResponse:
		return "empty response"
	case BadRequest:
		return "bad request"
	case PostLimit:
		return "post limit exceeded"
	case Unknown:
		return "unknown error"
	default:
		return "invalid kind"
	}
}

// Error is an error creating a paste.
type Error struct {
	// Kind is the class of failure.
	Kind Kind
	// Detail is the response body or status for failures Pastebin reports.
	Detail string
	// Err is the underlying error for network failures.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return "pastebin: " + e.Kind.String() + ": " + e.Err.Error()
	case e.Detail != "":
		return "pastebin: " + e.Kind.String() + ": " + e.Detail
	default:
		return "pastebin: " + e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that the
// sentinel errors below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNetwork          = &Error{Kind: Network}
	ErrUnexpectedStatus = &Error{Kind: UnexpectedStatus}
	ErrEmptyResponse    = &Error{Kind: EmptyResponse}
	ErrBadRequest       = &Error{Kind: BadRequest}
	ErrPostLimit        = &Error{Kind: PostLimit}
	ErrUnknown          = &Error{Kind: Unknown}
)
