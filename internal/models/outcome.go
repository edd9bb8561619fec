package models

// ErrorKind classifies why a check could not produce a verdict.
type ErrorKind string

const (
	ErrorKindNone                   ErrorKind = ""
	ErrorKindInvalidArguments       ErrorKind = "InvalidArguments"
	ErrorKindInvalidSystemArguments ErrorKind = "InvalidSystemArguments"
	ErrorKindInvalidCheck           ErrorKind = "InvalidCheck"
	ErrorKindUnknown                ErrorKind = "Unknown"
)

// String returns the kind name, or "None" for [ErrorKindNone].
func (k ErrorKind) String() string {
	if k == ErrorKindNone {
		return "None"
	}
	return string(k)
}

// Outcome is the result of running a single [CheckSpec].
//
// NOTE: if ErrorKind != [ErrorKindNone] then Passed is always false. Use
// [NewErrorOutcome] to build those so the invariant can't be broken.
type Outcome struct {
	Spec         CheckSpec
	Passed       bool
	ErrorKind    ErrorKind
	ErrorMessage string
	// Diagnostic is the check's own explanation for a plain (non-error) failure.
	Diagnostic string
	DurationMs int64
}

// NewOutcome creates an outcome for a check that ran to completion.
func NewOutcome(spec CheckSpec, passed bool, diagnostic string) Outcome {
	return Outcome{
		Spec:       spec,
		Passed:     passed,
		Diagnostic: diagnostic,
	}
}

// NewErrorOutcome creates a failed outcome for a check that could not run.
// An empty kind is treated as [ErrorKindUnknown].
func NewErrorOutcome(spec CheckSpec, kind ErrorKind, message string) Outcome {
	if kind == ErrorKindNone {
		kind = ErrorKindUnknown
	}

	return Outcome{
		Spec:         spec,
		Passed:       false,
		ErrorKind:    kind,
		ErrorMessage: message,
	}
}

// Errored is true when the check failed because of an error rather than a
// negative verdict.
func (o Outcome) Errored() bool {
	return o.ErrorKind != ErrorKindNone
}

// Details returns the text that explains a failure: the error message for
// errored checks, otherwise the diagnostic.
func (o Outcome) Details() string {
	if o.Errored() {
		return o.ErrorKind.String() + ": " + o.ErrorMessage
	}
	return o.Diagnostic
}
