// Package apperr defines the structured error shape used across oligosig:
// every user-facing failure carries a Kind, a human Message, and an
// optional Location describing where in the input it occurred.
package apperr

import "fmt"

// Kind classifies a failure for exit-code mapping in cmd/aodp.
type Kind int

const (
	// Unknown is the zero Kind; it should not appear in constructed errors.
	Unknown Kind = iota
	// InvalidInput covers malformed FASTA/Newick/taxonomy input.
	InvalidInput
	// InvalidOption covers unsupported or conflicting CLI flags.
	InvalidOption
	// DuplicateID covers a sequence id collision (Source.onFragment).
	DuplicateID
	// UnmatchedFilter covers an isolation/outgroup entry matching no target.
	UnmatchedFilter
	// SequenceTooLong covers the matcher's 4096-symbol hard cap.
	SequenceTooLong
	// Internal covers invariant violations that should never occur.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case InvalidOption:
		return "invalid option"
	case DuplicateID:
		return "duplicate id"
	case UnmatchedFilter:
		return "unmatched filter"
	case SequenceTooLong:
		return "sequence too long"
	case Internal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Location names where in the input a failure was found.
type Location struct {
	File string
	Line int
	// Name is a sequence, cluster, or target name, when more specific than
	// a file/line pair.
	Name string
}

func (l Location) String() string {
	switch {
	case l.File != "" && l.Line > 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	case l.Name != "":
		return l.Name
	default:
		return ""
	}
}

// Error is the structured error value returned by oligosig's packages.
type Error struct {
	Kind     Kind
	Message  string
	Location Location
	Err      error // wrapped cause, if any
}

func (e *Error) Error() string {
	loc := e.Location.String()
	if loc != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, loc)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with no location.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At attaches a Location to err's copy.
func (e *Error) At(loc Location) *Error {
	out := *e
	out.Location = loc
	return &out
}

// Wrap builds an Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}
