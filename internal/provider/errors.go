package provider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a remote lookup failed. Callers branch on the
// kind, never on error text.
type ErrorKind int

const (
	// MissingCredential means no API key is configured for the capability.
	MissingCredential ErrorKind = iota
	// UpstreamStatus means the API answered with a non-200 status.
	UpstreamStatus
	// NetworkFailure covers transport errors and timeouts.
	NetworkFailure
	// NoData means a well-formed response carried nothing useful
	// (unknown city, unknown ticker, zero articles).
	NoData
	// ParseFailure means the upstream payload could not be decoded.
	ParseFailure
)

func (k ErrorKind) String() string {
	switch k {
	case MissingCredential:
		return "missing credential"
	case UpstreamStatus:
		return "upstream status"
	case NetworkFailure:
		return "network failure"
	case NoData:
		return "no data"
	case ParseFailure:
		return "parse failure"
	default:
		return "unknown"
	}
}

// Error is the classified failure every provider returns. Op names the
// capability ("weather", "news", "stock", "search", "webpage").
type Error struct {
	Op     string
	Kind   ErrorKind
	Status int    // set for UpstreamStatus
	Detail string // human-readable context
	Err    error  // wrapped transport/decode error, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingCredential:
		return fmt.Sprintf("%s: no API key configured", e.Op)
	case UpstreamStatus:
		if e.Detail != "" {
			return fmt.Sprintf("%s: upstream returned status %d: %s", e.Op, e.Status, e.Detail)
		}
		return fmt.Sprintf("%s: upstream returned status %d", e.Op, e.Status)
	case NoData:
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a provider Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

func errMissingCredential(op string) *Error {
	return &Error{Op: op, Kind: MissingCredential}
}

func errUpstreamStatus(op string, status int, detail string) *Error {
	return &Error{Op: op, Kind: UpstreamStatus, Status: status, Detail: detail}
}

func errNetwork(op string, err error) *Error {
	return &Error{Op: op, Kind: NetworkFailure, Err: err}
}

func errNoData(op, detail string) *Error {
	return &Error{Op: op, Kind: NoData, Detail: detail}
}

func errParse(op string, err error) *Error {
	return &Error{Op: op, Kind: ParseFailure, Err: err}
}
