package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a governance error independently of the message text, so
// callers can branch on errors.As without string matching.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidArgument    Kind = "invalid_argument"
	KindPreconditionFailed Kind = "precondition_failed"
	KindIneligibleVoter    Kind = "ineligible_voter"
	KindAlreadyPaid        Kind = "already_paid"
	KindOracleFailure      Kind = "oracle_failure"
	KindPersistence        Kind = "persistence"
)

// Sentinel errors for errors.Is comparisons; Error.Unwrap exposes these.
var (
	ErrNotFound           = errors.New("governance: not found")
	ErrInvalidArgument    = errors.New("governance: invalid argument")
	ErrPreconditionFailed = errors.New("governance: precondition failed")
	ErrIneligibleVoter    = errors.New("governance: ineligible voter")
	ErrAlreadyPaid        = errors.New("governance: already paid")
	ErrOracleFailure      = errors.New("governance: oracle failure")
	ErrPersistence        = errors.New("governance: persistence failure")
)

var sentinelByKind = map[Kind]error{
	KindNotFound:           ErrNotFound,
	KindInvalidArgument:    ErrInvalidArgument,
	KindPreconditionFailed: ErrPreconditionFailed,
	KindIneligibleVoter:    ErrIneligibleVoter,
	KindAlreadyPaid:        ErrAlreadyPaid,
	KindOracleFailure:      ErrOracleFailure,
	KindPersistence:        ErrPersistence,
}

// Error is the single error type returned across package boundaries in this
// module. Op names the failing operation (e.g. "CloseEpoch") for log
// correlation; Kind supports errors.Is against the package sentinels.
type Error struct {
	Op   string
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("governance: %s", e.Msg)
	}
	return fmt.Sprintf("governance: %s: %s", e.Op, e.Msg)
}

// Unwrap lets errors.Is(err, domain.ErrNotFound) and friends work.
func (e *Error) Unwrap() error {
	if sentinel, ok := sentinelByKind[e.Kind]; ok {
		return sentinel
	}
	return nil
}

// NewError constructs an *Error for the given operation, kind, and message.
func NewError(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(op, format string, args ...any) *Error {
	return NewError(op, KindNotFound, format, args...)
}

func InvalidArgument(op, format string, args ...any) *Error {
	return NewError(op, KindInvalidArgument, format, args...)
}

func PreconditionFailed(op, format string, args ...any) *Error {
	return NewError(op, KindPreconditionFailed, format, args...)
}

func IneligibleVoter(op, format string, args ...any) *Error {
	return NewError(op, KindIneligibleVoter, format, args...)
}

func AlreadyPaid(op, format string, args ...any) *Error {
	return NewError(op, KindAlreadyPaid, format, args...)
}

func OracleFailure(op, format string, args ...any) *Error {
	return NewError(op, KindOracleFailure, format, args...)
}

func Persistence(op, format string, args ...any) *Error {
	return NewError(op, KindPersistence, format, args...)
}
