package tracker

import (
	"errors"
	"fmt"
)

// RejectCode identifies which precondition a rejected request failed.
type RejectCode string

const (
	RejectAlreadyActive      RejectCode = "already_active"
	RejectNoActiveSession    RejectCode = "no_active_session"
	RejectUnknownKind        RejectCode = "unknown_kind"
	RejectGroupNotRegistered RejectCode = "group_not_registered"
)

// Rejection is a user-facing precondition failure. It is always recoverable
// and reported back to the requester with a distinguishable message.
type Rejection struct {
	Code RejectCode
	// ActiveKind carries the label of the running activity for
	// RejectAlreadyActive.
	ActiveKind string
	// Kind carries the unrecognized name for RejectUnknownKind.
	Kind string
}

func (r *Rejection) Error() string {
	switch r.Code {
	case RejectAlreadyActive:
		return fmt.Sprintf("already away on %s, return first", r.ActiveKind)
	case RejectNoActiveSession:
		return "no activity in progress"
	case RejectUnknownKind:
		return fmt.Sprintf("unknown activity kind %q", r.Kind)
	case RejectGroupNotRegistered:
		return "group is not registered, ask an admin to set it up"
	}
	return string(r.Code)
}

// AsRejection unwraps err into a Rejection, if it is one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	ok := errors.As(err, &r)
	return r, ok
}

// PersistenceError reports that a durable write failed after the in-memory
// mutation already took effect. The operation stands, but it would be lost
// on a crash, so callers must surface this rather than swallow it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
