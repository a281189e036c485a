package console

import (
	"fmt"

	"github.com/pkg/errors"
)

// Controller rejections. These never reach the store and are not reported.
var (
	ErrNotEditing     = errors.New("organization is not in edit mode")
	ErrCommitPending  = errors.New("a commit is already pending for this flow")
	ErrNoDialog       = errors.New("no dialog is open")
	ErrDialogMismatch = errors.New("open dialog does not accept this input")
	ErrReadOnlyField  = errors.New("field is read-only")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidValue   = errors.New("invalid field value")
)

// ErrPrecondition is wrapped by every precondition failure
var ErrPrecondition = errors.New("precondition not met")

// FailureKind classifies a reported failure
type FailureKind int

// Failure kinds
const (
	FailureLoad FailureKind = iota
	FailureMutation
	FailurePrecondition
)

func (k FailureKind) String() string {
	switch k {
	case FailureLoad:
		return "load"
	case FailureMutation:
		return "mutation"
	case FailurePrecondition:
		return "precondition"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Failure is a load, mutation or precondition failure of one operation
type Failure struct {
	Kind   FailureKind
	Op     string
	OrgID  string
	UserID string
	Err    error
}

func (f *Failure) Error() string {
	msg := f.Kind.String() + " failure: " + f.Op
	if f.OrgID != "" {
		msg += " org_id=" + f.OrgID
	}
	if f.UserID != "" {
		msg += " user_id=" + f.UserID
	}
	return msg + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Committed reports whether a Commit error still means the mutation was applied.
// That is the case for nil and for a load failure of the follow-up refetch.
func Committed(err error) bool {
	if err == nil {
		return true
	}
	var f *Failure
	return errors.As(err, &f) && f.Kind == FailureLoad
}

func preconditionf(op, orgID, userID, format string, args ...interface{}) *Failure {
	return &Failure{
		Kind:   FailurePrecondition,
		Op:     op,
		OrgID:  orgID,
		UserID: userID,
		Err:    errors.Wrapf(ErrPrecondition, format, args...),
	}
}
