package service

import "fmt"

// UserError wraps a failed user operation with the underlying cause. Raw
// storage errors never leave the service layer unwrapped; callers match the
// cause with errors.Is through Unwrap.
type UserError struct {
	Op  string
	Err error
}

func (e *UserError) Error() string {
	return fmt.Sprintf("user %s: %v", e.Op, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }

func userErr(op string, err error) error {
	return &UserError{Op: op, Err: err}
}

// PostError is the post-side counterpart of UserError.
type PostError struct {
	Op  string
	Err error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post %s: %v", e.Op, e.Err)
}

func (e *PostError) Unwrap() error { return e.Err }

func postErr(op string, err error) error {
	return &PostError{Op: op, Err: err}
}
