// Package errors defines the typed failures of the timelock workflow.
// Callers branch on Kind; only the HTTP boundary turns them into strings.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a DomainError.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConnectivity Kind = "connectivity"
	KindSigning      Kind = "signing"
	KindSubmission   Kind = "submission"
)

// DomainError carries a kind, a stable code and a user-facing message.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same kind and, when the target sets one, the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// KindOf returns the kind of the first DomainError in err's chain, or "" if none.
func KindOf(err error) Kind {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func Validation(code, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message}
}

func Connectivity(code, message string, err error) *DomainError {
	return &DomainError{Kind: KindConnectivity, Code: code, Message: message, Err: err}
}

func Signing(code, message string, err error) *DomainError {
	return &DomainError{Kind: KindSigning, Code: code, Message: message, Err: err}
}

func Submission(code, message string, err error) *DomainError {
	return &DomainError{Kind: KindSubmission, Code: code, Message: message, Err: err}
}
