package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
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

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewVoterNotFound reports an unknown voter identity.
func NewVoterNotFound() error {
	return NewDomainError("VOTER_NOT_FOUND", "voter not found", http.StatusNotFound, nil)
}

// NewElectionNotFound reports an unknown election.
func NewElectionNotFound() error {
	return NewDomainError("ELECTION_NOT_FOUND", "election not found", http.StatusNotFound, nil)
}

// NewCandidateNotFound reports an unknown candidate.
func NewCandidateNotFound() error {
	return NewDomainError("CANDIDATE_NOT_FOUND", "candidate not found", http.StatusNotFound, nil)
}

// NewAttributeMismatch reports a failed name or date-of-birth cross-check.
func NewAttributeMismatch(attribute string) error {
	return NewDomainError("ATTRIBUTE_MISMATCH",
		fmt.Sprintf("%s does not match our records", attribute),
		http.StatusUnauthorized, map[string]any{"attribute": attribute})
}

// NewBiometricMismatch reports a template distance beyond the match threshold.
func NewBiometricMismatch(distance float64) error {
	return NewDomainError("BIOMETRIC_MISMATCH", "face verification failed",
		http.StatusUnauthorized, map[string]any{"distance": distance})
}

// NewNoBiometricOnFile reports a missing or incompatible stored template.
func NewNoBiometricOnFile() error {
	return NewDomainError("NO_BIOMETRIC_ON_FILE",
		"no usable face data found for this voter", http.StatusConflict, nil)
}

// NewAlreadyVoted reports a second cast attempt for the same voter.
func NewAlreadyVoted() error {
	return NewDomainError("ALREADY_VOTED", "voter has already voted", http.StatusConflict, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

// NewTokenExpired reports an expired credential.
func NewTokenExpired() error {
	return NewDomainError("TOKEN_EXPIRED", "token has expired", http.StatusUnauthorized, nil)
}

// NewTokenInvalid reports a credential whose signature or claims do not check out.
func NewTokenInvalid() error {
	return NewDomainError("TOKEN_INVALID", "invalid token", http.StatusForbidden, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewStoreError wraps an underlying persistence failure.
func NewStoreError(err error) error {
	return &DomainError{
		Code:       "STORE_ERROR",
		Message:    "storage error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
