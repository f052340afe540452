package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrContainer ErrorType = iota
	ErrMemberNotFound
	ErrDecode
	ErrMissingField
	ErrMissingAttribute
	ErrInvalidValue
	ErrUnknownFileType
	ErrEmptyLicenseList
	ErrInvalidStructure
	ErrSignature
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrContainer:
		return "Container"
	case ErrMemberNotFound:
		return "MemberNotFound"
	case ErrDecode:
		return "Decode"
	case ErrMissingField:
		return "MissingField"
	case ErrMissingAttribute:
		return "MissingAttribute"
	case ErrInvalidValue:
		return "InvalidValue"
	case ErrUnknownFileType:
		return "UnknownFileType"
	case ErrEmptyLicenseList:
		return "EmptyLicenseList"
	case ErrInvalidStructure:
		return "InvalidStructure"
	case ErrSignature:
		return "Signature"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// EopkgError represents an error while reading an eopkg archive or index.
// Member names the archive member, Path the parent element the failing
// field was looked up in, Field the element or attribute name and Value
// the raw text that failed to parse.
type EopkgError struct {
	Type   ErrorType
	Member string
	Path   string
	Field  string
	Value  string
	Err    error
}

// Error implements the error interface
func (e *EopkgError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", e.Type)
	if e.Member != "" {
		fmt.Fprintf(&b, " %s:", e.Member)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " %s:", e.Path)
	}

	switch e.Type {
	case ErrMissingField:
		fmt.Fprintf(&b, " missing element <%s>", e.Field)
	case ErrMissingAttribute:
		fmt.Fprintf(&b, " missing attribute %q", e.Field)
	case ErrInvalidValue:
		fmt.Fprintf(&b, " invalid value %q for %s", e.Value, e.Field)
	case ErrUnknownFileType:
		fmt.Fprintf(&b, " unknown file type %q", e.Value)
	case ErrEmptyLicenseList:
		b.WriteString(" no <License> entries")
	case ErrMemberNotFound:
		fmt.Fprintf(&b, " member %q not found", e.Field)
	}

	if e.Err != nil {
		fmt.Fprintf(&b, " %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the wrapped error
func (e *EopkgError) Unwrap() error {
	return e.Err
}

// IsType reports whether err, or any error it wraps, is an EopkgError of type t.
func IsType(err error, t ErrorType) bool {
	var eerr *EopkgError
	if !errors.As(err, &eerr) {
		return false
	}
	return eerr.Type == t
}

// WithMember attaches the archive member name to err when it is an
// EopkgError that does not carry one yet.
func WithMember(err error, member string) error {
	var eerr *EopkgError
	if errors.As(err, &eerr) && eerr.Member == "" {
		eerr.Member = member
	}
	return err
}
