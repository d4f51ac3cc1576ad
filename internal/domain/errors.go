package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures that reach the HTTP boundary
type ErrorKind int

const (
	// KindInternalDataFailure is malformed stored or derived data; fatal for the request
	KindInternalDataFailure ErrorKind = iota
	KindMissingParameter
	KindUnknownURI
	KindInvalidCollectionLevel
	KindInvalidIdentifier
	KindInvalidProfile
	KindInvalidMediatype
	// KindUpstreamQueryFailure is a failed call to the backing triple store; never retried
	KindUpstreamQueryFailure
	KindRateLimited
)

var kindInfo = map[ErrorKind]struct {
	name   string
	title  string
	status int
}{
	KindInternalDataFailure:    {"InternalDataFailure", "Internal data error", http.StatusInternalServerError},
	KindMissingParameter:       {"MissingParameter", "Missing parameter", http.StatusBadRequest},
	KindUnknownURI:             {"UnknownURI", "URI not known", http.StatusNotFound},
	KindInvalidCollectionLevel: {"InvalidCollectionLevel", "Invalid Collection ID", http.StatusBadRequest},
	KindInvalidIdentifier:      {"InvalidIdentifier", "Invalid identifier", http.StatusBadRequest},
	KindInvalidProfile:         {"InvalidProfile", "Invalid profile", http.StatusBadRequest},
	KindInvalidMediatype:       {"InvalidMediatype", "Invalid mediatype", http.StatusNotAcceptable},
	KindUpstreamQueryFailure:   {"UpstreamQueryFailure", "Upstream query failed", http.StatusBadGateway},
	KindRateLimited:            {"RateLimited", "Too many requests", http.StatusTooManyRequests},
}

// String returns the kind name
func (k ErrorKind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return "Unknown"
}

// Status returns the HTTP status code for the kind
func (k ErrorKind) Status() int {
	if info, ok := kindInfo[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Title returns the human-readable heading for the kind
func (k ErrorKind) Title() string {
	if info, ok := kindInfo[k]; ok {
		return info.title
	}
	return "Error"
}

// Sentinel errors, one per kind, for errors.Is checks
var (
	ErrInternalDataFailure    = &Error{Kind: KindInternalDataFailure}
	ErrMissingParameter       = &Error{Kind: KindMissingParameter}
	ErrUnknownURI             = &Error{Kind: KindUnknownURI}
	ErrInvalidCollectionLevel = &Error{Kind: KindInvalidCollectionLevel}
	ErrInvalidIdentifier      = &Error{Kind: KindInvalidIdentifier}
	ErrInvalidProfile         = &Error{Kind: KindInvalidProfile}
	ErrInvalidMediatype       = &Error{Kind: KindInvalidMediatype}
	ErrUpstreamQueryFailure   = &Error{Kind: KindUpstreamQueryFailure}
	ErrRateLimited            = &Error{Kind: KindRateLimited}
)

// Error is a classified failure carrying the user-facing message
type Error struct {
	Kind    ErrorKind
	Title   string
	Message string
	Err     error
}

// NewError creates a classified error with the kind's default title
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Title: kind.Title(), Message: message}
}

// WrapError classifies an underlying error
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Title: kind.Title(), Message: message, Err: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Title()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// Status returns the HTTP status for the error
func (e *Error) Status() int {
	return e.Kind.Status()
}

// AsError extracts the classified error, treating anything unclassified as
// an internal data failure
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Title == "" {
			e = &Error{Kind: e.Kind, Title: e.Kind.Title(), Message: e.Message, Err: e.Err}
		}
		return e
	}
	return WrapError(KindInternalDataFailure, "The server could not produce this resource", err)
}

// KindOf returns the classification of err
func KindOf(err error) ErrorKind {
	return AsError(err).Kind
}

// IsClientError reports whether the failure was caused by the request
func IsClientError(err error) bool {
	status := KindOf(err).Status()
	return status >= 400 && status < 500
}
