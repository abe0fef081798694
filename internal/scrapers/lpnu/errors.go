package lpnu

import "fmt"

// RetrievalError is returned when a page could not be fetched.
type RetrievalError struct {
	Url   string
	Cause error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.Url, e.Cause)
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

// PageStructureError is returned when an expected container or list is missing from a page,
// which usually means the page layout changed.
type PageStructureError struct {
	Url    string
	Reason string
}

func (e *PageStructureError) Error() string {
	if e.Url == "" {
		return fmt.Sprintf("unexpected page structure: %s", e.Reason)
	}
	return fmt.Sprintf("unexpected page structure at %s: %s", e.Url, e.Reason)
}

// PatternMismatchError is returned when a slot fragment does not follow the expected field layout.
type PatternMismatchError struct {
	Fragment string
	Pattern  string
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("can not match slot details:\n%s\nto pattern:\n%s", e.Fragment, e.Pattern)
}

// UnrecognizedTokenError is returned when an identifier or label maps to no known value.
type UnrecognizedTokenError struct {
	Kind  string
	Token string
}

func (e *UnrecognizedTokenError) Error() string {
	return fmt.Sprintf("can not create %s from %q", e.Kind, e.Token)
}
