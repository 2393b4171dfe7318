package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCIK        = errors.New("invalid CIK format, must be a 10-digit number")
	ErrUpstream          = errors.New("sec api request failed")
	ErrMalformedResponse = errors.New("malformed sec api response")
	ErrNoValidData       = errors.New("no valid shares data found for years after 2020")
)

// StatusError is returned when the SEC API answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch data: %d %s", e.Code, e.Status)
}

// ErrorKind groups lookup failures for logs and metrics. Every kind is
// presented to the user the same way.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindTransport  ErrorKind = "transport"
	KindParse      ErrorKind = "parse"
	KindData       ErrorKind = "data"
)

// KindOf classifies err. Status errors, ErrUpstream and anything unrecognised
// count as transport failures, since only the fetch stage produces them.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidCIK):
		return KindValidation
	case errors.Is(err, ErrNoValidData):
		return KindData
	case errors.Is(err, ErrMalformedResponse):
		return KindParse
	default:
		return KindTransport
	}
}
