// Package geocode resolves free-text place names to weather location codes.
package geocode

import (
	"context"
	"errors"
	"fmt"
)

// Reason classifies why a lookup failed
type Reason string

const (
	ReasonNetwork     Reason = "network"
	ReasonNoMatch     Reason = "no_match"
	ReasonBadResponse Reason = "bad_response"
	ReasonTimeout     Reason = "timeout"
	ReasonCanceled    Reason = "canceled"
)

var (
	// ErrNoMatch is returned when the service knows no place by that name
	ErrNoMatch = errors.New("no matching location")
	// ErrEmptyQuery is returned for blank input
	ErrEmptyQuery = errors.New("location text is empty")
)

// Location is a resolved place
type Location struct {
	Code      string
	Name      string
	Region    string
	Country   string
	Latitude  float64
	Longitude float64
}

// Label returns the place name with region and country when known
func (l Location) Label() string {
	label := l.Name
	if l.Region != "" && l.Region != l.Name {
		label += ", " + l.Region
	}
	if l.Country != "" {
		label += ", " + l.Country
	}
	return label
}

// Failure describes an unsuccessful lookup
type Failure struct {
	Reason Reason
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Reason)
	}
	return fmt.Sprintf("%s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of a lookup: exactly one of Location or Failure is set.
type Result struct {
	Location Location
	Failure  *Failure
}

// OK reports whether the lookup succeeded
func (r Result) OK() bool {
	return r.Failure == nil
}

// Err returns the failure as an error, nil on success
func (r Result) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure
}

// Success builds a successful result
func Success(loc Location) Result {
	return Result{Location: loc}
}

// Fail builds a failed result
func Fail(reason Reason, err error) Result {
	return Result{Failure: &Failure{Reason: reason, Err: err}}
}

// Geocoder resolves free text into a location
type Geocoder interface {
	Resolve(ctx context.Context, query string) Result
}

// classify maps a transport error to a reason, preferring the context's state
func classify(ctx context.Context, err error) Reason {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(ctx.Err(), context.Canceled), errors.Is(err, context.Canceled):
		return ReasonCanceled
	default:
		return ReasonNetwork
	}
}
