package externalApi

import (
	"context"
	"errors"
	"fmt"
	"net"
)

const (
	CodeUnreachable       = "upstream_unreachable"
	CodeTimeout           = "upstream_timeout"
	CodeBadStatus         = "upstream_bad_status"
	CodeMalformed         = "upstream_malformed"
	CodeResourceMissing   = "local_resource_missing"
	CodeResourceMalformed = "local_resource_malformed"
)

// Failure is the only error type returned by data source adapters.
type Failure struct {
	Code string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func NewFailure(code string, err error) *Failure {
	return &Failure{Code: code, Err: err}
}

// FailureFromTransport classifies an error returned by the http client.
func FailureFromTransport(err error) *Failure {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewFailure(CodeTimeout, err)
	}
	return NewFailure(CodeUnreachable, err)
}

// CodeOf returns the failure code of err, or "internal" when err is not a Failure.
func CodeOf(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Code
	}
	return "internal"
}
