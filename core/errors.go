package core

import (
	"fmt"

	"github.com/idena-network/ecosystem-client/types"
)

type NetErrorKind int

const (
	KindNetwork NetErrorKind = iota + 1
	KindServiceError
	KindRequestBuild
	KindNoDataInResponse
	KindResponseParseError
	KindUnknown
)

func (k NetErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServiceError:
		return "serviceError"
	case KindRequestBuild:
		return "requestBuild"
	case KindNoDataInResponse:
		return "noDataInResponse"
	case KindResponseParseError:
		return "responseParseError"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("NetErrorKind(%d)", int(k))
	}
}

// NetError is the single error type returned by request building and dispatch.
// Response is set only for KindServiceError.
type NetError struct {
	Kind     NetErrorKind
	Cause    error
	Response *types.ResponseError
}

var (
	ErrNetwork            = &NetError{Kind: KindNetwork}
	ErrServiceError       = &NetError{Kind: KindServiceError}
	ErrRequestBuild       = &NetError{Kind: KindRequestBuild}
	ErrNoDataInResponse   = &NetError{Kind: KindNoDataInResponse}
	ErrResponseParseError = &NetError{Kind: KindResponseParseError}
	ErrUnknown            = &NetError{Kind: KindUnknown}
)

func (e *NetError) Error() string {
	switch {
	case e.Kind == KindServiceError && e.Response != nil:
		return fmt.Sprintf("service error %v: %v", e.Response.Code, e.Response.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	default:
		return e.Kind.String()
	}
}

func (e *NetError) Unwrap() error {
	return e.Cause
}

// Is matches the kind sentinels (ErrNetwork, ErrServiceError, ...) by kind.
func (e *NetError) Is(target error) bool {
	t, ok := target.(*NetError)
	if !ok || t.Cause != nil || t.Response != nil {
		return false
	}
	return t.Kind == e.Kind
}

func newNetError(kind NetErrorKind, cause error) *NetError {
	return &NetError{
		Kind:  kind,
		Cause: cause,
	}
}

func newServiceError(response *types.ResponseError) *NetError {
	return &NetError{
		Kind:     KindServiceError,
		Response: response,
	}
}
