package core

import (
	"testing"

	"github.com/idena-network/ecosystem-client/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_NetErrorIs(t *testing.T) {
	sentinels := map[NetErrorKind]error{
		KindNetwork:            ErrNetwork,
		KindServiceError:       ErrServiceError,
		KindRequestBuild:       ErrRequestBuild,
		KindNoDataInResponse:   ErrNoDataInResponse,
		KindResponseParseError: ErrResponseParseError,
		KindUnknown:            ErrUnknown,
	}
	for kind, sentinel := range sentinels {
		err := errors.Wrap(newNetError(kind, nil), "context")
		for otherKind, otherSentinel := range sentinels {
			require.Equal(t, kind == otherKind, errors.Is(err, otherSentinel), "%v vs %v", kind, otherKind)
		}
		require.True(t, errors.Is(err, sentinel))
	}
}

func Test_NetErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")

	require.Equal(t, "network: connection refused", newNetError(KindNetwork, cause).Error())
	require.Equal(t, "noDataInResponse", newNetError(KindNoDataInResponse, nil).Error())
	require.Equal(t, "unknown", ErrUnknown.Error())
	require.Equal(t, "service error 4011: unauthorized", newServiceError(&types.ResponseError{
		Code:    "4011",
		Message: "unauthorized",
	}).Error())
	require.Equal(t, cause, errors.Unwrap(newNetError(KindNetwork, cause)))
	require.Equal(t, "NetErrorKind(42)", NetErrorKind(42).String())
}
