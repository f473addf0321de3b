package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ErrorCodeUnmarshal(t *testing.T) {
	tcs := []struct {
		name    string
		data    string
		want    ErrorCode
		wantErr bool
	}{
		{"string", `{"code":"X1","message":"bad"}`, "X1", false},
		{"number", `{"code":4011,"message":"unauthorized"}`, "4011", false},
		{"null", `{"code":null,"message":"bad"}`, "", true},
		{"object", `{"code":{},"message":"bad"}`, "", true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// When
			var responseError ResponseError
			err := json.Unmarshal([]byte(tc.data), &responseError)
			// Then
			if tc.wantErr {
				require.NotNil(t, err)
				return
			}
			require.Nil(t, err)
			require.Equal(t, tc.want, responseError.Code)
		})
	}
}
