package memory

import (
	"testing"

	"github.com/idena-network/ecosystem-client/types"
	"github.com/stretchr/testify/require"
)

func Test_Store(t *testing.T) {
	s := NewStore()

	// When
	_, err := s.Get("authToken")
	// Then
	require.Equal(t, types.NoDataFound, err)

	// When
	require.Nil(t, s.Set("authToken", "value1"))
	value, err := s.Get("authToken")
	// Then
	require.Nil(t, err)
	require.Equal(t, "value1", value)

	// When
	require.Nil(t, s.Set("authToken", "value2"))
	value, err = s.Get("authToken")
	// Then
	require.Nil(t, err)
	require.Equal(t, "value2", value)

	// When
	require.Nil(t, s.Remove("authToken"))
	require.Nil(t, s.Remove("authToken"))
	_, err = s.Get("authToken")
	// Then
	require.Equal(t, types.NoDataFound, err)
}
