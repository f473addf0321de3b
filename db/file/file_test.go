package file

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/idena-network/ecosystem-client/types"
	"github.com/stretchr/testify/require"
)

func Test_Store(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "store.json"))
	require.Nil(t, err)

	// When
	_, err = s.Get("authToken")
	// Then
	require.Equal(t, types.NoDataFound, err)

	// When
	require.Nil(t, s.Set("authToken", "value1"))
	require.Nil(t, s.Set("authToken", "value2"))
	value, err := s.Get("authToken")
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

func Test_StoreSharedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "store.json")
	first, err := NewStore(path)
	require.Nil(t, err)

	// When
	require.Nil(t, first.Set("authToken", "token1"))
	require.Nil(t, first.Set("ecosystemUUID", "device1"))
	second, err := NewStore(path)
	require.Nil(t, err)
	value, err := second.Get("authToken")
	// Then
	require.Nil(t, err)
	require.Equal(t, "token1", value)

	// When
	require.Nil(t, second.Remove("authToken"))
	_, err = first.Get("authToken")
	// Then
	require.Equal(t, types.NoDataFound, err)
	value, err = first.Get("ecosystemUUID")
	require.Nil(t, err)
	require.Equal(t, "device1", value)

	files, err := ioutil.ReadDir(filepath.Join(dir, "nested"))
	require.Nil(t, err)
	require.Len(t, files, 1)
}

func Test_StoreInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.Nil(t, ioutil.WriteFile(path, []byte("{broken"), 0600))

	// When
	_, err := NewStore(path)
	// Then
	require.NotNil(t, err)

	_, err = NewStore("")
	require.NotNil(t, err)
}
