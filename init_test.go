package main

import (
	"path/filepath"
	"testing"

	"github.com/idena-network/ecosystem-client/config"
	"github.com/stretchr/testify/require"
)

func Test_InitStoreDefaultPersists(t *testing.T) {
	storeConfig := config.StoreConfig{
		Type: config.StoreFile,
		File: config.FileConfig{Path: filepath.Join(t.TempDir(), "store.json")},
	}
	store, err := initStore(storeConfig)
	require.Nil(t, err)
	require.Nil(t, store.Set("authToken", "token1"))

	// When
	reopened, err := initStore(storeConfig)
	require.Nil(t, err)
	value, err := reopened.Get("authToken")
	// Then
	require.Nil(t, err)
	require.Equal(t, "token1", value)
}
