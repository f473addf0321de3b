package db

// Store is the persistent key-value storage the client keeps its credential and device identifier in.
// Get returns types.NoDataFound when the key is absent.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
