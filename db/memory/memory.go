package memory

import (
	"sync"

	"github.com/idena-network/ecosystem-client/db"
	"github.com/idena-network/ecosystem-client/types"
)

type store struct {
	mutex  sync.RWMutex
	values map[string]string
}

func NewStore() db.Store {
	return &store{
		values: make(map[string]string),
	}
}

func (s *store) Get(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	value, present := s.values[key]
	if !present {
		return "", types.NoDataFound
	}
	return value, nil
}

func (s *store) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[key] = value
	return nil
}

func (s *store) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.values, key)
	return nil
}
