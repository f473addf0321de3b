package file

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/idena-network/ecosystem-client/db"
	"github.com/idena-network/ecosystem-client/types"
	"github.com/pkg/errors"
)

type store struct {
	mutex sync.Mutex
	path  string
}

// NewStore keeps the values as a json object in the file at path. The file is re-read on every call, so
// stores opened on the same path see each other's writes.
func NewStore(path string) (db.Store, error) {
	if path == "" {
		return nil, errors.New("file store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrapf(err, "unable to create dir for %s", path)
	}
	s := &store{
		path: path,
	}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *store) Get(key string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	values, err := s.load()
	if err != nil {
		return "", err
	}
	value, present := values[key]
	if !present {
		return "", types.NoDataFound
	}
	return value, nil
}

func (s *store) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *store) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	if _, present := values[key]; !present {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *store) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", s.path)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", s.path)
	}
	return values, nil
}

// save writes a temp file next to the target and renames it over, readers never see a partial file.
func (s *store) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to serialize values")
	}
	tmp, err := ioutil.TempFile(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "unable to create temp file for %s", s.path)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "unable to write %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "unable to close %s", tmpPath)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "unable to chmod %s", tmpPath)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "unable to replace %s", s.path)
	}
	return nil
}
