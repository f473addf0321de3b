package postgres

import (
	"database/sql"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/idena-network/ecosystem-client/db"
	"github.com/idena-network/ecosystem-client/types"
	log "github.com/inconshreveable/log15"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	initQuery        = "init.sql"
	getValueQuery    = "getValue.sql"
	setValueQuery    = "setValue.sql"
	removeValueQuery = "removeValue.sql"
)

type store struct {
	db      *sql.DB
	queries map[string]string
}

// NewStore opens the connection and blocks until the schema init script succeeds.
func NewStore(connStr string, scriptsDirPath string) (db.Store, error) {
	sqlDb, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open postgres connection")
	}
	queries, err := readQueries(scriptsDirPath)
	if err != nil {
		sqlDb.Close()
		return nil, err
	}
	s := &store{
		db:      sqlDb,
		queries: queries,
	}
	for _, name := range []string{initQuery, getValueQuery, setValueQuery, removeValueQuery} {
		if _, present := s.queries[name]; !present {
			sqlDb.Close()
			return nil, errors.Errorf("there is no query '%s' in %s", name, scriptsDirPath)
		}
	}
	for {
		if err := s.init(); err != nil {
			log.Error(fmt.Sprintf("Unable to initialize postgres connection: %v", err))
			time.Sleep(time.Second * 10)
			continue
		}
		break
	}
	return s, nil
}

func readQueries(scriptsDirPath string) (map[string]string, error) {
	files, err := ioutil.ReadDir(scriptsDirPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read scripts dir %s", scriptsDirPath)
	}
	queries := make(map[string]string)
	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		bytes, err := ioutil.ReadFile(filepath.Join(scriptsDirPath, file.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read script %s", file.Name())
		}
		queryName := file.Name()
		queries[queryName] = string(bytes)
		log.Debug(fmt.Sprintf("Read query %s from %s", queryName, scriptsDirPath))
	}
	return queries, nil
}

func (s *store) init() error {
	if err := s.db.Ping(); err != nil {
		return err
	}
	if _, err := s.db.Exec(s.queries[initQuery]); err != nil {
		return err
	}
	return nil
}

func (s *store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(s.queries[getValueQuery], key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", types.NoDataFound
	}
	return value, err
}

func (s *store) Set(key, value string) error {
	_, err := s.db.Exec(s.queries[setValueQuery], key, value, time.Now())
	return err
}

func (s *store) Remove(key string) error {
	_, err := s.db.Exec(s.queries[removeValueQuery], key)
	return err
}
