/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package anon

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

const (
	UNIQUE_STORE_FILE_NAME = "unique-values.db"
	UNIQUE_VALUES_TABLE    = "unique_values"
	SQLITE_OPTIONS         = "?_txlock=exclusive&_timeout=30000&_journal_mode=WAL&_synchronous=OFF"
)

// SqliteUniqueStores keeps the unique-value history of every (table, column) of a
// run in one sqlite database, so the history does not have to fit in memory.
type SqliteUniqueStores struct {
	path string
	db   *sql.DB
}

func GetUniqueStorePath(dir string) string {
	return filepath.Join(dir, UNIQUE_STORE_FILE_NAME)
}

// NewSqliteUniqueStores starts a fresh history in dir; uniqueness is scoped to a run,
// so any history left over from a previous run is discarded.
func NewSqliteUniqueStores(dir string) (*SqliteUniqueStores, error) {
	path := GetUniqueStorePath(dir)
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		err := os.Remove(p)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove stale unique store %q: %w", p, err)
		}
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s%s", path, SQLITE_OPTIONS))
	if err != nil {
		return nil, fmt.Errorf("error while opening unique store: %w", err)
	}
	// single writer; also keeps the WAL pragmas on one connection
	db.SetMaxOpenConns(1)
	createTableSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		table_name TEXT NOT NULL,
		column_no INTEGER NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (table_name, column_no, value)
	) WITHOUT ROWID;`, UNIQUE_VALUES_TABLE)
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating %s table: %w", UNIQUE_VALUES_TABLE, err)
	}
	log.Infof("unique value history stored in %q", path)
	return &SqliteUniqueStores{path: path, db: db}, nil
}

// Factory returns a UniqueStoreFactory backed by this database.
func (s *SqliteUniqueStores) Factory() UniqueStoreFactory {
	return func(table string, column int) (UniqueStore, error) {
		return &sqliteUniqueStore{db: s.db, table: table, column: column}, nil
	}
}

func (s *SqliteUniqueStores) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type sqliteUniqueStore struct {
	db     *sql.DB
	table  string
	column int
	count  int
}

func (s *sqliteUniqueStore) Add(value string) (bool, error) {
	insertStmt := fmt.Sprintf(`INSERT OR IGNORE INTO %s (table_name, column_no, value) VALUES (?, ?, ?)`,
		UNIQUE_VALUES_TABLE)
	res, err := s.db.Exec(insertStmt, s.table, s.column, value)
	if err != nil {
		return false, fmt.Errorf("insert unique value for %s.%d: %w", s.table, s.column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for %s.%d: %w", s.table, s.column, err)
	}
	if n == 0 {
		return false, nil
	}
	s.count++
	return true, nil
}

func (s *sqliteUniqueStore) Len() int {
	return s.count
}
