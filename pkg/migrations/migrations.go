package migrations

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var remoteSchemes = []string{"libsql://", "http://", "https://", "ws://", "wss://"}

func isRemote(path string) bool {
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(path, scheme) {
			return true
		}
	}
	return false
}

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens a local sqlite database, or a remote libsql database when `path` is a url.
func OpenDB(path string) (*sql.DB, error) {
	if isRemote(path) {
		db, err := sql.Open("libsql", path)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
		return db, nil
	}

	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	return db, nil
}

// OpenAndMigrateDB opens a database and applies an idempotent schema to it.
func OpenAndMigrateDB(schema, path string) (*sql.DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
