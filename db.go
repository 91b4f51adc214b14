package rrpgeconv

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// AssetDB caches encoded assets, keyed by the SHA-1 of the source image and
// the output format.
type AssetDB struct {
	db *sql.DB
}

// NewAssetDB opens the SQLite database at file, creating the schema if
// needed.
func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, format INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, format))"); err != nil {
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *AssetDB) Close() error {
	return db.db.Close()
}

// FindAsset returns the cached encoding of the source image with the given
// SHA-1 in format f, or nil if there isn't one.
func (db *AssetDB) FindAsset(sha string, f Format) ([]byte, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM asset WHERE sha1 = ? AND format = ?", sha, int(f)).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// AddAsset stores the encoding of the source image with the given SHA-1 in
// format f, replacing any previous one.
func (db *AssetDB) AddAsset(sha string, f Format, data []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO asset (sha1, format, data) VALUES (?, ?, ?)", sha, int(f), data); err != nil {
		return err
	}
	return nil
}
