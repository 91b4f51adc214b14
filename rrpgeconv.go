/*
Package rrpgeconv is a library for converting images into the binary asset
formats used by the RRPGE virtual machine.
*/
package rrpgeconv

import "log"

// Converter encodes images and raw sample buffers, optionally caching the
// results in an AssetDB.
type Converter struct {
	db     *AssetDB
	logger *log.Logger

	// Verify makes the Converter decode every asset it encodes and compare
	// the result with the source samples before writing it out
	Verify bool
}

// New returns a Converter logging to logger. If file is not empty the
// SQLite asset cache at that path is opened, creating it if necessary.
func New(file string, logger *log.Logger) (*Converter, error) {
	c := &Converter{
		logger: logger,
	}

	if file != "" {
		db, err := NewAssetDB(file)
		if err != nil {
			return nil, err
		}
		c.db = db
	}

	return c, nil
}

// Close closes the asset cache, if any.
func (c *Converter) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
