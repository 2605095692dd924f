// Package data bundles the small reference dataset used when no dataset
// directory is given.
package data

import (
	"embed"
	"io/fs"
)

//go:embed small/*.csv
var files embed.FS

// Small returns the bundled dataset rooted at its CSV files.
func Small() fs.FS {
	sub, err := fs.Sub(files, "small")
	if err != nil {
		panic(err)
	}
	return sub
}
