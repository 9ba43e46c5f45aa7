// assets/embed.go
//
// Embedded defaults shipped with the binary:
//   - questions.json: the built-in question dataset.
//   - sql/*.sql: schema migrations for a SQLite content database.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed questions.json sql/*.sql
var FS embed.FS

// Questions returns the raw built-in dataset.
func Questions() ([]byte, error) {
	return FS.ReadFile("questions.json")
}

// Migrations returns the migration files rooted at sql/.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
