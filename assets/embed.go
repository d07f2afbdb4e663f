// assets/embed.go
//
// Files compiled into the binary:
//   - sql/*.sql       schema migrations, applied in lexical order by archive.Open.
//   - episodes/*.json sample episodes imported on first start so a fresh
//                     database is playable without running an import.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql episodes/*.json
var FS embed.FS

// Migrations returns the schema files rooted at sql/.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Episodes returns the bundled sample episodes rooted at episodes/.
func Episodes() fs.FS {
	sub, err := fs.Sub(FS, "episodes")
	if err != nil {
		panic(err)
	}
	return sub
}
