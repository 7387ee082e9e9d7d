// Package migrations incrusta los scripts SQL de goose en el binario.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
