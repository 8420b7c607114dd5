// Package migrations holds the versioned SQL schema, embedded for the server and CLI.
package migrations

import "embed"

// FS contains every *.sql migration in this directory
//
//go:embed *.sql
var FS embed.FS
