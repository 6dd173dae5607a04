// Package textutil provides filename sanitization and display-name helpers
// shared by the template engine and the CLI.
package textutil
